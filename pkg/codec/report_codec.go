package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noders-team/thyming/pkg/model"
)

var maxNanoseconds = decimal.NewFromInt(math.MaxInt64)

// ReportCodec encodes timer reports to JSON with durations expressed in seconds.
type ReportCodec struct {
	// EncodeSecondsAsString controls whether durations are encoded as strings (true) or numbers (false).
	// Numbers are easier to query but some JSON implementations parse them as doubles.
	EncodeSecondsAsString bool

	// Precision is the number of decimals kept for every duration.
	Precision int32
}

type jsonSummary struct {
	Count int             `json:"count"`
	Total json.RawMessage `json:"total"`
	Mean  json.RawMessage `json:"mean"`
	Min   json.RawMessage `json:"min"`
	Max   json.RawMessage `json:"max"`
}

type jsonReport struct {
	Name    string            `json:"name,omitempty"`
	Running bool              `json:"running"`
	Laps    []json.RawMessage `json:"laps"`
	Summary jsonSummary       `json:"summary"`
}

// NewReportCodec creates a ReportCodec that encodes seconds as strings with nanosecond precision.
func NewReportCodec() *ReportCodec {
	return &ReportCodec{
		EncodeSecondsAsString: true,
		Precision:             9,
	}
}

func NewReportCodecWithOptions(encodeSecondsAsString bool, precision int32) *ReportCodec {
	if precision < 0 {
		precision = 0
	}
	return &ReportCodec{
		EncodeSecondsAsString: encodeSecondsAsString,
		Precision:             precision,
	}
}

func (codec *ReportCodec) Marshal(report model.Report) ([]byte, error) {
	out := jsonReport{
		Name:    report.Name,
		Running: report.Running,
		Laps:    make([]json.RawMessage, 0, len(report.Laps)),
		Summary: jsonSummary{
			Count: report.Summary.Count,
			Total: codec.seconds(report.Summary.Total),
			Mean:  codec.seconds(report.Summary.Mean),
			Min:   codec.seconds(report.Summary.Min),
			Max:   codec.seconds(report.Summary.Max),
		},
	}
	for _, lap := range report.Laps {
		out.Laps = append(out.Laps, codec.seconds(lap))
	}
	return json.Marshal(out)
}

func (codec *ReportCodec) Unmarshal(data []byte) (model.Report, error) {
	var in jsonReport
	if err := json.Unmarshal(data, &in); err != nil {
		return model.Report{}, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	report := model.Report{
		Name:    in.Name,
		Running: in.Running,
		Summary: model.Summary{Count: in.Summary.Count},
	}

	fields := []struct {
		name string
		raw  json.RawMessage
		dst  *time.Duration
	}{
		{"total", in.Summary.Total, &report.Summary.Total},
		{"mean", in.Summary.Mean, &report.Summary.Mean},
		{"min", in.Summary.Min, &report.Summary.Min},
		{"max", in.Summary.Max, &report.Summary.Max},
	}
	for _, f := range fields {
		d, err := parseSeconds(f.raw)
		if err != nil {
			return model.Report{}, fmt.Errorf("invalid summary %s: %w", f.name, err)
		}
		*f.dst = d
	}

	if len(in.Laps) > 0 {
		report.Laps = make([]time.Duration, 0, len(in.Laps))
	}
	for i, raw := range in.Laps {
		d, err := parseSeconds(raw)
		if err != nil {
			return model.Report{}, fmt.Errorf("invalid lap %d: %w", i, err)
		}
		report.Laps = append(report.Laps, d)
	}
	return report, nil
}

func (codec *ReportCodec) seconds(d time.Duration) json.RawMessage {
	s := decimal.New(int64(d), -9).StringFixed(codec.Precision)
	if codec.EncodeSecondsAsString {
		return json.RawMessage(`"` + s + `"`)
	}
	return json.RawMessage(s)
}

func parseSeconds(raw json.RawMessage) (time.Duration, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(raw); err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("negative duration %s", d.String())
	}
	ns := d.Shift(9).Round(0)
	if ns.GreaterThan(maxNanoseconds) {
		return 0, fmt.Errorf("duration %s out of range", d.String())
	}
	return time.Duration(ns.IntPart()), nil
}
