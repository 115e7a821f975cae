package codec

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noders-team/thyming/pkg/model"
)

func sampleReport() model.Report {
	laps := []time.Duration{1500 * time.Millisecond, 250 * time.Millisecond}
	return model.Report{
		Name:    "build",
		Running: false,
		Laps:    laps,
		Summary: model.Summarize(laps),
	}
}

func TestReportCodec_Marshal(t *testing.T) {
	tests := []struct {
		name     string
		codec    *ReportCodec
		expected string
	}{
		{
			name:  "seconds as strings",
			codec: NewReportCodecWithOptions(true, 4),
			expected: `{"name":"build","running":false,"laps":["1.5000","0.2500"],
				"summary":{"count":2,"total":"1.7500","mean":"0.8750","min":"0.2500","max":"1.5000"}}`,
		},
		{
			name:  "seconds as numbers",
			codec: NewReportCodecWithOptions(false, 2),
			expected: `{"name":"build","running":false,"laps":[1.50,0.25],
				"summary":{"count":2,"total":1.75,"mean":0.88,"min":0.25,"max":1.50}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.codec.Marshal(sampleReport())
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(result))
		})
	}
}

func TestReportCodec_EmptyReport(t *testing.T) {
	codec := NewReportCodec()

	data, err := codec.Marshal(model.Report{Running: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"running":true,"laps":[],"summary":{"count":0,"total":"0.000000000",
		"mean":"0.000000000","min":"0.000000000","max":"0.000000000"}}`, string(data))

	report, err := codec.Unmarshal(data)
	require.NoError(t, err)
	assert.True(t, report.Running)
	assert.Nil(t, report.Laps)
}

func TestReportCodec_RoundTrip(t *testing.T) {
	for _, asString := range []bool{true, false} {
		codec := NewReportCodecWithOptions(asString, 9)
		data, err := codec.Marshal(sampleReport())
		require.NoError(t, err)

		report, err := codec.Unmarshal(data)
		require.NoError(t, err)
		assert.Equal(t, sampleReport(), report)
	}
}

func TestReportCodec_UnmarshalLargestDuration(t *testing.T) {
	report, err := NewReportCodec().Unmarshal([]byte(`{"laps":["9223372036.854775807"]}`))
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{time.Duration(math.MaxInt64)}, report.Laps)
}

func TestReportCodec_UnmarshalErrors(t *testing.T) {
	codec := NewReportCodec()

	_, err := codec.Unmarshal([]byte(`{`))
	assert.ErrorContains(t, err, "failed to unmarshal JSON")

	_, err = codec.Unmarshal([]byte(`{"laps":["abc"]}`))
	assert.ErrorContains(t, err, "invalid lap 0")

	_, err = codec.Unmarshal([]byte(`{"laps":["-1"]}`))
	assert.ErrorContains(t, err, "negative duration")

	_, err = codec.Unmarshal([]byte(`{"laps":["1e20"]}`))
	assert.ErrorContains(t, err, "out of range")

	_, err = codec.Unmarshal([]byte(`{"laps":[99999999999]}`))
	assert.ErrorContains(t, err, "out of range")

	_, err = codec.Unmarshal([]byte(`{"summary":{"max":"9300000000"}}`))
	assert.ErrorContains(t, err, "invalid summary max")

	_, err = codec.Unmarshal([]byte(`{"summary":{"total":"x"}}`))
	assert.ErrorContains(t, err, "invalid summary total")
}
