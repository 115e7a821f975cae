package timer

import (
	"time"
)

const timestampLayout = "2006-01-02T15:04:05"

// DefaultMessage selects one of the built-in timestamped messages.
type DefaultMessage int

const (
	Start DefaultMessage = iota
	Measure
	End
)

func (d DefaultMessage) render(now time.Time) string {
	ts := now.Format(timestampLayout)
	switch d {
	case Start:
		return "START: " + ts
	case Measure:
		return "MEASURED: " + ts
	default:
		return "END: " + ts
	}
}

type messageKind int

const (
	kindNone messageKind = iota
	kindText
	kindDefault
)

// Message tells the timer what to log in a given context.
// The zero value logs nothing.
type Message struct {
	kind messageKind
	text string
	def  DefaultMessage
}

// NoMessage logs nothing.
var NoMessage = Message{}

// Text logs s verbatim. An empty string behaves like NoMessage.
func Text(s string) Message {
	if s == "" {
		return NoMessage
	}
	return Message{kind: kindText, text: s}
}

// Default logs the built-in message for d.
func Default(d DefaultMessage) Message {
	return Message{kind: kindDefault, def: d}
}

// IsZero reports whether m logs nothing.
func (m Message) IsZero() bool {
	return m.kind == kindNone
}

func (m Message) resolve(now time.Time) string {
	switch m.kind {
	case kindText:
		return m.text
	case kindDefault:
		return m.def.render(now)
	default:
		return ""
	}
}
