package clipspan

import "fmt"

// Span is a closed interval of ticks to record.
type Span struct {
	StartTick int `json:"start_tick"`
	EndTick   int `json:"end_tick"`
}

// Length returns the number of ticks covered by the span.
func (s Span) Length() int {
	return s.EndTick - s.StartTick
}

// ZeroLength reports whether the span was clamped to a single tick.
func (s Span) ZeroLength() bool {
	return s.EndTick <= s.StartTick
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return other.StartTick >= s.StartTick && other.EndTick <= s.EndTick
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d]", s.StartTick, s.EndTick)
}
