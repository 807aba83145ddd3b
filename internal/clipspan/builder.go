package clipspan

import "demobatch/internal/demolog"

// Options holds the builder's tuning values, all in ticks.
type Options struct {
	StartTickOffset       int
	TicksPerKill          int
	TickEndOffset         int
	ContinuationTolerance int
}

// DefaultOptions returns the stock tuning: roughly 15 seconds of padding at
// 66 ticks per second, plus another 15 seconds of lead-in per kill.
func DefaultOptions() Options {
	return Options{
		StartTickOffset:       -990,
		TicksPerKill:          990,
		TickEndOffset:         990,
		ContinuationTolerance: 1980,
	}
}

// Builder merges kill events into clip spans.
type Builder struct {
	opts Options
}

// NewBuilder returns a builder using opts.
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts}
}

// Window returns the padded window of a single event with its start clamped
// at tick 0.
func (b *Builder) Window(ev demolog.KillEvent) Span {
	return Span{
		StartTick: max(b.windowStart(ev), 0),
		EndTick:   b.windowEnd(ev),
	}
}

func (b *Builder) windowStart(ev demolog.KillEvent) int {
	return ev.Tick + b.opts.StartTickOffset - b.opts.TicksPerKill*ev.KillCount
}

func (b *Builder) windowEnd(ev demolog.KillEvent) int {
	return ev.Tick + b.opts.TickEndOffset
}

// Build merges events, which must be ordered by tick, into spans. An event
// joins the open span when its unclamped window start is no later than the
// previous event's end plus the continuation tolerance; otherwise the open
// span is closed and the event starts a new one.
func (b *Builder) Build(events []demolog.KillEvent) []Span {
	if len(events) == 0 {
		return nil
	}

	var spans []Span
	current := b.Window(events[0])
	for i := 1; i < len(events); i++ {
		ev := events[i]
		previousMax := b.windowEnd(events[i-1]) + b.opts.ContinuationTolerance
		if b.windowStart(ev) <= previousMax {
			window := b.Window(ev)
			current.StartTick = min(current.StartTick, window.StartTick)
			current.EndTick = max(current.EndTick, window.EndTick)
			continue
		}
		spans = appendSpan(spans, current)
		current = b.Window(ev)
	}
	return appendSpan(spans, current)
}

// appendSpan adds span to spans, clamping an inverted span to zero length
// and coalescing it with earlier spans it reaches back into. Coalescing only
// happens when a large kill count pulls a joining event's window back past
// the previous span's end.
func appendSpan(spans []Span, span Span) []Span {
	if span.EndTick < span.StartTick {
		span.EndTick = span.StartTick
	}
	for len(spans) > 0 {
		last := spans[len(spans)-1]
		if last.EndTick < span.StartTick {
			break
		}
		span.StartTick = min(span.StartTick, last.StartTick)
		span.EndTick = max(span.EndTick, last.EndTick)
		spans = spans[:len(spans)-1]
	}
	return append(spans, span)
}
