// Package clipspan turns a demo's kill events into the tick ranges worth
// recording.
//
// Every event owns a padded window: it starts StartTickOffset ticks from the
// event (pulled further back by TicksPerKill for each kill credited to it) and
// ends TickEndOffset ticks after it. Consecutive events whose windows fall
// within ContinuationTolerance of each other share one span, so a sequence of
// nearby kills renders as a single continuous clip.
//
// Spans never start before tick 0, never overlap, and are returned in tick
// order. The span still open when the events run out is always emitted.
package clipspan
