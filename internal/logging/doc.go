// Package logging assembles structured slog loggers and formatting helpers used
// across demobatch.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so collection and planning code
// can tag log lines with the demo being processed and the current stage. Every
// record of a run carries the same run_id, which is also stored in the run
// history ledger. The package provides a no-op logger for tests and wiring
// code that cannot fail.
package logging
