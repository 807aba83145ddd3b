// Package batch runs one end-to-end script generation.
//
// Run loads nothing itself: it receives validated settings, checks the
// demo and output directories, collects the event logs, builds clip spans
// and render jobs per demo, writes the script, and records the run in the
// history ledger. Per-file problems are logged and skipped; settings and
// output problems abort the run before anything is written.
//
// Errors are tagged with the sentinel markers in errors.go and ExitCode maps
// a run's outcome to the process exit status.
package batch
