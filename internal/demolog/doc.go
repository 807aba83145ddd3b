// Package demolog reads the per-demo kill event logs written next to recorded
// demos.
//
// Each log is a JSON document holding an ordered list of events. The kill
// count arrives as a string and is parsed once at load time, so a malformed
// value fails the whole file with a descriptive error instead of surfacing
// later. Collect scans a directory, isolates per-file failures, and returns
// the logs in key order so downstream output is deterministic.
package demolog
