// Package renderjob turns clip spans into renderer invocations.
//
// Plan assigns every span of a demo an export path and the renderer options
// taken from settings. Command formats a job as one renderdemo command line,
// and ParseCommand reads such a line back, which keeps the format honest in
// tests and lets existing scripts be inspected.
package renderjob
