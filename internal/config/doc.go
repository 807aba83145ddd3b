// Package config loads, normalizes, and validates demobatch settings.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads either the original settings.json layout or a TOML
// equivalent. The Config type centralizes every knob the batch run needs:
// renderer options copied onto each render job, the clip span tuning values,
// output naming, logging, and the run history ledger.
//
// Always obtain settings through this package so downstream code receives
// canonical enum values, resolved paths, and clear validation errors.
package config
