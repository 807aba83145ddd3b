package history

import "time"

// Status summarizes how a run ended.
type Status string

const (
	// StatusCompleted marks a run where every event log was processed.
	StatusCompleted Status = "completed"
	// StatusPartial marks a run that wrote a script but skipped some logs.
	StatusPartial Status = "partial"
)

// Demo is the per-demo portion of a run.
type Demo struct {
	Key    string `json:"key"`
	Events int    `json:"events"`
	Spans  int    `json:"spans"`
}

// Run is one recorded script generation.
type Run struct {
	ID              int64     `json:"id"`
	RunID           string    `json:"run_id"`
	CreatedAt       time.Time `json:"created_at"`
	Status          Status    `json:"status"`
	ScriptPath      string    `json:"script_path"`
	ConfigPath      string    `json:"config_path,omitempty"`
	DemoDirectory   string    `json:"demo_directory,omitempty"`
	LogCount        int       `json:"log_count"`
	SkippedCount    int       `json:"skipped_count"`
	SpanCount       int       `json:"span_count"`
	ZeroLengthCount int       `json:"zero_length_count"`
	Demos           []Demo    `json:"demos,omitempty"`
}
