package batch

import (
	"demobatch/internal/clipspan"
	"demobatch/internal/preflight"
	"demobatch/internal/renderjob"
)

// Demo holds the planned output for one event log.
type Demo struct {
	Key        string                `json:"key"`
	SourcePath string                `json:"source_path"`
	Events     int                   `json:"events"`
	Spans      []clipspan.Span       `json:"spans"`
	Jobs       []renderjob.RenderJob `json:"jobs"`
}

// Skipped is an event log left out of the run.
type Skipped struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
	// Reason is Err rendered for JSON output.
	Reason string `json:"reason"`
}

// Summary describes one run.
type Summary struct {
	RunID      string             `json:"run_id"`
	ScriptPath string             `json:"script_path,omitempty"`
	DryRun     bool               `json:"dry_run"`
	Demos      []Demo             `json:"demos"`
	Skipped    []Skipped          `json:"skipped,omitempty"`
	Lines      []string           `json:"-"`
	ZeroLength int                `json:"zero_length_spans"`
	Preflight  []preflight.Result `json:"preflight,omitempty"`
}

// SpanCount returns the number of spans across all demos.
func (s *Summary) SpanCount() int {
	if s == nil {
		return 0
	}
	total := 0
	for _, demo := range s.Demos {
		total += len(demo.Spans)
	}
	return total
}

// Partial reports whether any event log was skipped.
func (s *Summary) Partial() bool {
	return s != nil && len(s.Skipped) > 0
}
