package renderjob

import (
	"path/filepath"
	"strconv"
	"strings"

	"demobatch/internal/clipspan"
	"demobatch/internal/config"
	"demobatch/internal/demolog"
)

// RenderJob is one invocation of the external renderer for one span.
type RenderJob struct {
	DemoPath         string `json:"demo_path"`
	StartTick        int    `json:"start_tick"`
	EndTick          int    `json:"end_tick"`
	ExportPath       string `json:"export_path"`
	HL2Path          string `json:"hl2_path"`
	LaunchOptions    string `json:"launch_options,omitempty"`
	PreRecordCommand string `json:"pre_record_command,omitempty"`
	Profile          string `json:"profile,omitempty"`
	Overwrite        string `json:"overwrite,omitempty"`
	WindowState      string `json:"window_state,omitempty"`
}

// Span returns the tick range the job records.
func (j RenderJob) Span() clipspan.Span {
	return clipspan.Span{StartTick: j.StartTick, EndTick: j.EndTick}
}

// Defaults are the per-run renderer options shared by every job.
type Defaults struct {
	HL2Path          string
	ExportPrefix     string
	ClipExtension    string
	LaunchOptions    string
	PreRecordCommand string
	Profile          string
	Overwrite        string
	WindowState      string
}

// DefaultsFromConfig extracts the renderer options from settings.
func DefaultsFromConfig(cfg *config.Config) Defaults {
	if cfg == nil {
		return Defaults{ClipExtension: ".avi"}
	}
	return Defaults{
		HL2Path:          cfg.HL2Path,
		ExportPrefix:     cfg.ExportPrefix,
		ClipExtension:    cfg.Output.ClipExtension,
		LaunchOptions:    cfg.LaunchOptions,
		PreRecordCommand: cfg.PreRecordCommand,
		Profile:          cfg.Profile,
		Overwrite:        cfg.Overwrite,
		WindowState:      cfg.WindowState,
	}
}

// Plan returns one job per span, in span order. The i-th clip of a demo is
// exported as <prefix>/<demo name>_<i><clip extension> with i counted from 0.
func Plan(log demolog.EventLog, spans []clipspan.Span, d Defaults) []RenderJob {
	if len(spans) == 0 {
		return nil
	}
	ext := d.ClipExtension
	if ext == "" {
		ext = ".avi"
	}
	name := clipBaseName(log.Key)

	jobs := make([]RenderJob, 0, len(spans))
	for i, span := range spans {
		jobs = append(jobs, RenderJob{
			DemoPath:         log.Key,
			StartTick:        span.StartTick,
			EndTick:          span.EndTick,
			ExportPath:       joinExportPath(d.ExportPrefix, name+"_"+strconv.Itoa(i)+ext),
			HL2Path:          d.HL2Path,
			LaunchOptions:    d.LaunchOptions,
			PreRecordCommand: d.PreRecordCommand,
			Profile:          d.Profile,
			Overwrite:        d.Overwrite,
			WindowState:      d.WindowState,
		})
	}
	return jobs
}

// clipBaseName is the demo's file name without directory or extension.
func clipBaseName(key string) string {
	base := key
	if idx := strings.LastIndexAny(base, `/\`); idx >= 0 {
		base = base[idx+1:]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// joinExportPath appends name to prefix using the separator the prefix
// already uses, so a Windows prefix stays backslash-separated when the
// script is generated elsewhere.
func joinExportPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	if strings.HasSuffix(prefix, "/") || strings.HasSuffix(prefix, `\`) {
		return prefix + name
	}
	sep := string(filepath.Separator)
	switch {
	case strings.Contains(prefix, `\`) && !strings.Contains(prefix, "/"):
		sep = `\`
	case strings.Contains(prefix, "/") && !strings.Contains(prefix, `\`):
		sep = "/"
	case len(prefix) == 2 && prefix[1] == ':':
		sep = `\`
	}
	return prefix + sep + name
}
