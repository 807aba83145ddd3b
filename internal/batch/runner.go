package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"demobatch/internal/batchfile"
	"demobatch/internal/clipspan"
	"demobatch/internal/config"
	"demobatch/internal/demolog"
	"demobatch/internal/history"
	"demobatch/internal/logging"
	"demobatch/internal/preflight"
	"demobatch/internal/renderjob"
)

// Recorder persists a finished run.
type Recorder interface {
	Record(ctx context.Context, run *history.Run) error
}

// Options tunes a run.
type Options struct {
	// DryRun plans the script without writing it or recording history.
	DryRun bool
	// RunID identifies the run in logs and history. Generated when empty.
	RunID string
	// ConfigPath is recorded in history for reference.
	ConfigPath string
	// Now stamps the script name. Defaults to time.Now.
	Now func() time.Time
	// Recorder overrides the history store opened from settings.
	Recorder Recorder
}

// Plan collects the event logs and computes spans and render jobs without
// touching the output directory.
func Plan(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Summary, error) {
	if cfg == nil {
		return nil, Wrap(ErrSettings, "plan", "settings not loaded", nil)
	}
	logger = logging.NewComponentLogger(logger, "batch")

	collection, err := demolog.Collect(cfg.DemoDirectory, demolog.CollectOptions{
		Recursive: cfg.Clips.Recursive,
		Logger:    logger,
	})
	if err != nil {
		return nil, Wrap(ErrSettings, "collect event logs", "demo directory unreadable", err)
	}

	summary := &Summary{}
	for _, failure := range collection.Failures {
		wrapped := classifyFailure(failure)
		summary.Skipped = append(summary.Skipped, Skipped{Path: failure.Path, Err: wrapped, Reason: wrapped.Error()})
	}

	builder := clipspan.NewBuilder(builderOptions(cfg))
	defaults := renderjob.DefaultsFromConfig(cfg)
	executable := cfg.Output.Executable

	for _, eventLog := range collection.Logs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		demoCtx := logging.WithStage(logging.WithDemo(ctx, eventLog.Key), "build")
		demoLogger := logging.WithContext(demoCtx, logger)

		spans := builder.Build(eventLog.Events)
		jobs := renderjob.Plan(eventLog, spans, defaults)
		for _, span := range spans {
			if span.ZeroLength() {
				summary.ZeroLength++
				logging.WarnWithContext(demoLogger, "zero-length clip span", "zero_length_span",
					logging.Int("start_tick", span.StartTick),
					logging.String(logging.FieldErrorHint, "check clip offsets and kill counts"),
					logging.String(logging.FieldImpact, "clip covers a single tick"),
				)
			}
		}
		for _, job := range jobs {
			summary.Lines = append(summary.Lines, job.Command(executable))
		}
		demoLogger.Debug("demo planned",
			logging.Int("events", len(eventLog.Events)),
			logging.Int("spans", len(spans)),
		)

		summary.Demos = append(summary.Demos, Demo{
			Key:        eventLog.Key,
			SourcePath: eventLog.SourcePath,
			Events:     len(eventLog.Events),
			Spans:      spans,
			Jobs:       jobs,
		})
	}
	return summary, nil
}

// Run performs one full script generation. The returned summary is non-nil
// whenever err is nil; ExitCode classifies the outcome.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*Summary, error) {
	if cfg == nil {
		return nil, Wrap(ErrSettings, "run", "settings not loaded", nil)
	}
	runID := strings.TrimSpace(opts.RunID)
	if runID == "" {
		runID = uuid.NewString()
	}
	logger = logging.NewComponentLogger(logger, "batch")

	if !opts.DryRun {
		if err := cfg.EnsureDirectories(); err != nil {
			return nil, Wrap(ErrOutput, "prepare output", "", err)
		}
	}

	checks := preflight.RunAll(cfg)
	for _, failed := range preflight.Failed(checks) {
		if opts.DryRun && failed.Name == preflight.NameOutputDirectory {
			continue
		}
		marker := ErrSettings
		if failed.Name == preflight.NameOutputDirectory {
			marker = ErrOutput
		}
		return nil, Wrap(marker, "preflight", failed.Name, errors.New(failed.Detail))
	}
	for _, warned := range preflight.Warnings(checks) {
		logger.Debug("optional check failed",
			logging.String("check", warned.Name),
			logging.String("detail", warned.Detail),
		)
	}

	summary, err := Plan(logging.WithStage(ctx, "collect"), cfg, logger)
	if err != nil {
		return nil, err
	}
	summary.RunID = runID
	summary.DryRun = opts.DryRun
	summary.Preflight = checks

	if opts.DryRun {
		logger.Info("dry run planned",
			logging.Int("demos", len(summary.Demos)),
			logging.Int("spans", summary.SpanCount()),
			logging.Int("skipped", len(summary.Skipped)),
		)
		return summary, nil
	}

	writer := &batchfile.Writer{
		Dir:       cfg.Output.Dir,
		Prefix:    cfg.Output.Prefix,
		Extension: cfg.Output.Extension,
		Now:       opts.Now,
	}
	scriptPath, err := writer.Write(ctx, summary.Lines)
	if err != nil {
		logging.ErrorWithContext(logger, "batch script not written", "script_write_failed",
			logging.String(logging.FieldPath, cfg.Output.Dir),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that output.dir is writable"),
		)
		return nil, Wrap(ErrOutput, "write script", cfg.Output.Dir, err)
	}
	summary.ScriptPath = scriptPath

	attrs := []logging.Attr{
		logging.String(logging.FieldPath, scriptPath),
		logging.Int("demos", len(summary.Demos)),
		logging.Int("spans", summary.SpanCount()),
		logging.Int("skipped", len(summary.Skipped)),
	}
	if summary.Partial() {
		attrs = append(attrs, logging.Alert("logs_skipped"))
	}
	logger.Info("batch script written", logging.Args(attrs...)...)

	recordHistory(ctx, cfg, logger, opts, summary)
	return summary, nil
}

func recordHistory(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options, summary *Summary) {
	recorder := opts.Recorder
	if recorder == nil {
		if !cfg.History.Enabled {
			return
		}
		store, err := history.Open(cfg)
		if err != nil {
			logging.WarnWithContext(logger, "history unavailable", "history_open_failed",
				logging.Error(err),
				logging.String(logging.FieldPath, cfg.History.Path),
				logging.String(logging.FieldImpact, "run is not recorded in history"),
			)
			return
		}
		defer store.Close()
		recorder = store
	}

	run := &history.Run{
		RunID:           summary.RunID,
		Status:          history.StatusCompleted,
		ScriptPath:      summary.ScriptPath,
		ConfigPath:      opts.ConfigPath,
		DemoDirectory:   cfg.DemoDirectory,
		LogCount:        len(summary.Demos),
		SkippedCount:    len(summary.Skipped),
		SpanCount:       summary.SpanCount(),
		ZeroLengthCount: summary.ZeroLength,
	}
	if summary.Partial() {
		run.Status = history.StatusPartial
	}
	for _, demo := range summary.Demos {
		run.Demos = append(run.Demos, history.Demo{Key: demo.Key, Events: demo.Events, Spans: len(demo.Spans)})
	}
	if err := recorder.Record(ctx, run); err != nil {
		logging.WarnWithContext(logger, "history write failed", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run is not recorded in history"),
		)
		return
	}
	logger.Debug("run recorded", logging.String(logging.FieldRunID, run.RunID))
}

func builderOptions(cfg *config.Config) clipspan.Options {
	return clipspan.Options{
		StartTickOffset:       cfg.Clips.StartTickOffset,
		TicksPerKill:          cfg.Clips.TicksPerKill,
		TickEndOffset:         cfg.Clips.TickEndOffset,
		ContinuationTolerance: cfg.Clips.ContinuationTolerance,
	}
}

// DescribeSkipped renders skipped logs for console output.
func DescribeSkipped(skipped []Skipped) string {
	var b strings.Builder
	for _, s := range skipped {
		fmt.Fprintf(&b, "skipped %s: %v\n", s.Path, s.Err)
	}
	return b.String()
}
