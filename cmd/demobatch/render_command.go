package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"demobatch/internal/batch"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write a batch script for every event log in the demo directory",
		Long: `Collect the event logs in the demo directory, merge nearby kills into clip
spans, and write one renderdemo command per span to a new batch script.

Exit status is 0 on success, 2 when the script was written but some event
logs were skipped, and 1 when settings or output are unusable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, ctx, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the commands instead of writing a script")
	return cmd
}

func runRender(cmd *cobra.Command, ctx *commandContext, dryRun bool) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger(cmd)
	if err != nil {
		return err
	}

	summary, err := batch.Run(cmd.Context(), cfg, logger, batch.Options{
		DryRun:     dryRun,
		RunID:      ctx.runID,
		ConfigPath: ctx.configPath,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if dryRun {
		for _, line := range summary.Lines {
			fmt.Fprintln(out, line)
		}
	} else {
		fmt.Fprintf(out, "Wrote %d command(s) for %d demo(s) to %s\n",
			len(summary.Lines), len(summary.Demos), summary.ScriptPath)
	}

	if code := batch.ExitCode(summary, nil); code != batch.ExitOK {
		return &exitError{
			code:    code,
			message: strings.TrimRight(batch.DescribeSkipped(summary.Skipped), "\n"),
		}
	}
	return nil
}
