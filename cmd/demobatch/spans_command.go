package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"demobatch/internal/batch"
)

type spansOutput struct {
	Demos   []batch.Demo    `json:"demos"`
	Skipped []batch.Skipped `json:"skipped,omitempty"`
}

func newSpansCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "spans",
		Short: "Show the clip spans computed for each demo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			summary, err := batch.Plan(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			if jsonOutput {
				payload := spansOutput{Demos: summary.Demos, Skipped: summary.Skipped}
				if payload.Demos == nil {
					payload.Demos = []batch.Demo{}
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			if len(summary.Demos) == 0 {
				fmt.Fprintln(out, "No event logs found")
			} else {
				fmt.Fprintln(out, renderTable(
					[]string{"Demo", "Clip", "Start", "End", "Ticks", "Export"},
					spanRows(summary.Demos),
					[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
				))
			}
			for _, skipped := range summary.Skipped {
				fmt.Fprintf(out, "Skipped %s: %s\n", skipped.Path, skipped.Reason)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func spanRows(demos []batch.Demo) [][]string {
	var rows [][]string
	for _, demo := range demos {
		name := filepath.Base(demo.Key)
		if len(demo.Jobs) == 0 {
			rows = append(rows, []string{name, "-", "", "", "", "no events"})
			continue
		}
		for i, job := range demo.Jobs {
			rows = append(rows, []string{
				name,
				strconv.Itoa(i),
				strconv.Itoa(job.StartTick),
				strconv.Itoa(job.EndTick),
				strconv.Itoa(job.Span().Length()),
				job.ExportPath,
			})
		}
	}
	return rows
}
