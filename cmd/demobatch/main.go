package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"demobatch/internal/batch"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, newRootCommand(), os.Stderr)
	cancel()
	os.Exit(code)
}

// exitError carries a non-fatal exit status out of a command that already
// reported its result.
type exitError struct {
	code    int
	message string
}

func (e *exitError) Error() string {
	return e.message
}

func execute(ctx context.Context, cmd *cobra.Command, stderr io.Writer) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return batch.ExitOK
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		if exitErr.message != "" {
			fmt.Fprintln(stderr, exitErr.message)
		}
		return exitErr.code
	}
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, err)
	}
	return batch.ExitFatal
}
