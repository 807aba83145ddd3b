package batch

import (
	"errors"
	"fmt"
	"strings"

	"demobatch/internal/demolog"
)

var (
	ErrSettings = errors.New("settings error")
	ErrOutput   = errors.New("output error")
	ErrParse    = errors.New("parse error")
	ErrIO       = errors.New("io error")
)

// Exit statuses reported by the CLI.
const (
	ExitOK      = 0
	ExitFatal   = 1
	ExitPartial = 2
)

// Wrap builds an error message that includes operation context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps a run outcome to a process exit status: fatal errors win,
// then a written script with skipped logs, then success.
func ExitCode(summary *Summary, err error) int {
	if err != nil {
		return ExitFatal
	}
	if summary != nil && summary.Partial() {
		return ExitPartial
	}
	return ExitOK
}

// classifyFailure tags a per-file collection failure.
func classifyFailure(f demolog.Failure) error {
	if errors.Is(f.Err, demolog.ErrRead) {
		return Wrap(ErrIO, "read event log", f.Path, f.Err)
	}
	return Wrap(ErrParse, "parse event log", f.Path, f.Err)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "batch failure"
	}
	return strings.Join(parts, ": ")
}
