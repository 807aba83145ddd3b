package renderjob

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultExecutable is the renderer invoked by generated scripts.
const DefaultExecutable = "renderdemo"

// ErrMalformedCommand is returned by ParseCommand for lines it cannot read.
var ErrMalformedCommand = errors.New("malformed render command")

// Command formats the job as a single renderer command line. Values are
// inserted verbatim between double quotes. The launch and pre-record
// segments are only emitted when they hold something other than whitespace.
func (j RenderJob) Command(executable string) string {
	var b strings.Builder
	b.WriteString(formatExecutable(executable))
	fmt.Fprintf(&b, ` -exepath "%s" -demo "%s" -start %d -end %d -out "%s"`,
		j.HL2Path, j.DemoPath, j.StartTick, j.EndTick, j.ExportPath)
	if strings.TrimSpace(j.LaunchOptions) != "" {
		fmt.Fprintf(&b, ` -launch "%s"`, j.LaunchOptions)
	}
	if strings.TrimSpace(j.PreRecordCommand) != "" {
		fmt.Fprintf(&b, ` -cmd "%s"`, j.PreRecordCommand)
	}
	return b.String()
}

func formatExecutable(executable string) string {
	executable = strings.TrimSpace(executable)
	if executable == "" {
		return DefaultExecutable
	}
	if strings.ContainsAny(executable, " \t") {
		return `"` + executable + `"`
	}
	return executable
}

// ParseCommand reads a line produced by Command back into a job. Only the
// emitted fields are recovered; profile, overwrite and window state stay
// empty. Values containing a double quote cannot be represented and do not
// round-trip.
func ParseCommand(line string) (RenderJob, error) {
	tokens, err := tokenize(line)
	if err != nil {
		return RenderJob{}, err
	}
	if len(tokens) == 0 {
		return RenderJob{}, fmt.Errorf("%w: empty line", ErrMalformedCommand)
	}

	var job RenderJob
	seen := make(map[string]bool, 7)
	args := tokens[1:]
	for i := 0; i < len(args); i += 2 {
		flag := args[i]
		if i+1 >= len(args) {
			return RenderJob{}, fmt.Errorf("%w: flag %s has no value", ErrMalformedCommand, flag)
		}
		value := args[i+1]
		if seen[flag] {
			return RenderJob{}, fmt.Errorf("%w: flag %s repeated", ErrMalformedCommand, flag)
		}
		seen[flag] = true

		switch flag {
		case "-exepath":
			job.HL2Path = value
		case "-demo":
			job.DemoPath = value
		case "-out":
			job.ExportPath = value
		case "-launch":
			job.LaunchOptions = value
		case "-cmd":
			job.PreRecordCommand = value
		case "-start", "-end":
			tick, err := strconv.Atoi(value)
			if err != nil {
				return RenderJob{}, fmt.Errorf("%w: %s value %q is not an integer", ErrMalformedCommand, flag, value)
			}
			if flag == "-start" {
				job.StartTick = tick
			} else {
				job.EndTick = tick
			}
		default:
			return RenderJob{}, fmt.Errorf("%w: unknown flag %q", ErrMalformedCommand, flag)
		}
	}

	for _, required := range []string{"-exepath", "-demo", "-start", "-end", "-out"} {
		if !seen[required] {
			return RenderJob{}, fmt.Errorf("%w: missing %s", ErrMalformedCommand, required)
		}
	}
	return job, nil
}

// tokenize splits a command line on whitespace. A double-quoted run is one
// token taken verbatim, and an empty pair of quotes yields an empty token.
func tokenize(line string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		inQuote bool
		started bool
	)
	for _, r := range strings.TrimRight(line, "\r\n") {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case !inQuote && (r == ' ' || r == '\t'):
			if started {
				tokens = append(tokens, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if inQuote {
		return nil, fmt.Errorf("%w: unterminated quote", ErrMalformedCommand)
	}
	if started {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}
