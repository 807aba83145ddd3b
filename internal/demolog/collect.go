package demolog

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"demobatch/internal/logging"
)

// CollectOptions tunes directory scanning.
type CollectOptions struct {
	Recursive bool
	Logger    *slog.Logger
}

// Collect loads every event log in dir. Files that cannot be read or parsed
// are logged and reported in Failures; the scan continues past them. Logs are
// returned sorted by key. Only a failure to read dir itself is returned as an
// error.
func Collect(dir string, opts CollectOptions) (*Collection, error) {
	logger := logging.NewComponentLogger(opts.Logger, "collector")

	paths, dirFailures, err := listLogFiles(dir, opts.Recursive)
	if err != nil {
		return nil, err
	}

	result := &Collection{}
	for _, failure := range dirFailures {
		result.Failures = append(result.Failures, failure)
		logging.WarnWithContext(logger, "demo subdirectory skipped", "event_log_directory_unreadable",
			logging.String(logging.FieldPath, failure.Path),
			logging.Error(failure.Err),
			logging.String(logging.FieldErrorHint, "check directory permissions"),
			logging.String(logging.FieldImpact, "event logs below this directory are not rendered"),
		)
	}
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		eventLog, err := LoadFile(path)
		if err != nil {
			result.Failures = append(result.Failures, Failure{Path: path, Err: err})
			logging.WarnWithContext(logger, "event log skipped", failureEventType(err),
				logging.String(logging.FieldPath, path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, failureHint(err)),
				logging.String(logging.FieldImpact, "no clips are rendered for this demo"),
			)
			continue
		}
		if prev, dup := seen[eventLog.Key]; dup {
			err := fmt.Errorf("%w: duplicate demo key %q (also from %s)", ErrParse, eventLog.Key, prev)
			result.Failures = append(result.Failures, Failure{Path: path, Err: err})
			logging.WarnWithContext(logger, "event log skipped", "event_log_duplicate",
				logging.String(logging.FieldPath, path),
				logging.Error(err),
			)
			continue
		}
		seen[eventLog.Key] = path
		logger.Debug("event log loaded",
			logging.String(logging.FieldPath, path),
			logging.Int("events", len(eventLog.Events)),
		)
		result.Logs = append(result.Logs, eventLog)
	}

	sort.Slice(result.Logs, func(i, j int) bool {
		return result.Logs[i].Key < result.Logs[j].Key
	})
	return result, nil
}

// listLogFiles returns the event log paths under dir. When recursive,
// unreadable subdirectories are returned as failures instead of aborting.
func listLogFiles(dir string, recursive bool) ([]string, []Failure, error) {
	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("read demo directory %q: %w", dir, err)
		}
		paths := make([]string, 0, len(entries))
		for _, entry := range entries {
			if entry.IsDir() || !isLogFile(entry.Name()) {
				continue
			}
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
		return paths, nil, nil
	}

	var paths []string
	var failures []Failure
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			failures = append(failures, Failure{Path: path, Err: fmt.Errorf("%w: %w", ErrRead, err)})
			if entry != nil && !entry.IsDir() {
				return nil
			}
			return fs.SkipDir
		}
		if !entry.IsDir() && isLogFile(entry.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("read demo directory %q: %w", dir, err)
	}
	return paths, failures, nil
}

func isLogFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), LogExtension)
}

func failureEventType(err error) string {
	if errors.Is(err, ErrRead) {
		return "event_log_unreadable"
	}
	return "event_log_invalid"
}

func failureHint(err error) string {
	if errors.Is(err, ErrRead) {
		return "check file permissions"
	}
	return "fix or remove the malformed event log"
}
