package batchfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

const (
	// LockFileName is created in the output directory while a script is written.
	LockFileName = ".demobatch.lock"

	lockRetryDelay = 50 * time.Millisecond
	maxNameProbes  = 1000
)

// filetimeEpochOffset is the number of 100ns intervals between 1601-01-01
// and the Unix epoch.
const filetimeEpochOffset = 116444736000000000

// ErrNameExhausted is returned when no free script name could be found.
var ErrNameExhausted = errors.New("no free script name")

// FileTime converts t to a Windows FILETIME value.
func FileTime(t time.Time) int64 {
	return t.UnixNano()/100 + filetimeEpochOffset
}

// Writer creates script files in Dir.
type Writer struct {
	Dir       string
	Prefix    string
	Extension string
	// Now returns the timestamp embedded in the name. Defaults to time.Now.
	Now func() time.Time
}

// Name returns the script file name for stamp.
func (w *Writer) Name(stamp int64) string {
	return w.Prefix + strconv.FormatInt(stamp, 10) + w.Extension
}

// Write stores lines as a new script and returns its path. Each line is
// terminated by "\n". An existing file is never replaced: when the
// timestamped name is taken the stamp is incremented until a free name is
// found.
func (w *Writer) Write(ctx context.Context, lines []string) (string, error) {
	if strings.TrimSpace(w.Dir) == "" {
		return "", errors.New("batchfile: output directory is not set")
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	lock := flock.New(filepath.Join(w.Dir, LockFileName))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return "", fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return "", errors.New("acquire output lock: directory is busy")
	}
	defer func() {
		_ = lock.Unlock()
	}()

	target, err := w.reserve()
	if err != nil {
		return "", err
	}

	if err := writeReplacing(target, render(lines)); err != nil {
		_ = os.Remove(target)
		return "", err
	}
	return target, nil
}

// reserve creates an empty placeholder under the first free name.
func (w *Writer) reserve() (string, error) {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	stamp := FileTime(now())

	for probe := 0; probe < maxNameProbes; probe++ {
		target := filepath.Join(w.Dir, w.Name(stamp+int64(probe)))
		file, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			if err := file.Close(); err != nil {
				_ = os.Remove(target)
				return "", fmt.Errorf("reserve script name: %w", err)
			}
			return target, nil
		}
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return "", fmt.Errorf("reserve script name: %w", err)
	}
	return "", fmt.Errorf("%w after %d attempts in %s", ErrNameExhausted, maxNameProbes, w.Dir)
}

func writeReplacing(target string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".demobatch-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func render(lines []string) []byte {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
