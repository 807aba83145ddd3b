package batchfile_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"demobatch/internal/batchfile"
)

func fixedNow() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func TestFileTime(t *testing.T) {
	if got := batchfile.FileTime(time.Unix(0, 0)); got != 116444736000000000 {
		t.Fatalf("FileTime(unix epoch) = %d", got)
	}
	// 2024-05-01T12:00:00Z
	if got := batchfile.FileTime(fixedNow()); got != 133590384000000000 {
		t.Fatalf("FileTime = %d", got)
	}
}

func TestWriteCreatesTimestampedScript(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scripts")
	w := &batchfile.Writer{Dir: dir, Prefix: "RenderDemo-Batcher_", Extension: ".bat", Now: fixedNow}

	path, err := w.Write(context.Background(), []string{"renderdemo a", "renderdemo b"})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Base(path) != "RenderDemo-Batcher_133590384000000000.bat" {
		t.Fatalf("unexpected name: %s", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read script: %v", err)
	}
	if string(data) != "renderdemo a\nrenderdemo b\n" {
		t.Fatalf("unexpected content: %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestWriteNeverOverwritesExistingScript(t *testing.T) {
	dir := t.TempDir()
	w := &batchfile.Writer{Dir: dir, Prefix: "run_", Extension: ".bat", Now: fixedNow}

	stamp := batchfile.FileTime(fixedNow())
	existing := filepath.Join(dir, w.Name(stamp))
	if err := os.WriteFile(existing, []byte("previous run\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	first, err := w.Write(context.Background(), []string{"one"})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	second, err := w.Write(context.Background(), []string{"two"})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	if filepath.Base(first) != w.Name(stamp+1) || filepath.Base(second) != w.Name(stamp+2) {
		t.Fatalf("unexpected names: %s, %s", filepath.Base(first), filepath.Base(second))
	}
	data, err := os.ReadFile(existing)
	if err != nil || string(data) != "previous run\n" {
		t.Fatalf("existing script was modified: %q (%v)", data, err)
	}
}

func TestWriteEmptyScript(t *testing.T) {
	w := &batchfile.Writer{Dir: t.TempDir(), Prefix: "p_", Extension: ".bat", Now: fixedNow}
	path, err := w.Write(context.Background(), nil)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() != 0 {
		t.Fatalf("expected empty script, got %d bytes", info.Size())
	}
}

func TestWriteWaitsForLock(t *testing.T) {
	dir := t.TempDir()
	holder := flock.New(filepath.Join(dir, batchfile.LockFileName))
	if ok, err := holder.TryLock(); err != nil || !ok {
		t.Fatalf("hold lock: ok=%v err=%v", ok, err)
	}
	defer holder.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	w := &batchfile.Writer{Dir: dir, Prefix: "p_", Extension: ".bat", Now: fixedNow}
	if _, err := w.Write(ctx, []string{"x"}); err == nil {
		t.Fatal("expected lock acquisition to fail while another writer holds it")
	}
	if matches, _ := filepath.Glob(filepath.Join(dir, "p_*")); len(matches) != 0 {
		t.Fatalf("script written without the lock: %v", matches)
	}
}

func TestWriteRequiresDirectory(t *testing.T) {
	w := &batchfile.Writer{}
	if _, err := w.Write(context.Background(), []string{"x"}); err == nil {
		t.Fatal("expected error without output directory")
	}
}
