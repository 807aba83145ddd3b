package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// Event describes one fixture event; Value is written as a string like the
// real logs.
type Event struct {
	Name  string
	Kills int
	Tick  int
}

// WriteEventLog writes a well-formed event log named name into dir and
// returns its path.
func WriteEventLog(t testing.TB, dir, name string, events ...Event) string {
	t.Helper()

	type rawEvent struct {
		Name  string `json:"name"`
		Value string `json:"value"`
		Tick  int    `json:"tick"`
	}
	doc := struct {
		Events []rawEvent `json:"events"`
	}{Events: make([]rawEvent, 0, len(events))}
	for _, ev := range events {
		label := ev.Name
		if label == "" {
			label = "Killstreak"
		}
		doc.Events = append(doc.Events, rawEvent{Name: label, Value: strconv.Itoa(ev.Kills), Tick: ev.Tick})
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("marshal event log: %v", err)
	}
	return WriteRaw(t, filepath.Join(dir, name), string(data))
}

// WriteRaw writes content to path, creating parent directories.
func WriteRaw(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
