package demolog_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"demobatch/internal/demolog"
	"demobatch/internal/logging"
	"demobatch/internal/testsupport"
)

func TestParseConvertsKillCountsOnce(t *testing.T) {
	doc := `{"events":[
		{"name":"Killstreak","value":"3","tick":5000},
		{"name":"Bookmark","value":" 1 ","tick":1200},
		{"name":"Killstreak","tick":1200}
	]}`
	events, err := demolog.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := []demolog.KillEvent{
		{Name: "Bookmark", Tick: 1200, KillCount: 1},
		{Name: "Killstreak", Tick: 1200, KillCount: 0},
		{Name: "Killstreak", Tick: 5000, KillCount: 3},
	}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("event %d = %+v, want %+v", i, events[i], want[i])
		}
	}
}

func TestParseRejectsNonIntegerKillCount(t *testing.T) {
	doc := `{"events":[{"name":"Killstreak","value":"1","tick":10},{"name":"Killstreak","value":"three","tick":20}]}`
	_, err := demolog.Parse(strings.NewReader(doc))
	if err == nil {
		t.Fatal("expected error for non-integer kill count")
	}
	if !errors.Is(err, demolog.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	if !strings.Contains(err.Error(), "event 1") || !strings.Contains(err.Error(), `"three"`) {
		t.Fatalf("expected error to name the event and value, got %v", err)
	}
}

func TestParseRejectsOutOfRangeValues(t *testing.T) {
	cases := map[string]string{
		"kill count":          `{"events":[{"name":"Killstreak","value":"9400000000000000","tick":5000}]}`,
		"negative kill count": `{"events":[{"name":"Killstreak","value":"-2147483649","tick":5000}]}`,
		"tick":                `{"events":[{"name":"Killstreak","value":"1","tick":9400000000000000}]}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := demolog.Parse(strings.NewReader(doc))
			if !errors.Is(err, demolog.ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
		})
	}
}

func TestParseAcceptsLargestKillCount(t *testing.T) {
	events, err := demolog.Parse(strings.NewReader(`{"events":[{"name":"Killstreak","value":"2147483647","tick":2147483647}]}`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if events[0].KillCount != 2147483647 || events[0].Tick != 2147483647 {
		t.Fatalf("unexpected event: %+v", events[0])
	}
}

func TestParseMissingEventsIsEmpty(t *testing.T) {
	events, err := demolog.Parse(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

func TestKeyForPath(t *testing.T) {
	cases := map[string]string{
		"demos/match.json":      "demos/match",
		"demos/MATCH.JSON":      "demos/MATCH",
		"demos/match.json.json": "demos/match.json",
		"demos/match.dem":       "demos/match.dem",
	}
	for in, want := range cases {
		if got := demolog.KeyForPath(in); got != want {
			t.Errorf("KeyForPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCollectSkipsBrokenFilesAndSortsKeys(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := cfg.DemoDirectory

	testsupport.WriteEventLog(t, dir, "zeta.json", testsupport.Event{Kills: 1, Tick: 1000})
	testsupport.WriteEventLog(t, dir, "alpha.json", testsupport.Event{Kills: 2, Tick: 500}, testsupport.Event{Kills: 1, Tick: 9000})
	testsupport.WriteEventLog(t, dir, "empty.json")
	testsupport.WriteRaw(t, filepath.Join(dir, "broken.json"), `{"events": [`)
	testsupport.WriteRaw(t, filepath.Join(dir, "badvalue.json"), `{"events":[{"name":"x","value":"NaN","tick":1}]}`)
	testsupport.WriteRaw(t, filepath.Join(dir, "notes.txt"), "ignored")
	testsupport.WriteEventLog(t, filepath.Join(dir, "nested"), "deep.json", testsupport.Event{Kills: 1, Tick: 1})

	var logs bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &logs})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}

	collection, err := demolog.Collect(dir, demolog.CollectOptions{Logger: logger})
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}

	var keys []string
	for _, l := range collection.Logs {
		keys = append(keys, filepath.Base(l.Key))
	}
	if got := strings.Join(keys, ","); got != "alpha,empty,zeta" {
		t.Fatalf("unexpected keys: %s", got)
	}
	if !collection.Logs[1].Empty() {
		t.Fatal("expected empty log to load with no events")
	}
	if collection.Logs[0].Key != filepath.Join(dir, "alpha") {
		t.Fatalf("unexpected key: %q", collection.Logs[0].Key)
	}

	if len(collection.Failures) != 2 {
		t.Fatalf("expected 2 failures, got %+v", collection.Failures)
	}
	for _, failure := range collection.Failures {
		if !errors.Is(failure.Err, demolog.ErrParse) {
			t.Fatalf("expected parse failure for %s, got %v", failure.Path, failure.Err)
		}
		if !strings.Contains(logs.String(), failure.Path) {
			t.Fatalf("expected warning naming %s, got %s", failure.Path, logs.String())
		}
	}
}

func TestCollectRecursive(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteEventLog(t, dir, "top.json", testsupport.Event{Kills: 1, Tick: 10})
	testsupport.WriteEventLog(t, filepath.Join(dir, "week1"), "deep.json", testsupport.Event{Kills: 1, Tick: 10})

	collection, err := demolog.Collect(dir, demolog.CollectOptions{Recursive: true})
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if len(collection.Logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(collection.Logs))
	}
	if collection.Logs[1].Key != filepath.Join(dir, "week1", "deep") {
		t.Fatalf("unexpected nested key: %q", collection.Logs[1].Key)
	}
}

func TestCollectReportsUnreadableSubdirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	dir := t.TempDir()
	testsupport.WriteEventLog(t, dir, "top.json", testsupport.Event{Kills: 1, Tick: 10})
	locked := filepath.Join(dir, "locked")
	testsupport.WriteEventLog(t, locked, "hidden.json", testsupport.Event{Kills: 1, Tick: 10})
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	var logs bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &logs})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}

	collection, err := demolog.Collect(dir, demolog.CollectOptions{Recursive: true, Logger: logger})
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if len(collection.Logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(collection.Logs))
	}
	if len(collection.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %+v", collection.Failures)
	}
	failure := collection.Failures[0]
	if failure.Path != locked || !errors.Is(failure.Err, demolog.ErrRead) {
		t.Fatalf("unexpected failure: %s %v", failure.Path, failure.Err)
	}
	if !strings.Contains(logs.String(), "event_log_directory_unreadable") {
		t.Fatalf("expected warning for %s, got %s", locked, logs.String())
	}
}

func TestCollectMissingDirectory(t *testing.T) {
	_, err := demolog.Collect(filepath.Join(t.TempDir(), "missing"), demolog.CollectOptions{})
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
