package demolog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// LogExtension is the file extension of event logs.
const LogExtension = ".json"

var (
	// ErrParse marks malformed documents and kill counts.
	ErrParse = errors.New("event log parse error")
	// ErrRead marks files that could not be opened or read.
	ErrRead = errors.New("event log read error")
)

type rawLog struct {
	Events []rawEvent `json:"events"`
}

type rawEvent struct {
	Name  string  `json:"name"`
	Value *string `json:"value"`
	Tick  int32   `json:"tick"`
}

// Parse decodes an event log document. Events are returned ordered by tick;
// events sharing a tick keep their file order.
func Parse(r io.Reader) ([]KillEvent, error) {
	var raw rawLog
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	events := make([]KillEvent, 0, len(raw.Events))
	for idx, ev := range raw.Events {
		kills, err := parseKillCount(ev.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: event %d (%s at tick %d): %w", ErrParse, idx, ev.Name, ev.Tick, err)
		}
		events = append(events, KillEvent{Name: ev.Name, Tick: int(ev.Tick), KillCount: kills})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Tick < events[j].Tick
	})
	return events, nil
}

// A missing value counts as zero kills, matching how the logs were produced.
// Kill counts and ticks are 32-bit in the log format.
func parseKillCount(value *string) (int, error) {
	if value == nil {
		return 0, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(*value), 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("kill count %q is out of range", *value)
		}
		return 0, fmt.Errorf("kill count %q is not an integer", *value)
	}
	return int(n), nil
}

// LoadFile reads and parses one event log.
func LoadFile(path string) (EventLog, error) {
	file, err := os.Open(path)
	if err != nil {
		return EventLog{}, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer file.Close()

	events, err := Parse(file)
	if err != nil {
		return EventLog{}, err
	}
	return EventLog{
		Key:        KeyForPath(path),
		SourcePath: path,
		Events:     events,
	}, nil
}

// KeyForPath strips the log extension from path.
func KeyForPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), LogExtension) {
		return path[:len(path)-len(LogExtension)]
	}
	return path
}
