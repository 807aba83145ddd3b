package demolog

// KillEvent is one logged event: the tick it happened on and the number of
// kills credited to it.
type KillEvent struct {
	Name      string
	Tick      int
	KillCount int
}

// EventLog is the fully materialized event list for one demo.
type EventLog struct {
	// Key identifies the demo: the source path without its .json extension.
	// It doubles as the demo path handed to the renderer.
	Key        string
	SourcePath string
	Events     []KillEvent
}

// Empty reports whether the log holds no events.
func (l EventLog) Empty() bool {
	return len(l.Events) == 0
}

// Failure records a log file that could not be loaded.
type Failure struct {
	Path string
	Err  error
}

// Collection is the result of scanning a demo directory.
type Collection struct {
	Logs     []EventLog
	Failures []Failure
}
