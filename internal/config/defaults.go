package config

const (
	defaultProfile               = "both"
	defaultOverwrite             = "yes"
	defaultWindowState           = "broken"
	defaultStartTickOffset       = -990
	defaultTicksPerKill          = 990
	defaultTickEndOffset         = 990
	defaultContinuationTolerance = 1980
	defaultOutputDir             = "."
	defaultOutputPrefix          = "RenderDemo-Batcher_"
	defaultOutputExtension       = ".bat"
	defaultClipExtension         = ".avi"
	defaultExecutable            = "renderdemo"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultHistoryFile           = "demobatch-history.db"
)

// Valid values for the renderer enum settings.
var (
	Profiles     = []string{"video", "audio", "both"}
	Overwrites   = []string{"yes", "no", "ask"}
	WindowStates = []string{"hidden", "broken", "fixed"}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Profile:     defaultProfile,
		Overwrite:   defaultOverwrite,
		WindowState: defaultWindowState,
		Clips: Clips{
			StartTickOffset:       defaultStartTickOffset,
			TicksPerKill:          defaultTicksPerKill,
			TickEndOffset:         defaultTickEndOffset,
			ContinuationTolerance: defaultContinuationTolerance,
		},
		Output: Output{
			Dir:           defaultOutputDir,
			Prefix:        defaultOutputPrefix,
			Extension:     defaultOutputExtension,
			ClipExtension: defaultClipExtension,
			Executable:    defaultExecutable,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: true,
		},
	}
}
