package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

//go:embed sample_settings.json
var sampleSettings string

// Clips contains the tuning values for the clip span builder.
type Clips struct {
	// StartTickOffset is added to an event tick to find where recording starts.
	StartTickOffset int `json:"startTickOffset" toml:"start_tick_offset"`
	// TicksPerKill extends the lead-in once per kill credited to an event.
	TicksPerKill int `json:"ticksPerKill" toml:"ticks_per_kill"`
	// TickEndOffset is added to an event tick to find where its window ends.
	TickEndOffset int `json:"tickEndOffset" toml:"tick_end_offset"`
	// ContinuationTolerance is the largest gap merged into a single clip.
	ContinuationTolerance int  `json:"continuationTolerance" toml:"continuation_tolerance"`
	Recursive             bool `json:"recursive" toml:"recursive"`
}

// Output contains configuration for the generated batch script.
type Output struct {
	Dir           string `json:"dir" toml:"dir"`
	Prefix        string `json:"prefix" toml:"prefix"`
	Extension     string `json:"extension" toml:"extension"`
	ClipExtension string `json:"clipExtension" toml:"clip_extension"`
	Executable    string `json:"executable" toml:"executable"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `json:"format" toml:"format"`
	Level  string `json:"level" toml:"level"`
}

// History contains configuration for the run ledger.
type History struct {
	Enabled bool   `json:"enabled" toml:"enabled"`
	Path    string `json:"path" toml:"path"` // Default: <output.dir>/demobatch-history.db
}

// Config encapsulates all configuration values for a batch run.
//
// The flat fields mirror the renderer options and keep the key names of the
// original settings.json so existing files load unchanged. Sections:
//   - Clips: clip span builder tuning and log scanning
//   - Output: batch script location and naming
//   - Logging: log format and level
//   - History: SQLite ledger of generated scripts
type Config struct {
	HL2Path          string `json:"hl2Path" toml:"hl2_path"`
	DemoDirectory    string `json:"demoDirectory" toml:"demo_directory"`
	ExportPrefix     string `json:"exportPrefix" toml:"export_prefix"`
	Profile          string `json:"profile" toml:"profile"`
	Overwrite        string `json:"overwrite" toml:"overwrite"`
	LaunchOptions    string `json:"launchOptions" toml:"launch_options"`
	WindowState      string `json:"windowState" toml:"window_state"`
	PreRecordCommand string `json:"preRecordCommand" toml:"pre_record_command"`

	Clips   Clips   `json:"clips" toml:"clips"`
	Output  Output  `json:"output" toml:"output"`
	Logging Logging `json:"logging" toml:"logging"`
	History History `json:"history" toml:"history"`
}

// Candidate file names searched in the working directory, in order.
var settingsFileNames = []string{"settings.toml", "settings.json"}

// DefaultConfigPath returns the settings path used when no file exists yet.
func DefaultConfigPath() (string, error) {
	return expandPath(settingsFileNames[len(settingsFileNames)-1])
}

// Load locates, parses, and validates a settings file. The returned config
// has enum values canonicalized and local paths expanded.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := decode(file, resolvedPath, &cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func decode(r io.Reader, path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.NewDecoder(r).Decode(cfg)
	case ".toml", "":
		return toml.NewDecoder(r).Decode(cfg)
	default:
		return fmt.Errorf("unsupported settings format %q (use .json or .toml)", filepath.Ext(path))
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	for _, name := range settingsFileNames {
		candidate, err := filepath.Abs(name)
		if err != nil {
			return "", false, err
		}
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run writes into.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Output.Dir, err)
	}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) != "" {
		dir := filepath.Dir(c.History.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	expanded, err := expandHome(pathValue)
	if err != nil {
		return "", err
	}
	cleaned := filepath.Clean(expanded)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// expandHome only resolves a leading tilde. Renderer-facing paths stay
// relative because the renderer resolves them against the game directory.
func expandHome(pathValue string) (string, error) {
	if !strings.HasPrefix(pathValue, "~") {
		return pathValue, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if pathValue == "~" {
		return home, nil
	}
	if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
		return filepath.Join(home, pathValue[2:]), nil
	}
	return pathValue, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample settings file to the specified location. A
// .json target receives the original settings.json layout; anything else
// receives TOML.
func CreateSample(path string) error {
	sample := sampleConfig
	if strings.EqualFold(filepath.Ext(path), ".json") {
		sample = sampleSettings
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
