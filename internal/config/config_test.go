package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"demobatch/internal/config"
)

func TestLoadOriginalSettingsJSON(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "settings.json")
	writeFile(t, configPath, `{
  "hl2Path": "C:\\TF2\\hl2.exe",
  "demoDirectory": "demos",
  "exportPrefix": "out",
  "windowState": "HIDDEN"
}`)

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.HL2Path != `C:\TF2\hl2.exe` {
		t.Fatalf("unexpected hl2 path: %q", cfg.HL2Path)
	}
	if cfg.DemoDirectory != "demos" {
		t.Fatalf("expected demo directory to stay relative, got %q", cfg.DemoDirectory)
	}
	if cfg.Profile != "both" || cfg.Overwrite != "yes" {
		t.Fatalf("expected enum defaults, got profile=%q overwrite=%q", cfg.Profile, cfg.Overwrite)
	}
	if cfg.WindowState != "hidden" {
		t.Fatalf("expected window state to be case folded, got %q", cfg.WindowState)
	}
	if cfg.LaunchOptions != "" || cfg.PreRecordCommand != "" {
		t.Fatalf("expected empty optional fields, got %q / %q", cfg.LaunchOptions, cfg.PreRecordCommand)
	}
	defaults := config.Default()
	if cfg.Clips != defaults.Clips {
		t.Fatalf("expected default clip tuning, got %+v", cfg.Clips)
	}
	if !filepath.IsAbs(cfg.Output.Dir) {
		t.Fatalf("expected absolute output dir, got %q", cfg.Output.Dir)
	}
	if cfg.History.Path != filepath.Join(cfg.Output.Dir, "demobatch-history.db") {
		t.Fatalf("unexpected history path: %q", cfg.History.Path)
	}
}

func TestLoadTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "settings.toml")

	type payload struct {
		HL2Path       string `toml:"hl2_path"`
		DemoDirectory string `toml:"demo_directory"`
		Profile       string `toml:"profile"`
		Clips         struct {
			TicksPerKill          int `toml:"ticks_per_kill"`
			ContinuationTolerance int `toml:"continuation_tolerance"`
		} `toml:"clips"`
		Output struct {
			Dir       string `toml:"dir"`
			Extension string `toml:"extension"`
		} `toml:"output"`
	}
	custom := payload{HL2Path: "hl2.exe", DemoDirectory: "demos", Profile: "video"}
	custom.Clips.TicksPerKill = 500
	custom.Clips.ContinuationTolerance = 0
	custom.Output.Dir = filepath.Join(tempDir, "scripts")
	custom.Output.Extension = "cmd"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	writeFile(t, configPath, string(data))

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Profile != "video" {
		t.Fatalf("unexpected profile: %q", cfg.Profile)
	}
	if cfg.Clips.TicksPerKill != 500 || cfg.Clips.ContinuationTolerance != 0 {
		t.Fatalf("unexpected clips: %+v", cfg.Clips)
	}
	if cfg.Clips.StartTickOffset != -990 || cfg.Clips.TickEndOffset != 990 {
		t.Fatalf("expected untouched clip keys to keep defaults, got %+v", cfg.Clips)
	}
	if cfg.Output.Extension != ".cmd" {
		t.Fatalf("expected extension to gain a dot, got %q", cfg.Output.Extension)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if info, err := os.Stat(custom.Output.Dir); err != nil || !info.IsDir() {
		t.Fatalf("expected output dir to exist: %v", err)
	}
}

func TestLoadSearchesWorkingDirectory(t *testing.T) {
	tempDir := t.TempDir()
	t.Chdir(tempDir)
	writeFile(t, filepath.Join(tempDir, "settings.json"), `{"hl2Path":"hl2.exe","demoDirectory":"demos"}`)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "settings.json" {
		t.Fatalf("expected settings.json to be found, got %q exists=%v", resolved, exists)
	}
	if cfg.HL2Path != "hl2.exe" {
		t.Fatalf("unexpected hl2 path: %q", cfg.HL2Path)
	}

	writeFile(t, filepath.Join(tempDir, "settings.toml"), "hl2_path = \"toml.exe\"\ndemo_directory = \"demos\"\n")
	cfg, resolved, _, err = config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if filepath.Base(resolved) != "settings.toml" || cfg.HL2Path != "toml.exe" {
		t.Fatalf("expected settings.toml to take precedence, got %q (%q)", resolved, cfg.HL2Path)
	}
}

func TestLoadMissingFileRequiresSettings(t *testing.T) {
	tempDir := t.TempDir()
	t.Chdir(tempDir)

	_, _, _, err := config.Load("")
	if err == nil {
		t.Fatal("expected error when no settings file exists")
	}
	if !strings.Contains(err.Error(), "hl2Path is required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, configPath, `{"hl2Path": `)

	if _, _, _, err := config.Load(configPath); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"missing demo directory", func(c *config.Config) { c.DemoDirectory = "" }, "demoDirectory is required"},
		{"profile", func(c *config.Config) { c.Profile = "hd" }, "profile must be one of"},
		{"overwrite", func(c *config.Config) { c.Overwrite = "maybe" }, "overwrite must be one of"},
		{"window state", func(c *config.Config) { c.WindowState = "full" }, "windowState must be one of"},
		{"ticks per kill", func(c *config.Config) { c.Clips.TicksPerKill = -1 }, "ticks_per_kill"},
		{"tolerance", func(c *config.Config) { c.Clips.ContinuationTolerance = -5 }, "continuation_tolerance"},
		{"offsets", func(c *config.Config) { c.Clips.StartTickOffset = 2000 }, "start_tick_offset"},
		{"prefix", func(c *config.Config) { c.Output.Prefix = "a/b" }, "output.prefix"},
		{"level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.HL2Path = "hl2.exe"
			cfg.DemoDirectory = "demos"
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleLoads(t *testing.T) {
	for _, name := range []string{"settings.toml", "settings.json"} {
		t.Run(name, func(t *testing.T) {
			target := filepath.Join(t.TempDir(), "nested", name)
			if err := config.CreateSample(target); err != nil {
				t.Fatalf("CreateSample failed: %v", err)
			}
			cfg, _, exists, err := config.Load(target)
			if err != nil {
				t.Fatalf("Load sample: %v", err)
			}
			if !exists {
				t.Fatal("expected sample to exist")
			}
			if !strings.HasSuffix(cfg.HL2Path, "hl2.exe") {
				t.Fatalf("unexpected sample hl2 path: %q", cfg.HL2Path)
			}
			if cfg.ExportPrefix != "recordings" {
				t.Fatalf("unexpected sample export prefix: %q", cfg.ExportPrefix)
			}
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
