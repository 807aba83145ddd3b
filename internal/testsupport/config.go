package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"demobatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The demo and output directories exist on return.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.HL2Path = `C:\TF2\hl2.exe`
	cfgVal.DemoDirectory = filepath.Join(base, "demos")
	cfgVal.ExportPrefix = "recordings"
	cfgVal.Output.Dir = filepath.Join(base, "out")
	cfgVal.History.Path = filepath.Join(base, "out", "history.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	for _, dir := range []string{builder.cfg.DemoDirectory, builder.cfg.Output.Dir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	return builder.cfg
}

// WithHistoryDisabled turns off the run ledger.
func WithHistoryDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}

// WithRendererOptions sets the optional renderer segments.
func WithRendererOptions(launchOptions, preRecordCommand string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LaunchOptions = launchOptions
		b.cfg.PreRecordCommand = preRecordCommand
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Output.Dir)
}
