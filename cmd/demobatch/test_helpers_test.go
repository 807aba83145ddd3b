package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	demoDir    string
	outDir     string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		demoDir:    filepath.Join(base, "demos"),
		outDir:     filepath.Join(base, "out"),
		configPath: filepath.Join(base, "settings.json"),
	}
	if err := os.MkdirAll(env.demoDir, 0o755); err != nil {
		t.Fatalf("mkdir demos: %v", err)
	}

	settings := map[string]any{
		"hl2Path":       `C:\TF2\hl2.exe`,
		"demoDirectory": env.demoDir,
		"exportPrefix":  "recordings",
		"output":        map[string]any{"dir": env.outDir},
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		t.Fatalf("marshal settings: %v", err)
	}
	if err := os.WriteFile(env.configPath, data, 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return env
}

func (e *cliTestEnv) writeLog(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(e.demoDir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
}

func (e *cliTestEnv) scripts(t *testing.T) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(e.outDir, "RenderDemo-Batcher_*.bat"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	return matches
}

// runCLI executes the command tree like main does and returns stdout,
// stderr and the exit status.
func runCLI(t *testing.T, configPath string, args ...string) (string, string, int) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	code := execute(context.Background(), cmd, &stderr)
	return stdout.String(), stderr.String(), code
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
