package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
)

func (c *Config) normalize() error {
	if err := c.normalizeRenderer(); err != nil {
		return err
	}
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeRenderer() error {
	var err error
	c.HL2Path = strings.TrimSpace(c.HL2Path)
	c.DemoDirectory = strings.TrimSpace(c.DemoDirectory)
	if c.DemoDirectory, err = expandHome(c.DemoDirectory); err != nil {
		return fmt.Errorf("demoDirectory: %w", err)
	}
	c.ExportPrefix = strings.TrimSpace(c.ExportPrefix)
	c.Profile = normalizeEnum(c.Profile, defaultProfile)
	c.Overwrite = normalizeEnum(c.Overwrite, defaultOverwrite)
	c.WindowState = normalizeEnum(c.WindowState, defaultWindowState)
	return nil
}

func (c *Config) normalizeOutput() error {
	var err error
	if strings.TrimSpace(c.Output.Dir) == "" {
		c.Output.Dir = defaultOutputDir
	}
	if c.Output.Dir, err = expandPath(strings.TrimSpace(c.Output.Dir)); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	c.Output.Prefix = strings.TrimSpace(c.Output.Prefix)
	if c.Output.Prefix == "" {
		c.Output.Prefix = defaultOutputPrefix
	}
	c.Output.Extension = normalizeExtension(c.Output.Extension, defaultOutputExtension)
	c.Output.ClipExtension = normalizeExtension(c.Output.ClipExtension, defaultClipExtension)
	c.Output.Executable = strings.TrimSpace(c.Output.Executable)
	if c.Output.Executable == "" {
		c.Output.Executable = defaultExecutable
	}
	return nil
}

func (c *Config) normalizeHistory() error {
	var err error
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = filepath.Join(c.Output.Dir, defaultHistoryFile)
	}
	if c.History.Path, err = expandPath(strings.TrimSpace(c.History.Path)); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func normalizeEnum(value, fallback string) string {
	value = cases.Fold().String(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	return value
}

func normalizeExtension(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	if !strings.HasPrefix(value, ".") {
		value = "." + value
	}
	return value
}
