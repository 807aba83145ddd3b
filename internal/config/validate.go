package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRenderer(); err != nil {
		return err
	}
	if err := c.validateClips(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRenderer() error {
	if c.HL2Path == "" {
		return fmt.Errorf("hl2Path is required. Edit %s (create with 'demobatch config init')", defaultPathHint())
	}
	if c.DemoDirectory == "" {
		return fmt.Errorf("demoDirectory is required. Edit %s (create with 'demobatch config init')", defaultPathHint())
	}
	if err := ensureOneOf("profile", c.Profile, Profiles); err != nil {
		return err
	}
	if err := ensureOneOf("overwrite", c.Overwrite, Overwrites); err != nil {
		return err
	}
	if err := ensureOneOf("windowState", c.WindowState, WindowStates); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateClips() error {
	if c.Clips.TicksPerKill < 0 {
		return errors.New("clips.ticks_per_kill must be >= 0")
	}
	if c.Clips.ContinuationTolerance < 0 {
		return errors.New("clips.continuation_tolerance must be >= 0")
	}
	if c.Clips.StartTickOffset > c.Clips.TickEndOffset {
		return errors.New("clips.start_tick_offset must not exceed clips.tick_end_offset")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if strings.ContainsAny(c.Output.Prefix, `/\`) {
		return errors.New("output.prefix must be a file name prefix, not a path")
	}
	if strings.ContainsAny(c.Output.Executable, "\"\r\n") {
		return errors.New("output.executable must not contain quotes or line breaks")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func ensureOneOf(key, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return fmt.Errorf("%s must be one of %s (got %q)", key, strings.Join(allowed, "|"), value)
}

func defaultPathHint() string {
	path, err := DefaultConfigPath()
	if err != nil {
		return "settings.json"
	}
	return path
}
