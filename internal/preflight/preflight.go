package preflight

import (
	"demobatch/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
	// Optional results only warn when they fail.
	Optional bool `json:"optional,omitempty"`
}

// Check names reported by RunAll.
const (
	NameDemoDirectory   = "Demo directory"
	NameOutputDirectory = "Output directory"
	NameGameExecutable  = "Game executable"
	NameRenderer        = "Renderer"
)

// RunAll executes all preflight checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckReadableDirectory(NameDemoDirectory, cfg.DemoDirectory),
		CheckDirectoryAccess(NameOutputDirectory, cfg.Output.Dir),
	}

	game := CheckExecutable(NameGameExecutable, cfg.HL2Path)
	game.Optional = true
	results = append(results, game)

	renderer := CheckExecutable(NameRenderer, cfg.Output.Executable)
	renderer.Optional = true
	results = append(results, renderer)

	return results
}

// Failed returns the required results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed && !r.Optional {
			failed = append(failed, r)
		}
	}
	return failed
}

// Warnings returns the optional results that did not pass.
func Warnings(results []Result) []Result {
	var warned []Result
	for _, r := range results {
		if !r.Passed && r.Optional {
			warned = append(warned, r)
		}
	}
	return warned
}
