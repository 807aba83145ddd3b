// Package main hosts the demobatch CLI entrypoint and command graph.
//
// Running demobatch with no subcommand reads settings.toml or settings.json
// from the working directory, turns every event log in the demo directory
// into renderdemo commands, and writes them to a timestamped batch script.
// The subcommands preview spans, scaffold and check settings, and list the
// scripts written by earlier runs.
//
// Keep this package lean: the run itself lives in internal/batch, and the
// commands here only resolve settings, build the logger, and render output.
package main
