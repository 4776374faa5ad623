// Package main hosts the subgauge CLI entrypoint and command graph.
//
// The Cobra-based command tree exposes the reading speed calculator to the
// terminal: a single status line for ad hoc text, a per-cue report for SRT
// files, the history of recorded analyses, and configuration scaffolding.
// Configuration and logging are resolved once per invocation in the command
// context so subcommands stay declarative.
package main
