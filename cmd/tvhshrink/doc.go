// Package main hosts the tvhshrink CLI entrypoint and command graph.
//
// The root invocation is the TVHeadend post-processor trigger: it receives a
// recording identifier and completion status, and when the status is OK runs
// the full detect/encode/relocate pipeline. Diagnostic subcommands expose the
// individual pieces (detector report analysis, bitrate probing, configuration
// scaffolding and validation) for operators debugging a misbehaving run.
//
// Keep this package thin: new behavior belongs in the internal packages
// first, surfaced here through dedicated commands or flags.
package main
