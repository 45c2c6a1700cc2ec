// Package services defines shared utilities consumed by the pipeline stages
// and external-tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp stage names and run correlation identifiers
//     for logging and registry tracing.
//   - Structured error markers plus the Wrap helper that tag failures with the
//     stage, operation, and tool message an operator needs.
//   - The Executor abstraction that makes command execution and output
//     streaming from external tools testable.
//
// Use these helpers when wiring new stage logic so operational behaviour
// (error handling, observability) stays uniform across the pipeline.
package services
