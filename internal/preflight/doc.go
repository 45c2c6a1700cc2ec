// Package preflight provides readiness checks for the external registry and
// filesystem paths the pipeline depends on.
//
// These checks run in two contexts:
//   - A trigger invocation runs CheckSystemDeps before launching the
//     pipeline, so a missing binary fails fast instead of mid-run.
//   - "tvhshrink config validate" runs RunAll and CheckSystemDeps to display
//     registry, filesystem, and tool health.
package preflight
