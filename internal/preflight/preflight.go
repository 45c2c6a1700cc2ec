package preflight

import (
	"context"

	"tvhshrink/internal/config"
	"tvhshrink/internal/deps"
)

// MinFreeBytes is the free-space floor for the scratch directory. Encoding
// writes the full transcode there before relocation, so a nearly-full disk
// fails the run late and expensively.
const MinFreeBytes = 2 << 30

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDirectoryAccess("Work directory", cfg.Paths.WorkDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	results = append(results, CheckFreeSpace("Work directory space", cfg.Paths.WorkDir, MinFreeBytes))
	results = append(results, CheckRegistry(ctx, cfg.Registry))
	return results
}

// CheckSystemDeps evaluates the external tool binaries for the given config.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	return deps.CheckBinaries(deps.For(cfg))
}
