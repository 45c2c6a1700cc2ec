// Package comskip invokes the comskip commercial detector and locates the
// frame report it produces.
package comskip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"tvhshrink/internal/logging"
	"tvhshrink/internal/services"
)

// Option configures the detector.
type Option func(*Detector)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec services.Executor) Option {
	return func(d *Detector) {
		if exec != nil {
			d.exec = exec
		}
	}
}

// WithLogger attaches a logger for detector output lines.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) {
		if logger != nil {
			d.logger = logging.NewComponentLogger(logger, "comskip")
		}
	}
}

// Detector wraps comskip CLI interactions.
type Detector struct {
	binary string
	ini    string
	exec   services.Executor
	logger *slog.Logger
}

// New constructs a detector. The ini path is optional.
func New(binary, ini string, opts ...Option) (*Detector, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("comskip binary required")
	}
	detector := &Detector{
		binary: binary,
		ini:    strings.TrimSpace(ini),
		exec:   services.CommandExecutor{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(detector)
	}
	return detector, nil
}

// Run executes comskip against source, writing into outDir, and returns the
// path of the frame report. The report path is derived from the source base
// name; whether the file exists is the reader's concern, only a non-zero
// detector exit fails the run.
func (d *Detector) Run(ctx context.Context, source, outDir string) (string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return "", services.Wrap(services.ErrValidation, "detect", "comskip", "source path required", nil)
	}
	outDir = strings.TrimSpace(outDir)
	if outDir == "" {
		return "", services.Wrap(services.ErrValidation, "detect", "comskip", "output directory required", nil)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrDetectionFailed, "detect", "comskip", "create output directory", err)
	}

	args := make([]string, 0, 3)
	if d.ini != "" {
		args = append(args, "--ini="+d.ini)
	}
	args = append(args, source, outDir)

	if err := d.exec.Run(ctx, d.binary, args, func(line string) {
		d.logger.Debug("detector output", logging.String("line", line))
	}); err != nil {
		return "", services.Wrap(services.ErrDetectionFailed, "detect", "comskip", fmt.Sprintf("run against %s", source), err)
	}
	return ReportPath(source, outDir), nil
}

// ReportPath returns the report location comskip uses for the given source:
// the source base name with a .txt extension inside outDir.
func ReportPath(source, outDir string) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, stem+".txt")
}
