package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"tvhshrink/internal/comskip"
	"tvhshrink/internal/config"
	"tvhshrink/internal/encoding"
	"tvhshrink/internal/ffmetadata"
	"tvhshrink/internal/fileutil"
	"tvhshrink/internal/logging"
	"tvhshrink/internal/notifications"
	"tvhshrink/internal/segments"
	"tvhshrink/internal/services"
	"tvhshrink/internal/tvheadend"
)

// Registry is the subset of the registry client the pipeline depends on.
type Registry interface {
	LoadRecording(ctx context.Context, id string) (tvheadend.Recording, error)
	NotifyMoved(ctx context.Context, src, dst string) error
}

// Detector runs commercial detection and returns the frame report path.
type Detector interface {
	Run(ctx context.Context, source, outDir string) (string, error)
}

// Estimator computes the encoder's target bitrate for a source file.
type Estimator interface {
	Estimate(ctx context.Context, path string) (encoding.Target, error)
}

// Encoder transcodes a source into the final container.
type Encoder interface {
	Encode(ctx context.Context, source, metadataPath string, target encoding.Target, outPath string) error
}

// Option configures the pipeline.
type Option func(*Pipeline)

// WithLogger attaches the pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRegistry overrides the registry client (primarily for tests).
func WithRegistry(registry Registry) Option {
	return func(p *Pipeline) {
		if registry != nil {
			p.registry = registry
		}
	}
}

// WithDetector overrides the commercial detector.
func WithDetector(detector Detector) Option {
	return func(p *Pipeline) {
		if detector != nil {
			p.detector = detector
		}
	}
}

// WithEstimator overrides the bitrate estimator.
func WithEstimator(estimator Estimator) Option {
	return func(p *Pipeline) {
		if estimator != nil {
			p.estimator = estimator
		}
	}
}

// WithEncoder overrides the encoder.
func WithEncoder(encoder Encoder) Option {
	return func(p *Pipeline) {
		if encoder != nil {
			p.encoder = encoder
		}
	}
}

// WithNotifier overrides the notification service.
func WithNotifier(notifier notifications.Service) Option {
	return func(p *Pipeline) {
		if notifier != nil {
			p.notifier = notifier
		}
	}
}

// Pipeline sequences the post-processing stages for one recording.
type Pipeline struct {
	cfg       *config.Config
	registry  Registry
	detector  Detector
	estimator Estimator
	encoder   Encoder
	notifier  notifications.Service
	logger    *slog.Logger
}

// New wires a pipeline from configuration, building the real collaborators
// for anything not supplied via options.
func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "workflow", "new", "config required", nil)
	}
	pipeline := &Pipeline{cfg: cfg, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(pipeline)
	}
	if pipeline.registry == nil {
		pipeline.registry = tvheadend.New(cfg.Registry)
	}
	if pipeline.detector == nil {
		detector, err := comskip.New(cfg.Detector.Binary, cfg.Detector.INI, comskip.WithLogger(pipeline.logger))
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "workflow", "new", "detector", err)
		}
		pipeline.detector = detector
	}
	if pipeline.estimator == nil {
		estimator, err := encoding.NewEstimator(cfg.Probe.Binary, cfg.Encoder.BitrateFactor)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "workflow", "new", "estimator", err)
		}
		pipeline.estimator = estimator
	}
	if pipeline.encoder == nil {
		encoder, err := encoding.NewEncoder(cfg.Encoder.Binary, encoding.WithLogger(pipeline.logger))
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "workflow", "new", "encoder", err)
		}
		pipeline.encoder = encoder
	}
	if pipeline.notifier == nil {
		pipeline.notifier = notifications.NewService(cfg)
	}
	return pipeline, nil
}

// Process runs the full pipeline for one recording. The returned Run carries
// the state history even when the run stopped early. The source file is
// deleted only after the registry acknowledged the relocation; every earlier
// failure leaves source and registry untouched, so a re-invocation is safe.
func (p *Pipeline) Process(ctx context.Context, id string) (*Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, services.Wrap(services.ErrValidation, "workflow", "process", "recording id required", nil)
	}

	run := &Run{ID: id, RunID: uuid.NewString()}
	ctx = services.WithRunID(ctx, run.RunID)
	logger := logging.WithContext(ctx, p.logger).With(logging.String(logging.FieldRecordingID, id))
	runStart := time.Now()
	logger.Info("run started")

	workspace, err := fileutil.NewWorkspace(p.cfg.Paths.WorkDir, run.RunID)
	if err != nil {
		return p.fail(ctx, logger, run, "workspace", services.Wrap(services.ErrConfiguration, "workspace", "create", p.cfg.Paths.WorkDir, err))
	}
	defer func() {
		if err := workspace.Close(); err != nil {
			logger.Warn("workspace cleanup failed", logging.Error(err))
		}
	}()

	if err := p.stage(ctx, run, "load", StateLoaded, func(sctx context.Context) error {
		recording, err := p.registry.LoadRecording(sctx, id)
		if err != nil {
			return err
		}
		run.Recording = recording
		return nil
	}); err != nil {
		return p.fail(ctx, logger, run, "load", err)
	}

	var reportPath string
	if err := p.stage(ctx, run, "detect", StateDetected, func(sctx context.Context) error {
		path, err := p.detector.Run(sctx, run.Recording.Path, workspace.Path("detect"))
		if err != nil {
			return err
		}
		reportPath = path
		return nil
	}); err != nil {
		return p.fail(ctx, logger, run, "detect", err)
	}

	// A missing or malformed report degrades to metadata-only output; only a
	// workspace write failure stops the run here.
	if err := p.stage(ctx, run, "analyze", StateAnalyzed, func(sctx context.Context) error {
		lines, err := segments.ReadReport(reportPath)
		if err != nil {
			logging.WithContext(sctx, p.logger).Warn("detector report unreadable, skipping chapters", logging.Error(err))
		}
		run.Segments = segments.Analyze(lines)
		text := ffmetadata.Compose(ffmetadata.Tags{
			Title:       run.Recording.Title,
			Artist:      run.Recording.Subtitle,
			Description: run.Recording.Description,
			Date:        run.Recording.Start,
			Network:     run.Recording.Channel,
		}, ffmetadata.ForSet(run.Segments))
		metadataPath := workspace.Path("metadata.txt")
		if err := os.WriteFile(metadataPath, []byte(text), 0o644); err != nil {
			return services.Wrap(services.ErrConfiguration, "analyze", "write metadata", metadataPath, err)
		}
		run.MetadataPath = metadataPath
		return nil
	}); err != nil {
		return p.fail(ctx, logger, run, "analyze", err)
	}

	if err := p.stage(ctx, run, "estimate", StateEstimated, func(sctx context.Context) error {
		target, err := p.estimator.Estimate(sctx, run.Recording.Path)
		if err != nil {
			return err
		}
		run.Target = target
		return nil
	}); err != nil {
		return p.fail(ctx, logger, run, "estimate", err)
	}

	outputName := encoding.OutputName(run.Recording.Path)
	if err := p.stage(ctx, run, "encode", StateEncoded, func(sctx context.Context) error {
		encodedPath := workspace.Path(outputName)
		if err := p.encoder.Encode(sctx, run.Recording.Path, run.MetadataPath, run.Target, encodedPath); err != nil {
			return err
		}
		run.EncodedPath = encodedPath
		return nil
	}); err != nil {
		return p.fail(ctx, logger, run, "encode", err)
	}

	if err := p.stage(ctx, run, "relocate", StateRelocated, func(sctx context.Context) error {
		destDir := filepath.Dir(run.Recording.Path)
		if _, err := os.Stat(destDir); err != nil {
			return services.Wrap(services.ErrRelocationFailed, "relocate", "move", fmt.Sprintf("destination directory %s missing", destDir), err)
		}
		finalPath := filepath.Join(destDir, outputName)
		if err := fileutil.MoveFile(run.EncodedPath, finalPath); err != nil {
			return services.Wrap(services.ErrRelocationFailed, "relocate", "move", finalPath, err)
		}
		run.FinalPath = finalPath
		return nil
	}); err != nil {
		return p.fail(ctx, logger, run, "relocate", err)
	}

	if err := p.stage(ctx, run, "notify", StateNotified, func(sctx context.Context) error {
		return p.registry.NotifyMoved(sctx, run.Recording.Path, run.FinalPath)
	}); err != nil {
		return p.fail(ctx, logger, run, "notify", err)
	}

	if err := p.stage(ctx, run, "clean", StateCleaned, func(sctx context.Context) error {
		if err := os.Remove(run.Recording.Path); err != nil {
			return fmt.Errorf("remove source %s: %w", run.Recording.Path, err)
		}
		return nil
	}); err != nil {
		return p.fail(ctx, logger, run, "clean", err)
	}

	logger.Info("run complete",
		logging.String("final_file", run.FinalPath),
		logging.Int64("target_bitrate", int64(run.Target)),
		logging.Duration("run_duration", time.Since(runStart)),
	)
	if err := p.notifier.NotifyRunComplete(ctx, run.Recording.Title, run.FinalPath); err != nil {
		logger.Warn("completion notification failed", logging.Error(err))
	}
	return run, nil
}

func (p *Pipeline) stage(ctx context.Context, run *Run, name string, done State, fn func(context.Context) error) error {
	sctx := services.WithStage(ctx, name)
	stageLogger := logging.WithContext(sctx, p.logger).With(logging.String(logging.FieldRecordingID, run.ID))
	stageStart := time.Now()
	stageLogger.Info("stage started")
	if err := fn(sctx); err != nil {
		stageLogger.Error("stage failed",
			logging.Error(err),
			logging.Duration("stage_duration", time.Since(stageStart)),
		)
		return err
	}
	run.setState(done)
	stageLogger.Info("stage completed", logging.Duration("stage_duration", time.Since(stageStart)))
	return nil
}

func (p *Pipeline) fail(ctx context.Context, logger *slog.Logger, run *Run, stage string, err error) (*Run, error) {
	run.setState(StateFailed)
	logger.Error("run failed",
		logging.String(logging.FieldStage, stage),
		logging.Error(err),
	)
	if notifyErr := p.notifier.NotifyRunFailed(ctx, run.Recording.Title, stage, err); notifyErr != nil {
		logger.Warn("failure notification failed", logging.Error(notifyErr))
	}
	return run, err
}
