package encoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"tvhshrink/internal/logging"
	"tvhshrink/internal/services"
)

// OutputExt is the container extension of every transcode.
const OutputExt = ".mp4"

// Option configures the encoder.
type Option func(*Encoder)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec services.Executor) Option {
	return func(e *Encoder) {
		if exec != nil {
			e.exec = exec
		}
	}
}

// WithLogger attaches a logger for encoder output lines.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Encoder) {
		if logger != nil {
			e.logger = logging.NewComponentLogger(logger, "ffmpeg")
		}
	}
}

// Encoder wraps the ffmpeg transcode invocation. The quality and format
// flags are fixed policy: hardware H.264 at the target bitrate, constant
// frame rate, deinterlaced, yuv420p, stereo AAC, metadata taken from the
// second input.
type Encoder struct {
	binary string
	exec   services.Executor
	logger *slog.Logger
}

// NewEncoder constructs an encoder around the given ffmpeg binary.
func NewEncoder(binary string, opts ...Option) (*Encoder, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("encoder binary required")
	}
	encoder := &Encoder{
		binary: binary,
		exec:   services.CommandExecutor{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(encoder)
	}
	return encoder, nil
}

// Encode transcodes source into outPath, embedding the metadata file as the
// output's metadata stream. A non-zero exit fails the run; the partial output
// is left for the caller's workspace cleanup.
func (e *Encoder) Encode(ctx context.Context, source, metadataPath string, target Target, outPath string) error {
	source = strings.TrimSpace(source)
	if source == "" {
		return services.Wrap(services.ErrValidation, "encode", "ffmpeg", "source path required", nil)
	}
	metadataPath = strings.TrimSpace(metadataPath)
	if metadataPath == "" {
		return services.Wrap(services.ErrValidation, "encode", "ffmpeg", "metadata path required", nil)
	}
	outPath = strings.TrimSpace(outPath)
	if outPath == "" {
		return services.Wrap(services.ErrValidation, "encode", "ffmpeg", "output path required", nil)
	}
	if target <= 0 {
		return services.Wrap(services.ErrValidation, "encode", "ffmpeg", fmt.Sprintf("target bitrate %d invalid", target), nil)
	}

	args := []string{
		"-hide_banner", "-nostdin",
		"-i", source,
		"-i", metadataPath,
		"-fps_mode", "cfr",
		"-c:v", "h264_v4l2m2m",
		"-b:v", strconv.FormatInt(int64(target), 10),
		"-pix_fmt", "yuv420p",
		"-level", "4",
		"-c:a", "aac",
		"-b:a", "128k",
		"-ac", "2",
		"-map_metadata", "1",
		"-vf", "yadif",
		"-y", outPath,
	}

	if err := e.exec.Run(ctx, e.binary, args, func(line string) {
		e.logger.Debug("encoder output", logging.String("line", line))
	}); err != nil {
		return services.Wrap(services.ErrEncodingFailed, "encode", "ffmpeg", fmt.Sprintf("transcode %s", source), err)
	}
	return nil
}

// OutputName returns the transcode file name for a source: the source base
// name with the output extension.
func OutputName(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base)) + OutputExt
}
