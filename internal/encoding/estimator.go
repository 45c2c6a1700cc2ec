package encoding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tvhshrink/internal/ffprobe"
	"tvhshrink/internal/services"
)

// Target is the encoder's requested video bitrate in bits per second, always
// a multiple of 1024.
type Target int64

// AlignTarget applies the compression factor to a source bitrate and floors
// the result to a 1024 multiple. Sub-kilobit remainders are dropped because
// some encoders reject or mishandle them.
func AlignTarget(bitrate int64, factor float64) Target {
	return Target(int64(float64(bitrate)*factor) / 1024 * 1024)
}

// Estimator derives encoding targets from probe output.
type Estimator struct {
	binary string
	factor float64
}

// NewEstimator constructs an estimator around the given probe binary and
// compression factor.
func NewEstimator(binary string, factor float64) (*Estimator, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("probe binary required")
	}
	if factor <= 0 || factor > 1 {
		return nil, fmt.Errorf("bitrate factor %v out of range (0, 1]", factor)
	}
	return &Estimator{binary: binary, factor: factor}, nil
}

// Estimate probes the source container bitrate and computes the aligned
// target. There is no fallback bitrate: a failed probe or a container without
// a reported bitrate fails the run.
func (e *Estimator) Estimate(ctx context.Context, path string) (Target, error) {
	result, err := ffprobe.Inspect(ctx, e.binary, path)
	if err != nil {
		return 0, services.Wrap(services.ErrProbeFailed, "estimate", "ffprobe", path, err)
	}
	bitrate := result.BitRate()
	if bitrate <= 0 {
		return 0, services.Wrap(services.ErrProbeFailed, "estimate", "ffprobe", fmt.Sprintf("%s reports no container bitrate", path), nil)
	}
	return AlignTarget(bitrate, e.factor), nil
}

// SourceFrameRate probes the primary video stream's average frame rate as a
// rational.
func (e *Estimator) SourceFrameRate(ctx context.Context, path string) (num, den int64, err error) {
	result, err := ffprobe.Inspect(ctx, e.binary, path)
	if err != nil {
		return 0, 0, services.Wrap(services.ErrProbeFailed, "estimate", "ffprobe", path, err)
	}
	stream, ok := result.VideoStream()
	if !ok {
		return 0, 0, services.Wrap(services.ErrProbeFailed, "estimate", "ffprobe", fmt.Sprintf("%s has no video stream", path), nil)
	}
	num, den, err = stream.FrameRate()
	if err != nil {
		return 0, 0, services.Wrap(services.ErrProbeFailed, "estimate", "ffprobe", path, err)
	}
	return num, den, nil
}
