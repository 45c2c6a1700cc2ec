package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRegistryUnavailable = errors.New("registry unavailable")
	ErrDetectionFailed     = errors.New("detection failed")
	ErrProbeFailed         = errors.New("probe failed")
	ErrEncodingFailed      = errors.New("encoding failed")
	ErrRelocationFailed    = errors.New("relocation failed")
	ErrValidation          = errors.New("validation error")
	ErrConfiguration       = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// PreservesSource reports whether a run that stopped with err left the
// original recording file in place. Every failure stops the pipeline before
// source deletion, so any non-nil error implies the source survived.
func PreservesSource(err error) bool {
	return err != nil
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
