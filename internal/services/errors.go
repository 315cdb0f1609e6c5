package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrToolStart marks a tool that could not be launched at all.
	ErrToolStart = errors.New("tool start failure")
	// ErrExternalTool marks a tool that ran and failed.
	ErrExternalTool = errors.New("external tool error")
	// ErrValidation marks input that a tool processed but found unusable.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks invalid configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsCancellation reports whether err represents a deliberate abort rather
// than a failure. Cancellations must never be presented as tool errors.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
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
