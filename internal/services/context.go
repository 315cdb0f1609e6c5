package services

import "context"

type contextKey string

const (
	conversionIDKey contextKey = "conversion_id"
	stageKey        contextKey = "stage"
)

// WithConversionID annotates context with the conversion identifier.
func WithConversionID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, conversionIDKey, id)
}

// ConversionIDFromContext extracts the conversion identifier if present.
func ConversionIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(conversionIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(stageKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
