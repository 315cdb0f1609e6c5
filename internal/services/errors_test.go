package services_test

import (
	"context"
	"errors"
	"testing"

	"gif2webm/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "encode", "run ffmpeg", "", cause)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker tagging, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause preserved, got %v", err)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "extract", "", "no frames", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
}

func TestWrapBuildsDetail(t *testing.T) {
	err := services.Wrap(services.ErrValidation, "timing", "parse", "no entries", nil)
	want := "validation error: timing: parse: no entries"
	if err.Error() != want {
		t.Fatalf("unexpected message %q, want %q", err.Error(), want)
	}
}

func TestIsCancellation(t *testing.T) {
	if !services.IsCancellation(context.Canceled) {
		t.Fatal("expected Canceled to classify as cancellation")
	}
	if !services.IsCancellation(services.Wrap(services.ErrExternalTool, "s", "o", "", context.DeadlineExceeded)) {
		t.Fatal("expected wrapped DeadlineExceeded to classify as cancellation")
	}
	if services.IsCancellation(errors.New("boom")) {
		t.Fatal("did not expect plain error to classify as cancellation")
	}
}

func TestContextStamps(t *testing.T) {
	ctx := services.WithConversionID(context.Background(), "abc123")
	ctx = services.WithStage(ctx, "encode")

	if id, ok := services.ConversionIDFromContext(ctx); !ok || id != "abc123" {
		t.Fatalf("conversion id = %q, %v", id, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "encode" {
		t.Fatalf("stage = %q, %v", stage, ok)
	}
	if _, ok := services.StageFromContext(context.Background()); ok {
		t.Fatal("expected no stage on fresh context")
	}
}
