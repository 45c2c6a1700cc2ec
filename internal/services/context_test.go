package services_test

import (
	"context"
	"testing"

	"tvhshrink/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "detect")
	ctx = services.WithRunID(ctx, "run-123")

	if stage, ok := services.StageFromContext(ctx); !ok || stage != "detect" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
}

func TestStageBlankPreservesContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
}
