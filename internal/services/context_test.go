package services_test

import (
	"context"
	"testing"

	"boxoffice/internal/services"
)

func TestContextHelpersRoundTrip(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-1")
	ctx = services.WithStage(ctx, "enrich")
	ctx = services.WithDataset(ctx, "all_time")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-1" {
		t.Fatalf("unexpected run id %q (ok=%v)", id, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "enrich" {
		t.Fatalf("unexpected stage %q (ok=%v)", stage, ok)
	}
	if dataset, ok := services.DatasetFromContext(ctx); !ok || dataset != "all_time" {
		t.Fatalf("unexpected dataset %q (ok=%v)", dataset, ok)
	}
}

func TestContextHelpersIgnoreEmptyValues(t *testing.T) {
	ctx := context.Background()
	if got := services.WithStage(ctx, ""); got != ctx {
		t.Fatal("expected empty stage to return original context")
	}
	if _, ok := services.RunIDFromContext(services.WithRunID(ctx, "")); ok {
		t.Fatal("expected no run id for empty value")
	}
}
