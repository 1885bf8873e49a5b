package artifact_test

import (
	"errors"
	"path/filepath"
	"testing"

	"boxoffice/internal/artifact"
	"boxoffice/internal/services"
)

func TestLockIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "boxoffice.lock")
	first, err := artifact.Lock(path)
	if err != nil {
		t.Fatalf("Lock returned error: %v", err)
	}
	if first.Path() != path {
		t.Fatalf("unexpected lock path %q", first.Path())
	}

	if _, err := artifact.Lock(path); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation for held lock, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}
	second, err := artifact.Lock(path)
	if err != nil {
		t.Fatalf("expected lock after release, got %v", err)
	}
	_ = second.Release()
}
