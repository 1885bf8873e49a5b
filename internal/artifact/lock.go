package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"boxoffice/internal/services"
)

// RunLock is an exclusive lock on the output location.
type RunLock struct {
	lock *flock.Flock
}

// Lock acquires the lock file at path without blocking. A lock held by
// another run is reported as ErrValidation.
func Lock(path string) (*RunLock, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, services.Wrap(services.ErrConfiguration, stageArtifact, "lock", "lock path is empty", nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrValidation, stageArtifact, "lock", "another report run holds "+path, nil)
	}
	return &RunLock{lock: lock}, nil
}

// Path returns the lock file path.
func (l *RunLock) Path() string { return l.lock.Path() }

// Release unlocks. It is safe to call more than once.
func (l *RunLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
