package artifact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// driver
	_ "gocloud.dev/blob/memblob"  // mem:// driver

	"boxoffice/internal/services"
)

const (
	stageArtifact = "artifact"

	// ManifestName is the object name of the per-run manifest.
	ManifestName = "manifest.json"
)

// Artifact records one stored object.
type Artifact struct {
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Checksum    string `json:"checksum"`
}

// DatasetInfo summarises one dataset in the manifest.
type DatasetInfo struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	Rows       int    `json:"rows"`
	Discovered int    `json:"discovered"`
	Rejected   int    `json:"rejected"`
}

// Manifest describes the contents of one report run.
type Manifest struct {
	RunID     string        `json:"run_id"`
	CreatedAt time.Time     `json:"created_at"`
	Datasets  []DatasetInfo `json:"datasets"`
	Artifacts []Artifact    `json:"artifacts"`
}

// Key joins a run ID and object name into a bucket key.
func Key(runID, name string) string {
	return path.Join(runID, name)
}

// Store writes artifacts to a blob bucket.
type Store struct {
	bucket *blob.Bucket
	url    string

	mu        sync.Mutex
	artifacts []Artifact
}

// Open opens the bucket at url.
func Open(ctx context.Context, url string) (*Store, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, services.Wrap(services.ErrConfiguration, stageArtifact, "open", "bucket url is empty", nil)
	}
	bucket, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, stageArtifact, "open", "open bucket "+url, err)
	}
	return &Store{bucket: bucket, url: url}, nil
}

// URL returns the bucket URL the store was opened with.
func (s *Store) URL() string { return s.url }

// Put writes data under key and records it.
func (s *Store) Put(ctx context.Context, key, contentType string, data []byte) (Artifact, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" {
		return Artifact{}, services.Wrap(services.ErrValidation, stageArtifact, "put", "key is empty", nil)
	}
	if err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: contentType}); err != nil {
		return Artifact{}, services.Wrap(services.ErrTransport, stageArtifact, "put", "write "+key, err)
	}
	sum := sha256.Sum256(data)
	record := Artifact{
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(data)),
		Checksum:    "sha256:" + hex.EncodeToString(sum[:]),
	}
	s.mu.Lock()
	s.artifacts = append(s.artifacts, record)
	s.mu.Unlock()
	return record, nil
}

// Read returns the object stored under key.
func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, stageArtifact, "read", "read "+key, err)
	}
	return data, nil
}

// Artifacts returns the objects written so far, in write order.
func (s *Store) Artifacts() []Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Artifact(nil), s.artifacts...)
}

// WriteManifest stores m as <run-id>/manifest.json. The manifest itself is
// not listed among its artifacts.
func (s *Store) WriteManifest(ctx context.Context, m Manifest) (string, error) {
	if strings.TrimSpace(m.RunID) == "" {
		return "", services.Wrap(services.ErrValidation, stageArtifact, "manifest", "run id is empty", nil)
	}
	if m.Datasets == nil {
		m.Datasets = []DatasetInfo{}
	}
	if m.Artifacts == nil {
		m.Artifacts = []Artifact{}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", services.Wrap(services.ErrParse, stageArtifact, "manifest", "encode manifest", err)
	}
	key := Key(m.RunID, ManifestName)
	if err := s.bucket.WriteAll(ctx, key, append(data, '\n'), &blob.WriterOptions{ContentType: "application/json"}); err != nil {
		return "", services.Wrap(services.ErrTransport, stageArtifact, "manifest", "write "+key, err)
	}
	return key, nil
}

// Close releases the bucket.
func (s *Store) Close() error {
	if s == nil || s.bucket == nil {
		return nil
	}
	if err := s.bucket.Close(); err != nil {
		return fmt.Errorf("close bucket %s: %w", s.url, err)
	}
	return nil
}
