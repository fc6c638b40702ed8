// Package artifactstore abstracts where trained model artifacts live.
// The trainer writes through a Store and the server reads through one at
// startup; implementations cover a local directory and an S3-compatible
// bucket (e.g. MinIO).
package artifactstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Default artifact object names, shared by the trainer and the server.
const (
	VectorizerArtifact = "vectorizer.gob"
	ClassifierArtifact = "model.gob"
)

// Store reads and writes opaque artifact blobs by name.
type Store interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

// LocalStore keeps artifacts as files in a single directory.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("reading artifact %s: %w", name, err)
	}
	return data, nil
}

func (s *LocalStore) Save(ctx context.Context, name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating artifact dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("writing artifact %s: %w", name, err)
	}
	return nil
}
