package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact describes an exported report that has been persisted.
type Artifact struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Size     int64  `json:"size"`
}

// ArtifactStore persists rendered reports. Names must already be unique.
type ArtifactStore interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (Artifact, error)
}

// LocalStore writes artifacts under a directory.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Put(ctx context.Context, name string, data []byte, contentType string) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	if name == "" || name != filepath.Base(name) {
		return Artifact{}, fmt.Errorf("invalid artifact name %q", name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Artifact{}, fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(s.dir, name)
	// O_EXCL so concurrent writers never overwrite each other.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return Artifact{}, fmt.Errorf("create artifact: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return Artifact{}, fmt.Errorf("write artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		return Artifact{}, fmt.Errorf("close artifact: %w", err)
	}
	return Artifact{Name: name, Location: path, Size: int64(len(data))}, nil
}
