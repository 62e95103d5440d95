// Package persist is the durability wrapper around the store: each slice
// snapshot is written to a keyed storage backend as it commits, and
// restored into a fresh store on startup before consumers see it.
package persist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Load when no snapshot has ever been saved
// under the key. Hydration treats it as "start empty", not as a failure.
var ErrNotFound = errors.New("snapshot not found")

// Storage persists one JSON document per slice key.
type Storage interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// FileStorage keeps snapshots as namespaced JSON files inside a state
// directory, one file per slice.
type fileStorage struct {
	dir       string
	namespace string
}

func NewFileStorage(dir, namespace string) (Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &fileStorage{dir: dir, namespace: namespace}, nil
}

func (f *fileStorage) path(key string) string {
	return filepath.Join(f.dir, fmt.Sprintf("%s_%s.json", f.namespace, key))
}

func (f *fileStorage) Save(_ context.Context, key string, data []byte) error {
	if err := os.WriteFile(f.path(key), data, 0o644); err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", key, err)
	}
	return nil
}

func (f *fileStorage) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %q: %w", key, err)
	}
	return data, nil
}

func (f *fileStorage) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete snapshot %q: %w", key, err)
	}
	return nil
}
