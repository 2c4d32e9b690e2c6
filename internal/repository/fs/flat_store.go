// Package fs keeps the flat store as one file per key on an afero
// filesystem: the OS disk in production, memory in tests and ephemeral runs.
package fs

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"

	"alcyxob/workout-map/internal/repository"

	"github.com/spf13/afero"
)

type flatStore struct {
	fs  afero.Fs
	dir string
}

// NewFlatStore stores key k at <dir>/<escaped k>.json on fsys.
func NewFlatStore(fsys afero.Fs, dir string) (repository.FlatStore, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &flatStore{fs: fsys, dir: dir}, nil
}

// NewMemoryFlatStore is a flat store that lives only as long as the process.
func NewMemoryFlatStore() repository.FlatStore {
	return &flatStore{fs: afero.NewMemMapFs(), dir: "/"}
}

func (s *flatStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}

func (s *flatStore) Get(ctx context.Context, key string) (string, error) {
	b, err := afero.ReadFile(s.fs, s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Set writes through a temp file and renames it into place so a crash never
// leaves a half-written list behind.
func (s *flatStore) Set(ctx context.Context, key, value string) error {
	target := s.path(key)
	tmp := target + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, []byte(value), 0o644); err != nil {
		return err
	}
	return s.fs.Rename(tmp, target)
}

func (s *flatStore) Remove(ctx context.Context, key string) error {
	err := s.fs.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
