package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/maxaizer/placement-portal/internal/apperr"
)

// Local stores resumes below a directory on the local disk.
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create resume directory: %w", err)
	}
	return &Local{dir: dir}, nil
}

func (l *Local) Save(_ context.Context, key string, data []byte) error {
	path, err := l.path(key)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (l *Local) Load(_ context.Context, key string) ([]byte, error) {
	path, err := l.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperr.NotFound("Resume not found")
	}
	return data, err
}

func (l *Local) Close() error {
	return nil
}

func (l *Local) path(key string) (string, error) {
	rel := filepath.FromSlash(key)
	if !filepath.IsLocal(rel) {
		return "", apperr.Validation("invalid resume key")
	}
	return filepath.Join(l.dir, rel), nil
}
