package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalArchive writes export files under a base directory.
type LocalArchive struct {
	baseDir string
	now     func() time.Time
}

// NewLocalArchive creates a LocalArchive. The directory is created if it does not exist.
func NewLocalArchive(baseDir string) (*LocalArchive, error) {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		baseDir = "exports"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalArchive{baseDir: baseDir, now: time.Now}, nil
}

// BaseDir returns the root directory used for storing files.
func (s *LocalArchive) BaseDir() string {
	return s.baseDir
}

// Put writes obj to disk and returns its path relative to the base directory.
func (s *LocalArchive) Put(ctx context.Context, obj Object) (string, error) {
	if len(obj.Body) == 0 {
		return "", errEmptyPayload
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	relativePath := objectKey(obj, s.now().UTC())
	absPath := filepath.Join(s.baseDir, filepath.FromSlash(relativePath))
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !obj.Overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(absPath, flags, 0o644)
	if errors.Is(err, os.ErrExist) {
		return "", fmt.Errorf("export %s already exists", relativePath)
	}
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	if _, err := f.Write(obj.Body); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}
	return relativePath, nil
}

var _ Archive = (*LocalArchive)(nil)
