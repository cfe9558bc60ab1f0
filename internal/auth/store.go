package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoSession is returned when no token has been saved yet.
var ErrNoSession = errors.New("no active session")

// TokenStore is the single slot holding the current session token.
type TokenStore interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) (string, error)
}

// FileTokenStore keeps the token in a plain-text file.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a store backed by path.
func NewFileTokenStore(path string) *FileTokenStore {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "token.txt"
	}
	return &FileTokenStore{path: path}
}

// Path returns the file location.
func (s *FileTokenStore) Path() string {
	return s.path
}

// Save overwrites the file with token.
func (s *FileTokenStore) Save(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Load reads the token back, or ErrNoSession when the file is missing or empty.
func (s *FileTokenStore) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("read session file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoSession
	}
	return token, nil
}

var _ TokenStore = (*FileTokenStore)(nil)
