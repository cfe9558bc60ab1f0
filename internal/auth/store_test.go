package auth

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileTokenStoreSingleSlot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session", "token.txt")
	store := NewFileTokenStore(path)

	if _, err := store.Load(ctx); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession before login, got %v", err)
	}

	if err := store.Save(ctx, "first"); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	if err := store.Save(ctx, "second"); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	token, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if token != "second" {
		t.Fatalf("expected latest token, got %q", token)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat session file: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 permissions, got %v", info.Mode().Perm())
	}
}

func TestFileTokenStoreEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.txt")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileTokenStore(path).Load(context.Background()); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for blank file, got %v", err)
	}
}

func TestNewFileTokenStoreDefaultPath(t *testing.T) {
	if got := NewFileTokenStore("").Path(); got != "token.txt" {
		t.Fatalf("expected default token.txt, got %q", got)
	}
}
