package auth

import (
	"errors"
	"testing"
)

func TestPasswordHashingLifecycle(t *testing.T) {
	password := "S3curePass!"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("unexpected error hashing password: %v", err)
	}
	if hash == "" || hash == password {
		t.Fatal("expected hash to be populated and differ from the password")
	}

	if err := VerifyPassword(hash, password); err != nil {
		t.Fatalf("expected password to verify, got error: %v", err)
	}

	if err := VerifyPassword(hash, "wrong"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected mismatch error, got %v", err)
	}
}

func TestHashPasswordRejectsBlank(t *testing.T) {
	if _, err := HashPassword("  "); err == nil {
		t.Fatal("expected error for blank password")
	}
}
