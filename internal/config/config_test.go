package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigRequiresSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	_, err := ParseConfig()
	assert.True(t, errors.Is(err, ErrMissingSecret))
}

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cret")
	cfg, err := ParseConfig()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.SecretKey)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, SessionStoreFile, cfg.SessionStore)
	assert.Equal(t, "token.txt", cfg.SessionFile)
	assert.Equal(t, 30*time.Second, cfg.CommandTimeout)
	assert.Equal(t, "local", cfg.StorageType)
}

func TestParseConfigRejectsUnknownSessionStore(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("SESSION_STORE", "memcached")
	_, err := ParseConfig()
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CRM_DOTENV_PROBE=loaded\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CRM_DOTENV_PROBE") })

	LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, "loaded", os.Getenv("CRM_DOTENV_PROBE"))
}
