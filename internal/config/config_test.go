package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes keys for the duration of the test; t.Setenv restores them.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadFileDefaults(t *testing.T) {
	unsetEnv(t, "TABLEPAD_SERVER", "TABLEPAD_TIMEOUT", "TABLEPAD_LOG_LEVEL")

	c, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "http://127.0.0.1:5000", c.Server.URL)
	assert.Equal(t, 30*time.Second, c.Server.Timeout)
	assert.Equal(t, Endpoints{
		Upload: "/upload",
		Run:    "/run",
		Reset:  "/reset",
		Tables: "/tables",
		View:   "/csvview/",
	}, c.Server.Endpoints)
}

func TestLoadFileEnvOverride(t *testing.T) {
	unsetEnv(t, "TABLEPAD_LOG_LEVEL")
	t.Setenv("TABLEPAD_SERVER", "pad.internal:8080/")
	t.Setenv("TABLEPAD_TIMEOUT", "5s")

	c, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, "http://pad.internal:8080", c.Server.URL)
	assert.Equal(t, 5*time.Second, c.Server.Timeout)
}

func TestSaveThenLoad(t *testing.T) {
	unsetEnv(t, "TABLEPAD_SERVER", "TABLEPAD_TIMEOUT", "TABLEPAD_LOG_LEVEL")

	p := filepath.Join(t.TempDir(), "config.json")
	want := Config{
		LogLevel: "debug",
		Server: Server{
			URL:     "https://pad.example.com",
			Timeout: 12 * time.Second,
			Endpoints: Endpoints{
				Upload: "/api/upload",
				Run:    "/api/run",
				Reset:  "/api/reset",
				Tables: "/api/tables",
				View:   "/api/view/",
			},
		},
	}
	require.NoError(t, SaveFile(p, want))

	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValidateRejectsBadURL(t *testing.T) {
	c := Config{Server: Server{URL: "grpc://x", Timeout: time.Second}}
	require.Error(t, c.Validate())

	c = Config{Server: Server{URL: "http://x", Timeout: 0}}
	require.Error(t, c.Validate())
}
