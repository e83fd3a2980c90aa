package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	path := writeTempJSON(t, dir, "server.json", map[string]any{
		"http_addr":                      ":9999",
		"database_dsn":                   "postgres://json",
		"access_token_validity_duration": "30m",
		"storage_driver":                 "minio",
		"presign_expiry":                 "2m",
		"metrics_enabled":                false,
	})

	t.Run("loads from flag", func(t *testing.T) {
		os.Args = []string{"server", "-config", path}

		c := &Config{S3Bucket: "keep", MetricsEnabled: true}
		parseJson(c)

		assert.Equal(t, ":9999", c.HTTPAddr)
		assert.Equal(t, "postgres://json", c.DatabaseDSN)
		assert.Equal(t, 30*time.Minute, c.AccessTokenValidityDuration)
		assert.Equal(t, "minio", c.StorageDriver)
		assert.Equal(t, 2*time.Minute, c.PresignExpiry)
		assert.False(t, c.MetricsEnabled)
		assert.Equal(t, "keep", c.S3Bucket, "absent keys keep earlier values")
	})

	t.Run("loads from env", func(t *testing.T) {
		os.Args = []string{"server"}
		t.Setenv(ConfigEnv, path)

		c := &Config{}
		parseJson(c)
		assert.Equal(t, ":9999", c.HTTPAddr)
	})

	t.Run("no file", func(t *testing.T) {
		os.Args = []string{"server"}
		t.Setenv(ConfigEnv, "")

		c := &Config{HTTPAddr: ":1"}
		parseJson(c)
		assert.Equal(t, ":1", c.HTTPAddr)
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"server", "-c", filepath.Join(dir, "nope.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		os.Args = []string{"server", "-c", bad}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}

func Test_parseFlags_KeepsJSONDurations(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"access_token_validity_duration": "45s",
		"presign_expiry":                 "30s",
	})
	os.Args = []string{"server"}
	t.Setenv(ConfigEnv, path)

	c := &Config{}
	parseJson(c)
	parseFlags(c)

	assert.Equal(t, 45*time.Second, c.AccessTokenValidityDuration)
	assert.Equal(t, 30*time.Second, c.PresignExpiry)

	os.Args = []string{"server", "-P", "10"}
	parseFlags(c)
	assert.Equal(t, 45*time.Second, c.AccessTokenValidityDuration)
	assert.Equal(t, 10*time.Minute, c.PresignExpiry)
}
