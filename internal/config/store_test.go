package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}

func TestStoreLoad_FirstRunWritesDefaults(t *testing.T) {
	path := configFile(t)

	cfg := NewStore(path).Load()

	require.NotNil(t, cfg)
	assert.Equal(t, 2700, cfg.RefreshIntervalSeconds)
	assert.True(t, cfg.LoggingEnabled)
	assert.True(t, cfg.PeriodicUpdatesEnabled)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 6, cfg.CacheTTLHours)
	assert.Equal(t, 15000, cfg.RequestTimeoutMs)
	assert.NotEmpty(t, cfg.UserAgent)

	data, err := os.ReadFile(path)
	require.NoError(t, err, "defaults should have been persisted")
	assert.Contains(t, string(data), `    "refresh_interval_seconds": 2700`,
		"config file should use 4-space indentation")
}

func TestStoreLoad_ExistingFileOverridesDefaults(t *testing.T) {
	path := configFile(t)
	content := `{
    "refresh_interval_seconds": 60,
    "cache_ttl_hours": 2,
    "cache_enabled": false,
    "user_agent": "custom-agent/2.0"
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := NewStore(path).Load()

	assert.Equal(t, 60, cfg.RefreshIntervalSeconds)
	assert.Equal(t, 2, cfg.CacheTTLHours)
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, "custom-agent/2.0", cfg.UserAgent)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, 15000, cfg.RequestTimeoutMs)
	assert.Equal(t, "pve", cfg.GameMode)
}

func TestStoreLoad_MalformedFileFallsBackToDefaults(t *testing.T) {
	path := configFile(t)
	badContent := `{not valid json!!`
	require.NoError(t, os.WriteFile(path, []byte(badContent), 0o644))

	cfg := NewStore(path).Load()

	assert.Equal(t, 2700, cfg.RefreshIntervalSeconds)
	assert.Equal(t, 6, cfg.CacheTTLHours)

	// The bad file must be left untouched on disk.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, badContent, string(data))
}

func TestStoreLoad_IsTotal(t *testing.T) {
	tests := []struct {
		name    string
		content *string // nil means no file
	}{
		{name: "missing file", content: nil},
		{name: "empty file", content: strPtr("")},
		{name: "truncated json", content: strPtr(`{"refresh_interval_seconds":`)},
		{name: "wrong top-level type", content: strPtr(`[1, 2, 3]`)},
		{name: "wrong field types", content: strPtr(`{"refresh_interval_seconds": "soon"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := configFile(t)
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o644))
			}

			cfg := NewStore(path).Load()

			require.NotNil(t, cfg)
			assert.Positive(t, cfg.RefreshIntervalSeconds)
			assert.Positive(t, cfg.CacheTTLHours)
			assert.Positive(t, cfg.RequestTimeoutMs)
			assert.NotEmpty(t, cfg.UserAgent)
			assert.NotEmpty(t, cfg.APIURL)
		})
	}
}

func TestStoreLoad_NormalizesOutOfRangeValues(t *testing.T) {
	path := configFile(t)
	content := `{
    "refresh_interval_seconds": -5,
    "cache_ttl_hours": 0,
    "request_timeout_ms": -100,
    "user_agent": "",
    "cache": {"backend": "carrier-pigeon"}
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := NewStore(path).Load()

	assert.Equal(t, 2700, cfg.RefreshIntervalSeconds)
	assert.Equal(t, 6, cfg.CacheTTLHours)
	assert.Equal(t, 15000, cfg.RequestTimeoutMs)
	assert.NotEmpty(t, cfg.UserAgent)
	assert.Equal(t, CacheBackendFile, cfg.Cache.Backend)
}

func TestStoreLoad_EnvOverride(t *testing.T) {
	path := configFile(t)
	t.Setenv("TPS_LOG_LEVEL", "debug")
	t.Setenv("TPS_GAME_MODE", "regular")

	cfg := NewStore(path).Load()

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "regular", cfg.GameMode)
}

func TestConfig_DurationAccessors(t *testing.T) {
	cfg := GetDefaultConfig()

	assert.Equal(t, "45m0s", cfg.RefreshInterval().String())
	assert.Equal(t, "6h0m0s", cfg.CacheTTL().String())
	assert.Equal(t, "15s", cfg.RequestTimeout().String())
}

func strPtr(s string) *string { return &s }
