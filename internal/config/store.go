package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"tarkov-price-sync/internal/logger"
)

// DefaultConfigPath is where the store reads and writes the config file
// unless told otherwise.
const DefaultConfigPath = "config.json"

// Store loads and persists the service configuration using Viper.
type Store struct {
	path string
}

// NewStore creates a configuration store for the given file path. An empty
// path selects DefaultConfigPath.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultConfigPath
	}
	return &Store{path: path}
}

// Load returns a fully-populated Config no matter what is on disk.
//
// Missing file: defaults are written out and returned. Unparsable file: the
// error is logged, in-memory defaults are returned and the bad file is left
// untouched. Environment variables prefixed with TPS_ override file values.
// Load never fails outward.
func (s *Store) Load() *Config {
	log := logger.GetLogger()
	cfg := GetDefaultConfig()

	v := s.newViper()

	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		if werr := s.writeDefaults(cfg); werr != nil {
			log.WithError(werr).WithField("path", s.path).
				Warn("Could not persist default config, continuing with in-memory defaults")
		} else {
			log.WithField("path", s.path).Info("Config file not found, defaults written")
		}
	} else if err := v.ReadInConfig(); err != nil {
		log.WithError(err).WithField("path", s.path).
			Error("Config file unreadable, falling back to defaults")
		cfg.normalize()
		return cfg
	}

	if err := v.Unmarshal(cfg); err != nil {
		log.WithError(err).WithField("path", s.path).
			Error("Config file has unexpected shape, falling back to defaults")
		cfg = GetDefaultConfig()
	}

	cfg.normalize()
	return cfg
}

// newViper configures Viper to read the JSON config file and TPS_ env vars.
func (s *Store) newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")

	v.SetEnvPrefix("TPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so bind the
	// ones operators actually override.
	for _, key := range []string{
		"refresh_interval_seconds",
		"cache_enabled",
		"cache_ttl_hours",
		"request_timeout_ms",
		"api_url",
		"game_mode",
		"item_name",
		"log_level",
		"log_format",
		"cache.backend",
		"cache.file_path",
		"cache.redis.addr",
		"cache.redis.password",
		"cache.redis.db",
		"ops.enabled",
		"ops.port",
	} {
		_ = v.BindEnv(key)
	}

	return v
}

// writeDefaults persists the default configuration with 4-space indentation.
func (s *Store) writeDefaults(cfg *Config) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, append(data, '\n'), 0o644)
}
