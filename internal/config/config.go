package config

import "time"

// Config represents the complete service configuration. It is loaded once at
// startup and read-only afterwards; every component receives it explicitly.
type Config struct {
	RefreshIntervalSeconds int    `json:"refresh_interval_seconds" mapstructure:"refresh_interval_seconds"`
	LoggingEnabled         bool   `json:"logging_enabled" mapstructure:"logging_enabled"`
	PeriodicUpdatesEnabled bool   `json:"periodic_updates_enabled" mapstructure:"periodic_updates_enabled"`
	CacheEnabled           bool   `json:"cache_enabled" mapstructure:"cache_enabled"`
	CacheTTLHours          int    `json:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
	RequestTimeoutMs       int    `json:"request_timeout_ms" mapstructure:"request_timeout_ms"`
	UserAgent              string `json:"user_agent" mapstructure:"user_agent"`

	APIURL           string `json:"api_url" mapstructure:"api_url"`
	GameMode         string `json:"game_mode" mapstructure:"game_mode"`
	ItemName         string `json:"item_name" mapstructure:"item_name"`
	MaxFetchAttempts int    `json:"max_fetch_attempts" mapstructure:"max_fetch_attempts"`

	LogLevel  string `json:"log_level" mapstructure:"log_level"`
	LogFormat string `json:"log_format" mapstructure:"log_format"`

	Cache CacheConfig `json:"cache" mapstructure:"cache"`
	Ops   OpsConfig   `json:"ops" mapstructure:"ops"`
}

// CacheConfig selects and configures the price cache backend.
type CacheConfig struct {
	Backend  string      `json:"backend" mapstructure:"backend"`
	FilePath string      `json:"file_path" mapstructure:"file_path"`
	Redis    RedisConfig `json:"redis" mapstructure:"redis"`
}

// RedisConfig contains Redis-specific configuration for the redis backend.
type RedisConfig struct {
	Addr     string `json:"addr" mapstructure:"addr"`
	Password string `json:"password" mapstructure:"password"`
	DB       int    `json:"db" mapstructure:"db"`
}

// OpsConfig configures the operational HTTP endpoints.
type OpsConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
	Port    int  `json:"port" mapstructure:"port"`
}

// Cache backends supported by the factory.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
)

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		RefreshIntervalSeconds: 2700,
		LoggingEnabled:         true,
		PeriodicUpdatesEnabled: true,
		CacheEnabled:           true,
		CacheTTLHours:          6,
		RequestTimeoutMs:       15000,
		UserAgent:              "tarkov-price-sync/1.0",

		APIURL:           "https://api.tarkov.dev/graphql",
		GameMode:         "pve",
		ItemName:         "Physical Bitcoin",
		MaxFetchAttempts: 1,

		LogLevel:  "info",
		LogFormat: "json",

		Cache: CacheConfig{
			Backend:  CacheBackendFile,
			FilePath: "cache/price-cache.json",
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				Password: "",
				DB:       0,
			},
		},
		Ops: OpsConfig{
			Enabled: true,
			Port:    9090,
		},
	}
}

// RefreshInterval returns the periodic refresh interval as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

// CacheTTL returns the maximum trusted cache age as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}

// RequestTimeout returns the outbound request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

// normalize forces out-of-range values back to their defaults so a loaded
// Config is always usable, whatever the file contained.
func (c *Config) normalize() {
	def := GetDefaultConfig()

	if c.RefreshIntervalSeconds <= 0 {
		c.RefreshIntervalSeconds = def.RefreshIntervalSeconds
	}
	if c.CacheTTLHours <= 0 {
		c.CacheTTLHours = def.CacheTTLHours
	}
	if c.RequestTimeoutMs <= 0 {
		c.RequestTimeoutMs = def.RequestTimeoutMs
	}
	if c.MaxFetchAttempts <= 0 {
		c.MaxFetchAttempts = def.MaxFetchAttempts
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	if c.APIURL == "" {
		c.APIURL = def.APIURL
	}
	if c.GameMode == "" {
		c.GameMode = def.GameMode
	}
	if c.ItemName == "" {
		c.ItemName = def.ItemName
	}
	if c.Cache.Backend != CacheBackendFile && c.Cache.Backend != CacheBackendRedis {
		c.Cache.Backend = def.Cache.Backend
	}
	if c.Cache.FilePath == "" {
		c.Cache.FilePath = def.Cache.FilePath
	}
	if c.Ops.Port <= 0 {
		c.Ops.Port = def.Ops.Port
	}
}
