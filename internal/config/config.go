package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration. Values come from environment
// variables, optionally overridden by a YAML file named in TRAFIKINFO_CONFIG.
type Config struct {
	APIKey    string        `yaml:"api_key"`
	APIURL    string        `yaml:"api_url"`    // Trafikverket endpoint override, empty means default
	Port      int           `yaml:"port"`       // board server listen port
	DBPath    string        `yaml:"db_path"`    // sqlite lookup cache
	AlertsURL string        `yaml:"alerts_url"` // GTFS-RT service alerts feed, empty disables the fetcher
	CacheTTL  time.Duration `yaml:"cache_ttl"`  // board response cache
	LogLevel  string        `yaml:"log_level"`  // debug, info, warn or error
}

// Load reads configuration from environment variables with defaults, then
// applies the YAML file named in TRAFIKINFO_CONFIG if one is set.
func Load() (*Config, error) {
	cfg := &Config{
		APIKey:    os.Getenv("TRAFIKINFO_API_KEY"),
		APIURL:    os.Getenv("TRAFIKINFO_API_URL"),
		Port:      envInt("TRAFIKINFO_PORT", 8080),
		DBPath:    envStr("TRAFIKINFO_DB_PATH", "./trafikinfo.db"),
		AlertsURL: os.Getenv("TRAFIKINFO_ALERTS_URL"),
		CacheTTL:  envDuration("TRAFIKINFO_CACHE_TTL", 30*time.Second),
		LogLevel:  envStr("TRAFIKINFO_LOG_LEVEL", "info"),
	}
	if path := os.Getenv("TRAFIKINFO_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// applyFile overlays values from a YAML file. Keys absent from the file keep
// their current values.
func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
