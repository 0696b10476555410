// Package config provides centralized configuration management for domaingen.
// viper holds the layered state (defaults, config file, DOMAINGEN_* environment,
// bound flags); Load decodes it into a typed Config.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is used for the binary name, config directory, and data directory.
	AppName = "domaingen"

	// EnvPrefix is the environment variable prefix (DOMAINGEN_SERVER_PORT, ...).
	EnvPrefix = "DOMAINGEN"
)

var (
	appConfig *Config
	configMu  sync.RWMutex
)

// SetDefaults registers default configuration values on v.
func SetDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.cors_origins", []string{"http://localhost:8080", "http://localhost:8081"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.profile", "structured")

	// Store defaults
	v.SetDefault("store.driver", "libsql")
	v.SetDefault("store.path", DefaultStorePath())
	v.SetDefault("store.url", "")
	v.SetDefault("store.auth_token", "")

	// Domain defaults
	v.SetDefault("domain.concurrency", 1)
	v.SetDefault("domain.dns.server", "")
	v.SetDefault("domain.dns.timeout", "0s")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)

	// Health check defaults
	v.SetDefault("health.enabled", true)
}

// Load decodes the global viper state into a Config and caches it.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom decodes the state held by v into a Config.
func LoadFrom(v *viper.Viper) (*Config, error) {
	if v == nil {
		return nil, fmt.Errorf("config source is nil")
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	setConfig(&cfg)
	return &cfg, nil
}

// Validate reports configuration values that cannot be served.
func Validate(cfg *Config) error {
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", cfg.Server.Port)
	}
	switch cfg.Store.Driver {
	case "libsql", "postgres":
	default:
		return fmt.Errorf("unsupported store.driver: %s", cfg.Store.Driver)
	}
	if cfg.Domain.DNS.Timeout < 0 {
		return fmt.Errorf("domain.dns.timeout must not be negative")
	}
	return nil
}

func normalize(cfg *Config) {
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "libsql"
	}
	if cfg.Domain.Concurrency < 1 {
		cfg.Domain.Concurrency = 1
	}
	cfg.Domain.DNS.Server = strings.TrimSpace(cfg.Domain.DNS.Server)

	origins := cfg.Server.CORSOrigins[:0]
	for _, origin := range cfg.Server.CORSOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	cfg.Server.CORSOrigins = origins
}

// GetConfig returns the most recently loaded configuration.
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

func setConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig = cfg
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/domaingen (or the platform equivalent).
func DefaultConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return ""
	}
	return filepath.Join(base, AppName)
}

// DefaultDataDir returns $XDG_DATA_HOME/domaingen, falling back to ~/.local/share/domaingen.
func DefaultDataDir() string {
	if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" {
		return filepath.Join(base, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// DefaultStorePath returns the default libsql database location.
func DefaultStorePath() string {
	dir := DefaultDataDir()
	if dir == "" {
		return AppName + ".db"
	}
	return filepath.Join(dir, AppName+".db")
}
