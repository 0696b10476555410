package config

import "time"

// Config represents the complete application configuration.
// Values are layered by viper: defaults, optional config file, environment
// variables (DOMAINGEN_ prefix) and bound command flags.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	Domain  DomainConfig  `mapstructure:"domain"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Health  HealthConfig  `mapstructure:"health"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// CORSOrigins lists browser origins allowed to call the API.
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// StoreConfig contains database configuration for libsql/Turso or Postgres
type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	URL       string `mapstructure:"url"`
	AuthToken string `mapstructure:"auth_token"`
}

// DomainConfig contains candidate generation settings.
type DomainConfig struct {
	// Concurrency bounds in-flight availability checks per request.
	// 1 keeps checks strictly sequential.
	Concurrency int       `mapstructure:"concurrency"`
	DNS         DNSConfig `mapstructure:"dns"`
}

// DNSConfig configures the resolver used for availability checks.
type DNSConfig struct {
	// Server is an optional host:port nameserver. Empty uses the system resolver.
	Server string `mapstructure:"server"`

	// Timeout bounds a single lookup. Zero leaves the transport default in place.
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	// Level controls the minimum log level
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level"`

	// Profile selects the logging complexity level
	// Valid values: SIMPLE, STRUCTURED
	Profile string `mapstructure:"profile"`
}

// MetricsConfig contains Prometheus metrics configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Port is the dedicated metrics endpoint port (Prometheus format)
	Port int `mapstructure:"port"`
}

// HealthConfig contains health check configuration
type HealthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
