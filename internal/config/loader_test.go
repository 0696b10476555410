package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(t *testing.T) *viper.Viper {
	t.Helper()

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func TestLoad(t *testing.T) {
	t.Run("LoadDefaults", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", t.TempDir())

		cfg, err := LoadFrom(newTestViper(t))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "localhost", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, "libsql", cfg.Store.Driver)
		assert.True(t, strings.HasSuffix(cfg.Store.Path, filepath.Join(AppName, AppName+".db")))
		assert.Equal(t, 1, cfg.Domain.Concurrency)
		assert.Zero(t, cfg.Domain.DNS.Timeout)
		assert.Empty(t, cfg.Domain.DNS.Server)
		assert.True(t, cfg.Metrics.Enabled)
		assert.Equal(t, 9090, cfg.Metrics.Port)
		assert.NotEmpty(t, cfg.Server.CORSOrigins)

		assert.Same(t, cfg, GetConfig())
	})

	t.Run("EnvironmentOverrides", func(t *testing.T) {
		t.Setenv("DOMAINGEN_SERVER_PORT", "9999")
		t.Setenv("DOMAINGEN_DOMAIN_CONCURRENCY", "4")
		t.Setenv("DOMAINGEN_DOMAIN_DNS_TIMEOUT", "2s")
		t.Setenv("DOMAINGEN_STORE_DRIVER", " Postgres ")
		t.Setenv("DOMAINGEN_SERVER_CORS_ORIGINS", "https://a.example, https://b.example")

		cfg, err := LoadFrom(newTestViper(t))
		require.NoError(t, err)

		assert.Equal(t, 9999, cfg.Server.Port)
		assert.Equal(t, 4, cfg.Domain.Concurrency)
		assert.Equal(t, 2*time.Second, cfg.Domain.DNS.Timeout)
		assert.Equal(t, "postgres", cfg.Store.Driver)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	})

	t.Run("ConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "server:\n  port: 7000\ndomain:\n  concurrency: 0\n  dns:\n    server: 1.1.1.1:53\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		v := newTestViper(t)
		v.SetConfigFile(path)
		require.NoError(t, v.ReadInConfig())

		cfg, err := LoadFrom(v)
		require.NoError(t, err)
		assert.Equal(t, 7000, cfg.Server.Port)
		assert.Equal(t, 1, cfg.Domain.Concurrency, "concurrency below 1 is clamped to sequential")
		assert.Equal(t, "1.1.1.1:53", cfg.Domain.DNS.Server)
	})

	t.Run("UnsupportedDriver", func(t *testing.T) {
		v := newTestViper(t)
		v.Set("store.driver", "mysql")

		_, err := LoadFrom(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "store.driver")
	})

	t.Run("PortOutOfRange", func(t *testing.T) {
		v := newTestViper(t)
		v.Set("server.port", 70000)

		_, err := LoadFrom(v)
		require.Error(t, err)
	})

	t.Run("NilSource", func(t *testing.T) {
		_, err := LoadFrom(nil)
		require.Error(t, err)
	})
}

func TestDefaultStorePath(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	assert.Equal(t, filepath.Join(dataHome, AppName, AppName+".db"), DefaultStorePath())
}
