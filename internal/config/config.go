// Package config loads application configuration from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Manifest ManifestConfig
	Store    StoreConfig
	Redis    RedisConfig
	Fetcher  FetcherConfig
	Server   ServerConfig
	Log      LogConfig
}

// ManifestConfig names the screen manifest and the root screen.
type ManifestConfig struct {
	Path       string
	RootScreen string `mapstructure:"root_screen"`
}

// StoreConfig selects the session store backend: "memory", "file" or
// "redis". Path is only used by the file backend. EncryptionKey, when set,
// is a base64-encoded 32-byte key; sessions are then encrypted at rest.
type StoreConfig struct {
	Backend       string
	Path          string
	EncryptionKey string `mapstructure:"encryption_key"`
}

// RedisConfig holds connection settings for the redis backend.
type RedisConfig struct {
	Address    string
	Password   string
	DB         int
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// FetcherConfig selects the data source for dynamic screens. An empty
// base_url keeps the built-in sample data.
type FetcherConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Listen string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix
// MENUFLOW_, e.g. MENUFLOW_REDIS_ADDRESS.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("manifest.path", "menu-manifest.json")
	v.SetDefault("manifest.root_screen", "main")
	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.path", "")
	v.SetDefault("store.encryption_key", "")
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.session_ttl", time.Duration(0))
	v.SetDefault("fetcher.base_url", "")
	v.SetDefault("server.listen", ":8080")
	v.SetDefault("log.level", "info")

	v.SetConfigType("yaml")

	cfgPath := os.Getenv("MENUFLOW_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "menuflow"))
		v.SetConfigName("menuflow")
	}

	v.SetEnvPrefix("MENUFLOW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// config file is optional
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	switch c.Store.Backend {
	case "memory", "file", "redis":
	default:
		return Config{}, fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return c, nil
}
