package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"menuflow"
	"menuflow/internal/audit"
	"menuflow/internal/config"
	"menuflow/internal/logging"
	"menuflow/pkg/adapters/file"
	"menuflow/pkg/adapters/httpfetch"
	"menuflow/pkg/adapters/memory"
	"menuflow/pkg/adapters/middleware"
	redisadapter "menuflow/pkg/adapters/redis"
	"menuflow/pkg/ports"
)

var rootCmd = &cobra.Command{
	Use:   "menuflow",
	Short: "Menuflow is a manifest-driven menu navigation engine",
	Long:  `Menuflow turns a single screen manifest into an interactive menu interface: terminal, TUI, or JSON API.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("manifest", "", "Path to the screen manifest (overrides config)")
	rootCmd.PersistentFlags().String("root", "", "Root screen id (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

// loadConfig merges the file/env configuration with command-line overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if v, _ := cmd.Flags().GetString("manifest"); v != "" {
		cfg.Manifest.Path = v
	}
	if v, _ := cmd.Flags().GetString("root"); v != "" {
		cfg.Manifest.RootScreen = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	return cfg, nil
}

// buildApp assembles the application from the effective configuration.
func buildApp(cmd *cobra.Command) (*menuflow.App, config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, config.Config{}, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, config.Config{}, err
	}
	logger := logging.New(level)
	sink := audit.New(logger, prometheus.DefaultRegisterer)

	opts := []menuflow.Option{
		menuflow.WithRootScreen(cfg.Manifest.RootScreen),
		menuflow.WithLogger(logger),
		menuflow.WithAudit(sink),
	}

	store, locker, err := buildStore(cfg)
	if err != nil {
		return nil, config.Config{}, err
	}
	if store != nil {
		opts = append(opts, menuflow.WithStore(store))
	}
	if locker != nil {
		opts = append(opts, menuflow.WithLocker(locker))
	}

	if cfg.Fetcher.BaseURL != "" {
		opts = append(opts, menuflow.WithFetcher(httpfetch.New(cfg.Fetcher.BaseURL, httpfetch.WithLogger(logger))))
	}

	app, err := menuflow.New(cfg.Manifest.Path, opts...)
	if err != nil {
		return nil, config.Config{}, err
	}
	return app, cfg, nil
}

// buildStore assembles the configured session store and, for the redis
// backend, a distributed locker sharing its connection pool. A nil store
// keeps the app's in-memory default.
func buildStore(cfg config.Config) (ports.SessionStore, ports.DistributedLocker, error) {
	var store ports.SessionStore
	var locker ports.DistributedLocker

	switch cfg.Store.Backend {
	case "file":
		store = file.NewStore(cfg.Store.Path)
	case "redis":
		rs := redisadapter.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB,
			redisadapter.WithTTL(cfg.Redis.SessionTTL),
		)
		store = rs
		locker = redisadapter.NewLocker(rs.Client(), "menuflow:")
	}

	if cfg.Store.EncryptionKey != "" {
		key, err := base64.StdEncoding.DecodeString(cfg.Store.EncryptionKey)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid store encryption key: %w", err)
		}
		if len(key) != 32 {
			return nil, nil, fmt.Errorf("store encryption key must decode to 32 bytes, got %d", len(key))
		}
		if store == nil {
			store = memory.NewStore()
		}
		store = middleware.NewEncryption(middleware.EncryptionConfig{ActiveKey: key})(store)
	}
	return store, locker, nil
}
