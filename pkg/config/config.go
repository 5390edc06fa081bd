package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	koanfenv "github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

type Config struct {
	DatabaseBusyTimeout       time.Duration
	DatabaseConnectRetryCount int
	DatabaseConnectRetryDelay time.Duration
	DatabaseDebug             bool
	DatabaseFilePath          string
	DatabaseMaxRetries        int
	Environment               string
	Hostname                  string
	JWTSecret                 string
	SeedFilePath              string
	ServerHost                string
	ServerPort                int
}

const (
	environmentENV = "ENVIRONMENT"
	configFileENV  = "CONFIG_FILE"
	envPrefix      = "SHELFWISE_"
)

// New builds the config in three layers: per-environment defaults, an
// optional YAML config file, and SHELFWISE_-prefixed environment variables.
// Later layers win.
func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	environment := os.Getenv(environmentENV)
	if environment == "" {
		environment = "development"
	}

	cfg := &Config{
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseMaxRetries:        3,
		Environment:               environment,
		Hostname:                  hostname,
		ServerPort:                3690,
	}

	switch environment {
	case "development":
		loadDevelopmentConfig(cfg)
	case "test":
		loadTestConfig(cfg)
	case "production":
		loadProductionConfig(cfg)
	}

	k := koanf.New(".")

	configFilePath := os.Getenv(configFileENV)
	if configFilePath == "" {
		configFilePath = "config.yaml"
	}
	if _, err := os.Stat(configFilePath); err == nil {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file: %s", configFilePath)
		}
	}

	err = k.Load(koanfenv.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	apply(k, cfg)

	if cfg.DatabaseFilePath == "" {
		return nil, errors.New("missing required config: database_file_path (SHELFWISE_DATABASE_FILE_PATH)")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("missing required config: jwt_secret (SHELFWISE_JWT_SECRET)")
	}

	return cfg, nil
}

func apply(k *koanf.Koanf, cfg *Config) {
	if k.Exists("database_busy_timeout") {
		cfg.DatabaseBusyTimeout = k.Duration("database_busy_timeout")
	}
	if k.Exists("database_debug") {
		cfg.DatabaseDebug = k.Bool("database_debug")
	}
	if k.Exists("database_file_path") {
		cfg.DatabaseFilePath = k.String("database_file_path")
	}
	if k.Exists("database_max_retries") {
		cfg.DatabaseMaxRetries = k.Int("database_max_retries")
	}
	if k.Exists("jwt_secret") {
		cfg.JWTSecret = k.String("jwt_secret")
	}
	if k.Exists("seed_file_path") {
		cfg.SeedFilePath = k.String("seed_file_path")
	}
	if k.Exists("server_host") {
		cfg.ServerHost = k.String("server_host")
	}
	if k.Exists("server_port") {
		cfg.ServerPort = k.Int("server_port")
	}
}
