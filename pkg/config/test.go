package config

import "time"

// NewForTest returns a config with test defaults without consulting the
// environment or a config file.
func NewForTest() *Config {
	cfg := &Config{
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 10 * time.Millisecond,
		DatabaseMaxRetries:        3,
		Environment:               "test",
		Hostname:                  "test",
	}
	loadTestConfig(cfg)
	return cfg
}

func loadTestConfig(cfg *Config) {
	cfg.DatabaseFilePath = ":memory:"
	cfg.JWTSecret = "test-secret"
	cfg.ServerHost = "127.0.0.1"
	// Use an ephemeral port so parallel test runs don't collide.
	cfg.ServerPort = 0
}
