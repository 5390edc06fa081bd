package config

func loadProductionConfig(cfg *Config) {
	// DatabaseFilePath and JWTSecret must come from the config file or
	// environment in production.
	cfg.ServerHost = "0.0.0.0"
}
