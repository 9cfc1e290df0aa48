// Package config loads vaultchat-backend's runtime configuration from the
// environment, following the project's env-then-default convention
// (pkg/env) with Docker-secret (_FILE suffix) support for the admin token.
package config

import (
	"fmt"

	"vaultchat-backend/pkg/env"
)

// Config is the full set of runtime settings for the service.
type Config struct {
	Port        string
	ServiceName string
	Env         string

	StorageDir string
	VaultDir   string

	AdminToken string

	KeyExpiryMinutes        int
	PowDifficulty           int
	SchedulerIntervalSeconds int

	RedisAddr string

	Log LogConfig
}

// LogConfig mirrors pkg/logger.Config's shape.
type LogConfig struct {
	Level  string
	Format string
	Output string
}

// Load reads Config from the environment, applying the documented
// defaults for anything unset.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        env.GetString("PORT", "8080"),
		ServiceName: env.GetString("SERVICE_NAME", "vaultchat-backend"),
		Env:         env.GetString("ENV", "development"),

		StorageDir: env.GetString("STORAGE_DIR", "storage"),
		VaultDir:   env.GetString("VAULT_DIR", "storage/vault"),

		AdminToken: env.GetStringFromFile("ADMIN_TOKEN", ""),

		KeyExpiryMinutes:         env.GetInt("KEY_EXPIRY_MINUTES", 60),
		PowDifficulty:            env.GetInt("POW_DIFFICULTY", 6),
		SchedulerIntervalSeconds: env.GetInt("SCHEDULER_INTERVAL_SECONDS", 60),

		RedisAddr: env.GetString("REDIS_ADDR", ""),

		Log: LogConfig{
			Level:  env.GetString("LOG_LEVEL", "info"),
			Format: env.GetString("LOG_FORMAT", "json"),
			Output: env.GetString("LOG_OUTPUT", "stdout"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.KeyExpiryMinutes <= 0 {
		return fmt.Errorf("config: KEY_EXPIRY_MINUTES must be positive, got %d", c.KeyExpiryMinutes)
	}
	if c.PowDifficulty < 0 {
		return fmt.Errorf("config: POW_DIFFICULTY must not be negative, got %d", c.PowDifficulty)
	}
	if c.SchedulerIntervalSeconds <= 0 {
		return fmt.Errorf("config: SCHEDULER_INTERVAL_SECONDS must be positive, got %d", c.SchedulerIntervalSeconds)
	}
	return nil
}
