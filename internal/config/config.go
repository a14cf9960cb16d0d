package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	RecoveryStorePostgresql = "postgresql"
	RecoveryStoreRedis      = "redis"
)

type Config struct {
	IsTestMode     bool     `env:"TEST_MODE"`
	Secret         string   `env:"SECRET,required"`
	Port           int      `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL"`

	// Either "postgresql" or "redis".
	RecoveryStore string `env:"RECOVERY_STORE" envDefault:"postgresql"`

	BcryptHasherCost int `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	RecoveryTokenLifetimeMinutes   int `env:"RECOVERY_TOKEN_LIFETIME_MINUTES" envDefault:"30"`
	RecoveryCleanupIntervalMinutes int `env:"RECOVERY_CLEANUP_INTERVAL_MINUTES" envDefault:"15"`

	RecoveryBaseURL url.URL `env:"RECOVERY_BASE_URL,required"`

	AwsRegion                string `env:"AWS_REGION" envDefault:"eu-west-1"`
	AwsAccessKey             string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey             string `env:"AWS_SECRET_KEY"`
	AwsEmailSender           string `env:"AWS_EMAIL_SENDER"`
	AwsEmailRecoveryTemplate string `env:"AWS_EMAIL_RECOVERY_TEMPLATE" envDefault:"password-recovery"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}

	switch config.RecoveryStore {
	case RecoveryStorePostgresql:
	case RecoveryStoreRedis:
		if config.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL must be set when RECOVERY_STORE is %q", RecoveryStoreRedis)
		}
	default:
		return nil, fmt.Errorf("invalid RECOVERY_STORE value: %q", config.RecoveryStore)
	}

	if config.RecoveryTokenLifetimeMinutes <= 0 {
		return nil, fmt.Errorf("RECOVERY_TOKEN_LIFETIME_MINUTES must be positive")
	}

	return config, nil
}

func (c *Config) RecoveryTokenLifetime() time.Duration {
	return time.Duration(c.RecoveryTokenLifetimeMinutes) * time.Minute
}

func (c *Config) RecoveryCleanupInterval() time.Duration {
	return time.Duration(c.RecoveryCleanupIntervalMinutes) * time.Minute
}
