package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	SecretDeriverPBKDF2   = "pbkdf2"
	SecretDeriverArgon2id = "argon2id"
)

type Config struct {
	IsTestMode     bool     `env:"TEST_MODE" envDefault:"false"`
	Port           uint16   `env:"PORT" envDefault:"9090"`
	PostgresqlURL  string   `env:"POSTGRESQL_URL,required"`
	RedisURL       string   `env:"REDIS_URL,required"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	SecretDeriver     string `env:"SECRET_DERIVER" envDefault:"pbkdf2"`
	PBKDF2Iterations  int    `env:"PBKDF2_ITERATIONS" envDefault:"1000"`
	PBKDF2KeyLength   int    `env:"PBKDF2_KEY_LENGTH" envDefault:"20"`
	PBKDF2SaltLength  int    `env:"PBKDF2_SALT_LENGTH" envDefault:"20"`
	Argon2Memory      uint32 `env:"ARGON2_MEMORY_KB" envDefault:"65536"`
	Argon2Time        uint32 `env:"ARGON2_TIME" envDefault:"1"`
	Argon2Parallelism uint8  `env:"ARGON2_PARALLELISM" envDefault:"2"`
	Argon2SaltLength  uint32 `env:"ARGON2_SALT_LENGTH" envDefault:"16"`
	Argon2KeyLength   uint32 `env:"ARGON2_KEY_LENGTH" envDefault:"32"`

	ResetPasswordRateLimitPerMinute uint16 `env:"RESET_PASSWORD_RATE_LIMIT_PER_MINUTE" envDefault:"10"`

	RollbackTimeout time.Duration `env:"ROLLBACK_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"20s"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.PostgresqlURL == "" {
		return fmt.Errorf("POSTGRESQL_URL must be set")
	}
	if c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL must be set")
	}
	switch c.SecretDeriver {
	case SecretDeriverPBKDF2, SecretDeriverArgon2id:
	default:
		return fmt.Errorf("invalid SECRET_DERIVER value: %q", c.SecretDeriver)
	}
	if c.PBKDF2Iterations <= 0 || c.PBKDF2KeyLength <= 0 || c.PBKDF2SaltLength <= 0 {
		return fmt.Errorf("PBKDF2 parameters must be positive")
	}
	if c.ResetPasswordRateLimitPerMinute == 0 {
		return fmt.Errorf("RESET_PASSWORD_RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.RollbackTimeout <= 0 {
		return fmt.Errorf("ROLLBACK_TIMEOUT must be positive")
	}
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_ORIGINS must be set")
	}
	return nil
}
