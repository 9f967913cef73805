package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("POSTGRESQL_URL", "postgres://localhost:5432/credstore")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
}

func TestDefaults(t *testing.T) {
	setRequired(t)

	config, err := Load()

	require.Nil(t, err)
	require.False(t, config.IsTestMode)
	require.Equal(t, uint16(9090), config.Port)
	require.Equal(t, []string{"*"}, config.AllowedOrigins)
	require.Equal(t, SecretDeriverPBKDF2, config.SecretDeriver)
	require.Equal(t, 1000, config.PBKDF2Iterations)
	require.Equal(t, 20, config.PBKDF2KeyLength)
	require.Equal(t, 20, config.PBKDF2SaltLength)
	require.Equal(t, uint16(10), config.ResetPasswordRateLimitPerMinute)
	require.Equal(t, 5*time.Second, config.RollbackTimeout)
}

func TestOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("TEST_MODE", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SECRET_DERIVER", "argon2id")
	t.Setenv("ROLLBACK_TIMEOUT", "250ms")

	config, err := Load()

	require.Nil(t, err)
	require.True(t, config.IsTestMode)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, config.AllowedOrigins)
	require.Equal(t, SecretDeriverArgon2id, config.SecretDeriver)
	require.Equal(t, 250*time.Millisecond, config.RollbackTimeout)
}

func TestInvalid(t *testing.T) {
	cases := []struct {
		id  string
		env map[string]string
	}{
		{id: "no-postgresql-url", env: map[string]string{"POSTGRESQL_URL": ""}},
		{id: "no-redis-url", env: map[string]string{"REDIS_URL": ""}},
		{id: "unknown-deriver", env: map[string]string{"SECRET_DERIVER": "md5"}},
		{id: "zero-iterations", env: map[string]string{"PBKDF2_ITERATIONS": "0"}},
		{id: "zero-rate-limit", env: map[string]string{"RESET_PASSWORD_RATE_LIMIT_PER_MINUTE": "0"}},
		{id: "bad-timeout", env: map[string]string{"ROLLBACK_TIMEOUT": "soon"}},
		{id: "bad-port", env: map[string]string{"PORT": "70000"}},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			setRequired(t)
			for k, v := range testcase.env {
				t.Setenv(k, v)
			}

			_, err := Load()

			require.NotNil(t, err)
		})
	}
}
