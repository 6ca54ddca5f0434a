package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, "8002", cfg.GinPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "payguard.db", cfg.DatabaseURL)
	assert.Equal(t, "10000", cfg.FraudAmountLimit.String())
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.Equal(t, "log", cfg.OTPNotifier)
	assert.Equal(t, "payguard:otp", cfg.RedisOTPChannel)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/payguard")
	t.Setenv("FRAUD_AMOUNT_LIMIT", "2500.50")
	t.Setenv("OTP_TTL", "90s")
	t.Setenv("OTP_NOTIFIER", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "2500.5", cfg.FraudAmountLimit.String())
	assert.Equal(t, 90*time.Second, cfg.OTPTTL)
	assert.Equal(t, "redis", cfg.OTPNotifier)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"driver":          {"DB_DRIVER": "mongo"},
		"limit":           {"FRAUD_AMOUNT_LIMIT": "lots"},
		"negative limit":  {"FRAUD_AMOUNT_LIMIT": "-1"},
		"ttl":             {"OTP_TTL": "soon"},
		"zero ttl":        {"OTP_TTL": "0s"},
		"notifier":        {"OTP_NOTIFIER": "pigeon"},
		"sms without url": {"OTP_NOTIFIER": "sms"},
		"redis no url":    {"OTP_NOTIFIER": "redis"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("JWT_SECRET_KEY", "secret")
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
