package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payguard/internal/auth"
	"payguard/internal/config"
	"payguard/internal/logging"
	"payguard/internal/services"
)

func TestBuildNotifier(t *testing.T) {
	log := logging.Discard()

	n, closeFn, err := buildNotifier(&config.Config{OTPNotifier: "log"}, log)
	require.NoError(t, err)
	assert.IsType(t, services.LogNotifier{}, n)
	closeFn()

	n, closeFn, err = buildNotifier(&config.Config{OTPNotifier: "sms", SMSGatewayURL: "http://sms.local/send"}, log)
	require.NoError(t, err)
	assert.IsType(t, &services.SMSGatewayNotifier{}, n)
	closeFn()

	n, closeFn, err = buildNotifier(&config.Config{OTPNotifier: "redis", RedisURL: "redis://localhost:6379/0", RedisOTPChannel: "c"}, log)
	require.NoError(t, err)
	assert.IsType(t, &services.RedisNotifier{}, n)
	closeFn()

	_, _, err = buildNotifier(&config.Config{OTPNotifier: "redis", RedisURL: "://bad"}, log)
	assert.Error(t, err)
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "cli-secret")

	cmd := tokenCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--user", "6f1c2d8e-3b4a-4c5d-9e0f-1a2b3c4d5e6f"})
	require.NoError(t, cmd.Execute())

	var token string
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, "token: ") {
			token = strings.TrimPrefix(line, "token: ")
		}
	}
	require.NotEmpty(t, token)

	id, err := auth.ParseJWT("cli-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "6f1c2d8e-3b4a-4c5d-9e0f-1a2b3c4d5e6f", id.String())
}

func TestMigrateCmd_SQLite(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "cli-secret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:migrate-cmd?mode=memory&cache=shared")

	cmd := migrateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "schema migrated (sqlite)")
}
