package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	GinMode      string
	GinPort      string
	JWTSecretKey string
	FrontendURL  string

	DBDriver    string
	DatabaseURL string

	FraudAmountLimit decimal.Decimal
	OTPTTL           time.Duration

	// OTPNotifier selects how codes leave the service: log, sms or redis.
	OTPNotifier     string
	SMSGatewayURL   string
	SMSGatewayToken string
	RedisURL        string
	RedisOTPChannel string

	LogLevel  string
	LogFormat string
}

const (
	defaultGinMode          = "debug"
	defaultGinPort          = "8002"
	defaultDBDriver         = "sqlite"
	defaultDatabaseURL      = "payguard.db"
	defaultFraudAmountLimit = "10000"
	defaultOTPTTL           = 5 * time.Minute
	defaultOTPNotifier      = "log"
	defaultRedisOTPChannel  = "payguard:otp"
	defaultLogLevel         = "info"
	defaultLogFormat        = "text"
)

func Load() (*Config, error) {

	getEnv := func(key string, required bool) (string, error) {
		value := os.Getenv(key)
		if value == "" && required {
			return "", fmt.Errorf("missing required environment variable: %s", key)
		}
		return value, nil
	}

	cfg := &Config{
		GinMode:         valueOrDefault("GIN_MODE", defaultGinMode),
		GinPort:         valueOrDefault("GIN_PORT", defaultGinPort),
		FrontendURL:     os.Getenv("FRONTEND_URL"),
		DBDriver:        strings.ToLower(valueOrDefault("DB_DRIVER", defaultDBDriver)),
		DatabaseURL:     valueOrDefault("DATABASE_URL", defaultDatabaseURL),
		OTPTTL:          defaultOTPTTL,
		OTPNotifier:     strings.ToLower(valueOrDefault("OTP_NOTIFIER", defaultOTPNotifier)),
		SMSGatewayURL:   os.Getenv("SMS_GATEWAY_URL"),
		SMSGatewayToken: os.Getenv("SMS_GATEWAY_TOKEN"),
		RedisURL:        os.Getenv("REDIS_URL"),
		RedisOTPChannel: valueOrDefault("REDIS_OTP_CHANNEL", defaultRedisOTPChannel),
		LogLevel:        valueOrDefault("LOG_LEVEL", defaultLogLevel),
		LogFormat:       valueOrDefault("LOG_FORMAT", defaultLogFormat),
	}
	var err error

	if cfg.JWTSecretKey, err = getEnv("JWT_SECRET_KEY", true); err != nil {
		return nil, err
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	limit := valueOrDefault("FRAUD_AMOUNT_LIMIT", defaultFraudAmountLimit)
	if cfg.FraudAmountLimit, err = decimal.NewFromString(limit); err != nil {
		return nil, fmt.Errorf("invalid FRAUD_AMOUNT_LIMIT %q: %w", limit, err)
	}
	if !cfg.FraudAmountLimit.IsPositive() {
		return nil, fmt.Errorf("FRAUD_AMOUNT_LIMIT must be positive, got %s", limit)
	}

	if v := os.Getenv("OTP_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid OTP_TTL: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("OTP_TTL must be positive, got %s", v)
		}
		cfg.OTPTTL = d
	}

	switch cfg.OTPNotifier {
	case "log":
	case "sms":
		if cfg.SMSGatewayURL, err = getEnv("SMS_GATEWAY_URL", true); err != nil {
			return nil, err
		}
	case "redis":
		if cfg.RedisURL, err = getEnv("REDIS_URL", true); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported OTP_NOTIFIER %q", cfg.OTPNotifier)
	}

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
