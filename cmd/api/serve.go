package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"

	"payguard/internal/config"
	"payguard/internal/fraud"
	"payguard/internal/handlers"
	"payguard/internal/logging"
	"payguard/internal/routes"
	"payguard/internal/services"
	"payguard/internal/store"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("could not load configuration: %w", err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	notifier, closeNotifier, err := buildNotifier(cfg, log)
	if err != nil {
		return err
	}
	defer closeNotifier()

	payments := services.NewPaymentService(
		st,
		fraud.NewDefaultEvaluator(cfg.FraudAmountLimit),
		notifier,
		log,
		services.WithOTPTTL(cfg.OTPTTL),
	)

	router := routes.SetupRouter(routes.Dependencies{
		Payments:     handlers.NewPaymentHandler(payments, log),
		Health:       st,
		JWTSecretKey: cfg.JWTSecretKey,
		FrontendURL:  cfg.FrontendURL,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.GinPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting http server", "addr", srv.Addr, "notifier", cfg.OTPNotifier, "db", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("received shutdown signal")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped unexpectedly: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	level := logger.Warn
	if cfg.LogLevel == "debug" {
		level = logger.Info
	}
	db, err := store.Open(cfg.DBDriver, cfg.DatabaseURL, level)
	if err != nil {
		return nil, err
	}
	st := store.New(db)
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

func buildNotifier(cfg *config.Config, log *slog.Logger) (services.OTPNotifier, func(), error) {
	switch cfg.OTPNotifier {
	case "sms":
		return services.NewSMSGatewayNotifier(cfg.SMSGatewayURL, cfg.SMSGatewayToken, log), func() {}, nil
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		return services.NewRedisNotifier(client, cfg.RedisOTPChannel), func() { _ = client.Close() }, nil
	default:
		return services.LogNotifier{Logger: log}, func() {}, nil
	}
}
