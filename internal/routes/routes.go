package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"payguard/internal/handlers"
	"payguard/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether the backing database is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Dependencies struct {
	Payments     *handlers.PaymentHandler
	Health       HealthChecker
	JWTSecretKey string
	FrontendURL  string
	Logger       *slog.Logger
}

func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if deps.FrontendURL == "" {
		deps.Logger.Warn("FRONTEND_URL not set, allowing any origin")
		corsConfig.AllowOriginFunc = func(string) bool { return true }
	} else {
		corsConfig.AllowOrigins = []string{deps.FrontendURL}
		deps.Logger.Info("CORS configured", "origin", deps.FrontendURL)
	}
	router.Use(cors.New(corsConfig))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if deps.Health != nil {
			if err := deps.Health.Ping(ctx); err != nil {
				deps.Logger.Error("health probe failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api", middleware.RequireAuth(deps.JWTSecretKey))
	{
		payment := api.Group("/payment")
		payment.POST("/initiate", deps.Payments.HandleInitiatePayment)
		payment.POST("/verify-otp", deps.Payments.HandleVerifyOTP)
		payment.POST("/resend-otp", deps.Payments.HandleResendOTP)

		api.GET("/transactions", deps.Payments.HandleListTransactions)
	}

	for _, route := range router.Routes() {
		deps.Logger.Debug(fmt.Sprintf("registered route %-6s %s", route.Method, route.Path))
	}

	return router
}
