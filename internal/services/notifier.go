// internal/services/notifier.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// OTPMessage is what leaves the service when a code is issued.
type OTPMessage struct {
	UserID        uuid.UUID `json:"user_id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	Code          string    `json:"code"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// OTPNotifier delivers codes to the user out of band.
type OTPNotifier interface {
	SendOTP(ctx context.Context, msg OTPMessage) error
}

// LogNotifier writes codes to the log. It stands in for a real channel in
// development.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) SendOTP(_ context.Context, msg OTPMessage) error {
	n.Logger.Info("otp issued",
		"user_id", msg.UserID,
		"transaction_id", msg.TransactionID,
		"code", msg.Code,
		"expires_at", msg.ExpiresAt,
	)
	return nil
}

// smsGatewayRequest is the body posted to the SMS gateway.
type smsGatewayRequest struct {
	UserID    string `json:"user_id"`
	Reference string `json:"reference"`
	Message   string `json:"message"`
}

type smsGatewayResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type smsGatewayError struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// SMSGatewayNotifier posts codes to an HTTP SMS gateway.
type SMSGatewayNotifier struct {
	client *resty.Client
	url    string
	logger *slog.Logger
}

func NewSMSGatewayNotifier(url, token string, logger *slog.Logger) *SMSGatewayNotifier {
	client := resty.New().
		SetTimeout(10*time.Second).
		SetHeader("Content-Type", "application/json")
	if token != "" {
		client.SetAuthToken(token)
	}
	return &SMSGatewayNotifier{client: client, url: url, logger: logger}
}

func (n *SMSGatewayNotifier) SendOTP(ctx context.Context, msg OTPMessage) error {
	var successResp smsGatewayResponse
	var errorResp smsGatewayError

	body := smsGatewayRequest{
		UserID:    msg.UserID.String(),
		Reference: msg.TransactionID.String(),
		Message: fmt.Sprintf("Your payment confirmation code is %s. It expires at %s.",
			msg.Code, msg.ExpiresAt.UTC().Format(time.Kitchen)),
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&successResp).
		SetError(&errorResp).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("could not reach sms gateway: %w", err)
	}

	if resp.IsError() {
		n.logger.Error("sms gateway rejected otp",
			"transaction_id", msg.TransactionID,
			"status", resp.Status(),
			"message", errorResp.Message,
			"details", errorResp.Errors,
		)
		if errorResp.Message != "" {
			return fmt.Errorf("sms gateway error: %s", errorResp.Message)
		}
		return fmt.Errorf("sms gateway error: received status %s", resp.Status())
	}

	if successResp.Status != "" && successResp.Status != "success" && successResp.Status != "queued" {
		return fmt.Errorf("sms gateway did not accept message: %s", successResp.Message)
	}
	return nil
}

// RedisNotifier publishes codes on a Redis channel for a downstream sender.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

func NewRedisNotifier(client *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel}
}

func (n *RedisNotifier) SendOTP(ctx context.Context, msg OTPMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode otp message: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish otp on %s: %w", n.channel, err)
	}
	return nil
}
