package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"payguard/internal/middleware"
	"payguard/internal/models"
	"payguard/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentService is the workflow behind the payment endpoints.
type PaymentService interface {
	InitiatePayment(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, method models.PaymentMethod) (*models.Transaction, error)
	VerifyOTP(ctx context.Context, userID, transactionID uuid.UUID, code string) error
	ResendOTP(ctx context.Context, userID, transactionID uuid.UUID) error
	ListTransactions(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error)
}

type PaymentHandler struct {
	payments PaymentService
	logger   *slog.Logger
}

func NewPaymentHandler(payments PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, logger: logger}
}

type initiatePaymentRequest struct {
	Amount        decimal.Decimal      `json:"amount"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod" binding:"required"`
}

type verifyOTPRequest struct {
	TransactionID string `json:"transactionId" binding:"required"`
	OTPCode       string `json:"otpCode" binding:"required"`
}

type resendOTPRequest struct {
	TransactionID string `json:"transactionId" binding:"required"`
}

func (h *PaymentHandler) HandleInitiatePayment(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		returnError(c, "Authentication required.", http.StatusUnauthorized)
		return
	}

	var req initiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		returnError(c, "Invalid request format.", http.StatusBadRequest)
		return
	}

	tx, err := h.payments.InitiatePayment(c.Request.Context(), userID, req.Amount, req.PaymentMethod)
	var flagged *services.FraudFlaggedError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"message":       "OTP sent to registered contact",
			"transactionId": tx.ID,
		})
	case errors.As(err, &flagged):
		c.JSON(http.StatusForbidden, gin.H{
			"message": "Transaction flagged as fraud",
			"reason":  flagged.Reason,
		})
	case errors.Is(err, services.ErrInvalidAmount):
		returnError(c, "Amount must be greater than zero", http.StatusBadRequest)
	case errors.Is(err, services.ErrInvalidPaymentMethod):
		returnError(c, "Payment method must be UPI or Card", http.StatusBadRequest)
	default:
		h.serverError(c, "initiate payment failed", err)
	}
}

func (h *PaymentHandler) HandleVerifyOTP(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		returnError(c, "Authentication required.", http.StatusUnauthorized)
		return
	}

	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		returnError(c, "Invalid request format.", http.StatusBadRequest)
		return
	}

	// A malformed id cannot name any transaction.
	transactionID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		returnError(c, "Transaction not found", http.StatusNotFound)
		return
	}

	err = h.payments.VerifyOTP(c.Request.Context(), userID, transactionID, req.OTPCode)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Transaction completed successfully"})
	case errors.Is(err, services.ErrInvalidOTP):
		returnError(c, "Invalid OTP", http.StatusBadRequest)
	case errors.Is(err, services.ErrOTPExpired):
		returnError(c, "OTP expired", http.StatusBadRequest)
	case errors.Is(err, services.ErrTransactionNotFound):
		returnError(c, "Transaction not found", http.StatusNotFound)
	case errors.Is(err, services.ErrTransactionFinalized):
		returnError(c, "Transaction already finalized", http.StatusConflict)
	default:
		h.serverError(c, "verify otp failed", err)
	}
}

func (h *PaymentHandler) HandleResendOTP(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		returnError(c, "Authentication required.", http.StatusUnauthorized)
		return
	}

	var req resendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		returnError(c, "Invalid request format.", http.StatusBadRequest)
		return
	}

	transactionID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		returnError(c, "Transaction not found", http.StatusNotFound)
		return
	}

	err = h.payments.ResendOTP(c.Request.Context(), userID, transactionID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"message":       "OTP sent to registered contact",
			"transactionId": transactionID,
		})
	case errors.Is(err, services.ErrTransactionNotFound):
		returnError(c, "Transaction not found", http.StatusNotFound)
	case errors.Is(err, services.ErrTransactionFinalized):
		returnError(c, "Transaction already finalized", http.StatusConflict)
	default:
		h.serverError(c, "resend otp failed", err)
	}
}

func (h *PaymentHandler) HandleListTransactions(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		returnError(c, "Authentication required.", http.StatusUnauthorized)
		return
	}

	txs, err := h.payments.ListTransactions(c.Request.Context(), userID)
	if err != nil {
		h.serverError(c, "list transactions failed", err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

func (h *PaymentHandler) serverError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, "path", c.FullPath(), "error", err)
	returnError(c, "Server error", http.StatusInternalServerError)
}
