// internal/services/payment.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"payguard/internal/fraud"
	"payguard/internal/models"
	"payguard/internal/store"
)

const DefaultOTPTTL = 5 * time.Minute

// PaymentStore is the persistence the payment workflow needs.
type PaymentStore interface {
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	CreateFlaggedTransaction(ctx context.Context, tx *models.Transaction, entry *models.FraudLog) error
	FindTransaction(ctx context.Context, id, userID uuid.UUID) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error)
	CompleteTransaction(ctx context.Context, id, userID uuid.UUID, now time.Time) (bool, error)
	CreateOTP(ctx context.Context, otp *models.OTP) error
	FindUnverifiedOTP(ctx context.Context, userID uuid.UUID, code string) (*models.OTP, error)
	ConsumeOTP(ctx context.Context, id uuid.UUID) (bool, error)
}

type PaymentService struct {
	store     PaymentStore
	evaluator *fraud.Evaluator
	notifier  OTPNotifier
	logger    *slog.Logger

	otpTTL       time.Duration
	generateCode CodeGenerator
	now          func() time.Time
}

type Option func(*PaymentService)

func WithOTPTTL(ttl time.Duration) Option {
	return func(s *PaymentService) { s.otpTTL = ttl }
}

func WithClock(now func() time.Time) Option {
	return func(s *PaymentService) { s.now = now }
}

func WithCodeGenerator(gen CodeGenerator) Option {
	return func(s *PaymentService) { s.generateCode = gen }
}

func NewPaymentService(st PaymentStore, evaluator *fraud.Evaluator, notifier OTPNotifier, logger *slog.Logger, opts ...Option) *PaymentService {
	s := &PaymentService{
		store:        st,
		evaluator:    evaluator,
		notifier:     notifier,
		logger:       logger,
		otpTTL:       DefaultOTPTTL,
		generateCode: GenerateOTP,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InitiatePayment records a new transaction for userID. A transaction that
// fails the fraud check is stored with status Fraud and a *FraudFlaggedError
// is returned alongside it; otherwise a one-time code is issued for it.
func (s *PaymentService) InitiatePayment(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, method models.PaymentMethod) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	now := s.now()
	tx := models.NewTransaction(userID, amount, method, now)

	result := s.evaluator.Evaluate(tx)
	if !result.Passed {
		tx.MarkFraud()
		entry := models.NewFraudLog(tx.ID, result.Reason, now)
		if err := s.store.CreateFlaggedTransaction(ctx, tx, entry); err != nil {
			return nil, err
		}
		s.logger.Warn("transaction flagged as fraud",
			"transaction_id", tx.ID,
			"user_id", userID,
			"amount", amount.String(),
			"reason", result.Reason,
		)
		return tx, &FraudFlaggedError{Reason: result.Reason}
	}

	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	if err := s.issueOTP(ctx, tx); err != nil {
		return nil, err
	}

	s.logger.Info("payment initiated", "transaction_id", tx.ID, "user_id", userID, "method", method)
	return tx, nil
}

// VerifyOTP consumes code for userID and completes the transaction.
func (s *PaymentService) VerifyOTP(ctx context.Context, userID, transactionID uuid.UUID, code string) error {
	otp, err := s.store.FindUnverifiedOTP(ctx, userID, code)
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvalidOTP
	}
	if err != nil {
		return fmt.Errorf("failed to look up otp: %w", err)
	}

	now := s.now()
	if otp.Expired(now) {
		return ErrOTPExpired
	}

	consumed, err := s.store.ConsumeOTP(ctx, otp.ID)
	if err != nil {
		return err
	}
	if !consumed {
		// Another request verified the same code between lookup and update.
		return ErrInvalidOTP
	}

	tx, err := s.store.FindTransaction(ctx, transactionID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrTransactionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up transaction: %w", err)
	}
	if tx.Status != models.StatusPending {
		return ErrTransactionFinalized
	}

	completed, err := s.store.CompleteTransaction(ctx, tx.ID, userID, now)
	if err != nil {
		return err
	}
	if !completed {
		return ErrTransactionFinalized
	}

	s.logger.Info("transaction completed", "transaction_id", tx.ID, "user_id", userID)
	return nil
}

// ResendOTP issues a fresh code for a transaction that is still pending.
func (s *PaymentService) ResendOTP(ctx context.Context, userID, transactionID uuid.UUID) error {
	tx, err := s.store.FindTransaction(ctx, transactionID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrTransactionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up transaction: %w", err)
	}
	if tx.Status != models.StatusPending {
		return ErrTransactionFinalized
	}
	return s.issueOTP(ctx, tx)
}

func (s *PaymentService) ListTransactions(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	return s.store.ListTransactions(ctx, userID)
}

func (s *PaymentService) issueOTP(ctx context.Context, tx *models.Transaction) error {
	code, err := s.generateCode()
	if err != nil {
		return err
	}

	otp := models.NewOTP(tx.UserID, code, s.now(), s.otpTTL)
	if err := s.store.CreateOTP(ctx, otp); err != nil {
		return err
	}

	msg := OTPMessage{
		UserID:        tx.UserID,
		TransactionID: tx.ID,
		Code:          code,
		ExpiresAt:     otp.ExpiresAt,
	}
	if err := s.notifier.SendOTP(ctx, msg); err != nil {
		// The code is stored; the user can ask for another one.
		s.logger.Error("failed to deliver otp", "transaction_id", tx.ID, "error", err)
	}
	return nil
}
