// internal/models/transaction.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodUPI  PaymentMethod = "UPI"
	PaymentMethodCard PaymentMethod = "Card"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodUPI || m == PaymentMethodCard
}

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "Pending"
	StatusCompleted TransactionStatus = "Completed"
	StatusFailed    TransactionStatus = "Failed"
	StatusFraud     TransactionStatus = "Fraud"
)

// Terminal reports whether no further transition is defined from s.
func (s TransactionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusFraud
}

type Transaction struct {
	ID               uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID         `json:"user_id" gorm:"type:uuid;not null;index:idx_transactions_user_created,priority:1"`
	Amount           decimal.Decimal   `json:"amount" gorm:"type:numeric(18,2);not null"`
	PaymentMethod    PaymentMethod     `json:"payment_method" gorm:"size:16;not null"`
	Status           TransactionStatus `json:"status" gorm:"size:16;not null"`
	FraudCheckPassed bool              `json:"fraud_check_passed" gorm:"not null"`
	CreatedAt        time.Time         `json:"created_at" gorm:"not null;index:idx_transactions_user_created,priority:2"`
	UpdatedAt        *time.Time        `json:"updated_at,omitempty" gorm:"autoUpdateTime:false"`
}

// NewTransaction builds a Pending transaction that has not yet been fraud checked.
func NewTransaction(userID uuid.UUID, amount decimal.Decimal, method PaymentMethod, now time.Time) *Transaction {
	return &Transaction{
		ID:               uuid.New(),
		UserID:           userID,
		Amount:           amount,
		PaymentMethod:    method,
		Status:           StatusPending,
		FraudCheckPassed: true,
		CreatedAt:        now.UTC(),
	}
}

// MarkFraud moves a pending transaction to the Fraud state.
func (t *Transaction) MarkFraud() {
	t.Status = StatusFraud
	t.FraudCheckPassed = false
}
