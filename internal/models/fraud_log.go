// internal/models/fraud_log.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type FraudLog struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	TransactionID uuid.UUID `json:"transaction_id" gorm:"type:uuid;not null;index"`
	Reason        string    `json:"reason" gorm:"not null"`
	DetectedAt    time.Time `json:"detected_at" gorm:"not null"`
}

func NewFraudLog(transactionID uuid.UUID, reason string, now time.Time) *FraudLog {
	return &FraudLog{
		ID:            uuid.New(),
		TransactionID: transactionID,
		Reason:        reason,
		DetectedAt:    now.UTC(),
	}
}
