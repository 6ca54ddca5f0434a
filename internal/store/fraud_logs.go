package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"payguard/internal/models"
)

func (s *Store) ListFraudLogs(ctx context.Context, transactionID uuid.UUID) ([]models.FraudLog, error) {
	logs := make([]models.FraudLog, 0)
	err := s.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("detected_at ASC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list fraud logs for transaction %s: %w", transactionID, err)
	}
	return logs, nil
}
