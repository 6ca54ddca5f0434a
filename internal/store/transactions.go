package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"payguard/internal/models"
)

func (s *Store) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	if err := s.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", tx.ID, err)
	}
	return nil
}

// CreateFlaggedTransaction stores a fraud-flagged transaction together with its log entry.
func (s *Store) CreateFlaggedTransaction(ctx context.Context, tx *models.Transaction, entry *models.FraudLog) error {
	err := s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		if err := db.Create(tx).Error; err != nil {
			return err
		}
		return db.Create(entry).Error
	})
	if err != nil {
		return fmt.Errorf("failed to insert flagged transaction %s: %w", tx.ID, err)
	}
	return nil
}

func (s *Store) FindTransaction(ctx context.Context, id, userID uuid.UUID) (*models.Transaction, error) {
	var tx models.Transaction
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&tx).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &tx, nil
}

// ListTransactions returns every transaction owned by userID, newest first.
func (s *Store) ListTransactions(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	txs := make([]models.Transaction, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for user %s: %w", userID, err)
	}
	return txs, nil
}

// CompleteTransaction moves a Pending transaction to Completed. It reports
// false when the transaction was not Pending at the time of the update.
func (s *Store) CompleteTransaction(ctx context.Context, id, userID uuid.UUID, now time.Time) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, models.StatusPending).
		Updates(map[string]any{
			"status":     models.StatusCompleted,
			"updated_at": now.UTC(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to complete transaction %s: %w", id, res.Error)
	}
	return res.RowsAffected == 1, nil
}
