package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"payguard/internal/models"
)

func (s *Store) CreateOTP(ctx context.Context, otp *models.OTP) error {
	if err := s.db.WithContext(ctx).Create(otp).Error; err != nil {
		return fmt.Errorf("failed to insert otp for user %s: %w", otp.UserID, err)
	}
	return nil
}

// FindUnverifiedOTP returns the newest unverified code matching (userID, code).
func (s *Store) FindUnverifiedOTP(ctx context.Context, userID uuid.UUID, code string) (*models.OTP, error) {
	var otp models.OTP
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND code = ? AND verified = ?", userID, code, false).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &otp, nil
}

// ConsumeOTP flips verified to true only if it is still false. The boolean is
// false when another caller consumed the code first.
func (s *Store) ConsumeOTP(ctx context.Context, id uuid.UUID) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.OTP{}).
		Where("id = ? AND verified = ?", id, false).
		Update("verified", true)
	if res.Error != nil {
		return false, fmt.Errorf("failed to consume otp %s: %w", id, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) ListOTPs(ctx context.Context, userID uuid.UUID) ([]models.OTP, error) {
	otps := make([]models.OTP, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&otps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list otps for user %s: %w", userID, err)
	}
	return otps, nil
}
