// internal/models/otp.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type OTP struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_otps_lookup,priority:1"`
	Code      string    `json:"-" gorm:"size:6;not null;index:idx_otps_lookup,priority:2"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	Verified  bool      `json:"verified" gorm:"not null;index:idx_otps_lookup,priority:3"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}

func NewOTP(userID uuid.UUID, code string, now time.Time, ttl time.Duration) *OTP {
	now = now.UTC()
	return &OTP{
		ID:        uuid.New(),
		UserID:    userID,
		Code:      code,
		ExpiresAt: now.Add(ttl),
		Verified:  false,
		CreatedAt: now,
	}
}

// Expired reports whether the code can no longer be used at now.
func (o *OTP) Expired(now time.Time) bool {
	return o.ExpiresAt.Before(now)
}
