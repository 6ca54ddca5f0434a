package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeGenerator produces one-time codes.
type CodeGenerator func() (string, error)

var otpRange = big.NewInt(900000)

// GenerateOTP returns a uniformly random six digit code in [100000, 999999].
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpRange)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
