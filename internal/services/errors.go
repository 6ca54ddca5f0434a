package services

import "errors"

var (
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInvalidPaymentMethod = errors.New("payment method must be UPI or Card")
	ErrInvalidOTP           = errors.New("invalid otp")
	ErrOTPExpired           = errors.New("otp expired")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrTransactionFinalized = errors.New("transaction already finalized")
)

// FraudFlaggedError is returned by InitiatePayment when the fraud evaluator
// rejects the transaction. The transaction has still been stored.
type FraudFlaggedError struct {
	Reason string
}

func (e *FraudFlaggedError) Error() string {
	return "transaction flagged as fraud: " + e.Reason
}
