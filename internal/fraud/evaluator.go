// Package fraud decides whether a transaction looks suspicious before any
// confirmation code is issued for it.
package fraud

import (
	"github.com/shopspring/decimal"

	"payguard/internal/models"
)

const ReasonAmountExceedsLimit = "Amount exceeds limit"

type Result struct {
	Passed bool
	Reason string
}

// Rule inspects a transaction and returns a non-empty reason when it fails.
type Rule interface {
	Check(tx *models.Transaction) (reason string, failed bool)
}

type RuleFunc func(tx *models.Transaction) (string, bool)

func (f RuleFunc) Check(tx *models.Transaction) (string, bool) { return f(tx) }

// AmountLimit fails any transaction whose amount is strictly greater than Limit.
type AmountLimit struct {
	Limit decimal.Decimal
}

func (r AmountLimit) Check(tx *models.Transaction) (string, bool) {
	if tx.Amount.GreaterThan(r.Limit) {
		return ReasonAmountExceedsLimit, true
	}
	return "", false
}

type Evaluator struct {
	rules []Rule
}

func NewEvaluator(rules ...Rule) *Evaluator {
	return &Evaluator{rules: rules}
}

// NewDefaultEvaluator returns the production rule set.
func NewDefaultEvaluator(amountLimit decimal.Decimal) *Evaluator {
	return NewEvaluator(AmountLimit{Limit: amountLimit})
}

// Evaluate runs the rules in order and stops at the first failure.
func (e *Evaluator) Evaluate(tx *models.Transaction) Result {
	for _, rule := range e.rules {
		if reason, failed := rule.Check(tx); failed {
			return Result{Passed: false, Reason: reason}
		}
	}
	return Result{Passed: true}
}
