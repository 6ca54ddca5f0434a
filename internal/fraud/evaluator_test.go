package fraud_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"payguard/internal/fraud"
	"payguard/internal/models"
)

func txWithAmount(amount string) *models.Transaction {
	return models.NewTransaction(uuid.New(), decimal.RequireFromString(amount), models.PaymentMethodCard, time.Now())
}

func TestDefaultEvaluator_Threshold(t *testing.T) {
	t.Parallel()

	ev := fraud.NewDefaultEvaluator(decimal.NewFromInt(10000))

	for _, amount := range []string{"0.01", "500", "9999.99", "10000", "10000.00"} {
		res := ev.Evaluate(txWithAmount(amount))
		assert.True(t, res.Passed, "amount %s", amount)
		assert.Empty(t, res.Reason)
	}

	for _, amount := range []string{"10000.01", "15000", "1000000"} {
		res := ev.Evaluate(txWithAmount(amount))
		assert.False(t, res.Passed, "amount %s", amount)
		assert.Equal(t, "Amount exceeds limit", res.Reason)
	}
}

func TestEvaluator_ShortCircuitsOnFirstFailure(t *testing.T) {
	t.Parallel()

	var calls []string
	rule := func(name string, fail bool) fraud.Rule {
		return fraud.RuleFunc(func(*models.Transaction) (string, bool) {
			calls = append(calls, name)
			return name, fail
		})
	}

	ev := fraud.NewEvaluator(rule("a", false), rule("b", true), rule("c", true))
	res := ev.Evaluate(txWithAmount("1"))

	assert.False(t, res.Passed)
	assert.Equal(t, "b", res.Reason)
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestEvaluator_NoRulesPasses(t *testing.T) {
	t.Parallel()

	assert.True(t, fraud.NewEvaluator().Evaluate(txWithAmount("99999999")).Passed)
}
