package entity_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raceday/pro-upgrade/internal/domain/entity"
)

func TestPurchaseResultFailureMessage(t *testing.T) {
	t.Run("uses the error description when present", func(t *testing.T) {
		r := entity.PurchaseResult{Outcome: entity.PurchaseFailed, Err: errors.New("Network error")}
		assert.Equal(t, "Network error", r.FailureMessage())
	})

	t.Run("falls back to a generic message", func(t *testing.T) {
		r := entity.PurchaseResult{Outcome: entity.PurchaseFailed}
		assert.Equal(t, "Purchase failed", r.FailureMessage())
	})
}

func TestTransactionState(t *testing.T) {
	assert.True(t, entity.TransactionState{Phase: entity.TransactionPurchased}.Settled())
	assert.True(t, entity.TransactionState{Phase: entity.TransactionRestored}.Granted())
	assert.False(t, entity.TransactionState{Phase: entity.TransactionPending}.Settled())
	assert.False(t, entity.TransactionState{Phase: entity.TransactionDeferred}.Settled())
	assert.False(t, entity.TransactionState{Phase: entity.TransactionFailed}.Granted())
}
