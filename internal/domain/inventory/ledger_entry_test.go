package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usmanhardware/backend/internal/domain/shared"
)

func TestNewLedgerEntry(t *testing.T) {
	productID := uuid.New()

	t.Run("computes balance after from signed quantity", func(t *testing.T) {
		entry, err := NewLedgerEntry(productID, MovementTypeSale, decimal.NewFromInt(-3), decimal.NewFromInt(10), "INV-20250102-001", "")
		require.NoError(t, err)

		assert.True(t, entry.BalanceBefore.Equal(decimal.NewFromInt(10)))
		assert.True(t, entry.BalanceAfter.Equal(decimal.NewFromInt(7)))
		assert.True(t, entry.IsDecrease())
		assert.Equal(t, "INV-20250102-001", entry.Reference)
	})

	t.Run("positive quantity increases balance", func(t *testing.T) {
		entry, err := NewLedgerEntry(productID, MovementTypePurchase, decimal.NewFromInt(20), decimal.NewFromInt(5), "PO-202501-004", "")
		require.NoError(t, err)

		assert.True(t, entry.BalanceAfter.Equal(decimal.NewFromInt(25)))
		assert.True(t, entry.IsIncrease())
	})

	t.Run("rejects a movement that would drive balance negative", func(t *testing.T) {
		_, err := NewLedgerEntry(productID, MovementTypeSale, decimal.NewFromInt(-11), decimal.NewFromInt(10), "INV-20250102-002", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewLedgerEntry(productID, MovementTypeAdjustment, decimal.Zero, decimal.NewFromInt(10), "", "stock take")
		require.Error(t, err)
	})

	t.Run("rejects unknown movement type", func(t *testing.T) {
		_, err := NewLedgerEntry(productID, MovementType("transfer"), decimal.NewFromInt(1), decimal.NewFromInt(10), "", "")
		require.Error(t, err)
	})

	t.Run("rejects nil product", func(t *testing.T) {
		_, err := NewLedgerEntry(uuid.Nil, MovementTypeSale, decimal.NewFromInt(-1), decimal.NewFromInt(10), "", "")
		require.Error(t, err)
	})

	t.Run("rejects negative starting balance", func(t *testing.T) {
		_, err := NewLedgerEntry(productID, MovementTypeSale, decimal.NewFromInt(-1), decimal.NewFromInt(-5), "", "")
		require.Error(t, err)
	})
}

func TestLedgerEntryWithCondition(t *testing.T) {
	productID := uuid.New()

	t.Run("records a valid condition", func(t *testing.T) {
		entry, err := NewLedgerEntry(productID, MovementTypeReturn, decimal.NewFromInt(2), decimal.NewFromInt(8), "ADJ-1", "customer return")
		require.NoError(t, err)

		entry, err = entry.WithCondition(ItemConditionDamaged)
		require.NoError(t, err)
		require.NotNil(t, entry.Condition)
		assert.Equal(t, ItemConditionDamaged, *entry.Condition)
	})

	t.Run("rejects an invalid condition", func(t *testing.T) {
		entry, err := NewLedgerEntry(productID, MovementTypeReturn, decimal.NewFromInt(2), decimal.NewFromInt(8), "ADJ-1", "")
		require.NoError(t, err)

		_, err = entry.WithCondition(ItemCondition("broken"))
		require.Error(t, err)
	})
}

func TestMovementTypeIsValid(t *testing.T) {
	valid := []MovementType{
		MovementTypeSale, MovementTypePurchase, MovementTypeAdjustment,
		MovementTypeRestock, MovementTypeDamage, MovementTypeReturn,
		MovementTypeOutsourcingDelivery,
	}
	for _, m := range valid {
		assert.True(t, m.IsValid(), string(m))
	}
	assert.False(t, MovementType("transfer").IsValid())
	assert.False(t, MovementType("").IsValid())
}
