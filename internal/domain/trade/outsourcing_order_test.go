package trade

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOutsourcingOrder(t *testing.T) *OutsourcingOrder {
	t.Helper()
	o, err := NewOutsourcingOrder("OUT-20250102-001", uuid.New(), uuid.New(), decimal.NewFromInt(3), decimal.NewFromInt(12000))
	require.NoError(t, err)
	return o
}

func TestNewOutsourcingOrder(t *testing.T) {
	t.Run("creates pending order with total cost", func(t *testing.T) {
		o := newTestOutsourcingOrder(t)
		assert.Equal(t, OutsourcingStatusPending, o.Status)
		assert.True(t, o.TotalCost.Equal(decimal.NewFromInt(36000)))
		assert.Nil(t, o.DeliveredAt)
	})

	t.Run("fails with non-positive quantity", func(t *testing.T) {
		_, err := NewOutsourcingOrder("OUT-20250102-001", uuid.New(), uuid.New(), decimal.Zero, decimal.NewFromInt(100))
		require.Error(t, err)
	})
}

func TestOutsourcingDelivery(t *testing.T) {
	t.Run("delivers exactly once", func(t *testing.T) {
		o := newTestOutsourcingOrder(t)
		require.NoError(t, o.UpdateStatus(OutsourcingStatusOrdered))
		require.NoError(t, o.MarkDelivered())

		assert.True(t, o.IsDelivered())
		assert.NotNil(t, o.DeliveredAt)

		err := o.MarkDelivered()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already been delivered")
	})

	t.Run("delivery allowed straight from pending", func(t *testing.T) {
		o := newTestOutsourcingOrder(t)
		require.NoError(t, o.MarkDelivered())
		assert.True(t, o.IsDelivered())
	})

	t.Run("cancelled orders cannot deliver", func(t *testing.T) {
		o := newTestOutsourcingOrder(t)
		require.NoError(t, o.UpdateStatus(OutsourcingStatusCancelled))
		require.Error(t, o.MarkDelivered())
	})

	t.Run("delivered cannot be set through UpdateStatus", func(t *testing.T) {
		o := newTestOutsourcingOrder(t)
		require.Error(t, o.UpdateStatus(OutsourcingStatusDelivered))
	})

	t.Run("publishes OutsourcingDelivered event", func(t *testing.T) {
		o := newTestOutsourcingOrder(t)
		require.NoError(t, o.MarkDelivered())

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOutsourcingDelivered, events[0].EventType())
	})
}

func TestOutsourcingNoteTrail(t *testing.T) {
	o := newTestOutsourcingOrder(t)

	require.NoError(t, o.AppendNote("supplier confirmed availability"))
	require.NoError(t, o.AppendNote("pickup arranged for Friday"))

	lines := strings.Split(o.Notes, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "supplier confirmed availability")
	assert.Contains(t, lines[1], "pickup arranged for Friday")

	t.Run("rejects empty notes", func(t *testing.T) {
		require.Error(t, o.AppendNote("   "))
	})
}

func TestOutsourcingLinkSale(t *testing.T) {
	o := newTestOutsourcingOrder(t)
	saleID, itemID := uuid.New(), uuid.New()

	o.LinkSale(saleID, itemID)

	require.NotNil(t, o.SaleID)
	assert.Equal(t, saleID, *o.SaleID)
	assert.Equal(t, itemID, *o.SaleItemID)
}
