package partner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer with valid inputs", func(t *testing.T) {
		customer, err := NewCustomer("Ali Traders", "+92-300-1234567")
		require.NoError(t, err)
		require.NotNil(t, customer)

		assert.Equal(t, "Ali Traders", customer.Name)
		assert.Equal(t, CustomerStatusActive, customer.Status)
		assert.True(t, customer.CreditLimit.IsZero())
		assert.True(t, customer.CurrentBalance.IsZero())
		assert.True(t, customer.TotalPurchases.IsZero())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCustomer("", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with malformed phone", func(t *testing.T) {
		_, err := NewCustomer("Ali Traders", "abc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Phone number")
	})
}

func TestCustomerBalance(t *testing.T) {
	t.Run("increase raises the outstanding balance", func(t *testing.T) {
		customer, _ := NewCustomer("Ali Traders", "")
		require.NoError(t, customer.IncreaseBalance(decimal.NewFromInt(5000)))
		require.NoError(t, customer.IncreaseBalance(decimal.NewFromInt(2500)))
		assert.True(t, customer.CurrentBalance.Equal(decimal.NewFromInt(7500)))
	})

	t.Run("decrease floors at zero", func(t *testing.T) {
		customer, _ := NewCustomer("Ali Traders", "")
		require.NoError(t, customer.IncreaseBalance(decimal.NewFromInt(1000)))
		require.NoError(t, customer.DecreaseBalance(decimal.NewFromInt(4000)))
		assert.True(t, customer.CurrentBalance.IsZero())
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		customer, _ := NewCustomer("Ali Traders", "")
		assert.Error(t, customer.IncreaseBalance(decimal.NewFromInt(-1)))
		assert.Error(t, customer.DecreaseBalance(decimal.NewFromInt(-1)))
	})

	t.Run("publishes balance changed events", func(t *testing.T) {
		customer, _ := NewCustomer("Ali Traders", "")
		customer.ClearDomainEvents()

		require.NoError(t, customer.IncreaseBalance(decimal.NewFromInt(100)))

		events := customer.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCustomerBalanceChanged, events[0].EventType())
	})
}

func TestCustomerCreditLimit(t *testing.T) {
	t.Run("zero limit means unlimited", func(t *testing.T) {
		customer, _ := NewCustomer("Ali Traders", "")
		assert.False(t, customer.WouldExceedCreditLimit(decimal.NewFromInt(1000000)))
	})

	t.Run("detects amounts past the limit", func(t *testing.T) {
		customer, _ := NewCustomer("Ali Traders", "")
		require.NoError(t, customer.SetCreditLimit(decimal.NewFromInt(10000)))
		require.NoError(t, customer.IncreaseBalance(decimal.NewFromInt(8000)))

		assert.False(t, customer.WouldExceedCreditLimit(decimal.NewFromInt(2000)))
		assert.True(t, customer.WouldExceedCreditLimit(decimal.NewFromInt(2001)))
	})

	t.Run("rejects negative limit", func(t *testing.T) {
		customer, _ := NewCustomer("Ali Traders", "")
		assert.Error(t, customer.SetCreditLimit(decimal.NewFromInt(-1)))
	})
}

func TestCustomerStatusTransitions(t *testing.T) {
	customer, _ := NewCustomer("Ali Traders", "")

	require.NoError(t, customer.Deactivate())
	assert.False(t, customer.IsActive())

	require.NoError(t, customer.Activate())
	assert.True(t, customer.IsActive())

	assert.Error(t, customer.Activate())
}
