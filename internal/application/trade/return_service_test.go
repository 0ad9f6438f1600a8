package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/usmanhardware/backend/internal/domain/inventory"
	"github.com/usmanhardware/backend/internal/domain/shared"
	"github.com/usmanhardware/backend/internal/domain/trade"
	"go.uber.org/zap"
)

func newReturnService(r *testRepos) *ReturnService {
	return NewReturnService(r.scope, r.stock, zap.NewNop())
}

func TestReturnService_ReturnItems(t *testing.T) {
	ctx := context.Background()

	t.Run("partial return with restock reduces the line and credits stock", func(t *testing.T) {
		r := newTestRepos()
		service := newReturnService(r)

		product := newStockedProduct(t, "HMR-030", 5)
		sale := newCompletedSale(t, product, 5, 600, trade.PaymentMethodCash)

		r.sales.On("FindByID", ctx, sale.ID).Return(sale, nil)
		r.sales.On("Save", ctx, sale).Return(nil)
		r.products.On("FindByIDForUpdate", ctx, product.ID).Return(product, nil)
		r.products.On("Save", ctx, mock.Anything).Return(nil)
		r.adjustments.On("Save", ctx, mock.MatchedBy(func(a *trade.SaleAdjustment) bool {
			return a.Type == trade.AdjustmentTypeReturn && len(a.Items) == 1 && a.Items[0].Restocked
		})).Return(nil)
		r.ledger.On("Append", ctx, mock.MatchedBy(func(e *inventory.LedgerEntry) bool {
			return e.MovementType == inventory.MovementTypeReturn &&
				e.Quantity.Equal(decimal.NewFromInt(2)) &&
				e.BalanceAfter.Equal(decimal.NewFromInt(7))
		})).Return(nil)

		result, err := service.ReturnItems(ctx, sale.ID, ReturnItemsRequest{
			Items: []ReturnItemRequest{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(2), Reason: "wrong size"},
			},
			RefundAmount: decimal.NewFromInt(1200),
			RestockItems: true,
		})

		require.NoError(t, err)
		assert.True(t, result.Items[0].Quantity.Equal(decimal.NewFromInt(3)))
		assert.True(t, result.Items[0].QuantityReturned.Equal(decimal.NewFromInt(2)))
		assert.True(t, result.Items[0].QuantityRestocked.Equal(decimal.NewFromInt(2)))
		assert.True(t, result.Total.Equal(decimal.NewFromInt(1800)))
		assert.True(t, product.Stock.Equal(decimal.NewFromInt(7)))
		r.ledger.AssertNumberOfCalls(t, "Append", 1)
		r.adjustments.AssertExpectations(t)
	})

	t.Run("return without restock leaves stock untouched", func(t *testing.T) {
		r := newTestRepos()
		service := newReturnService(r)

		product := newStockedProduct(t, "HMR-031", 5)
		sale := newCompletedSale(t, product, 5, 600, trade.PaymentMethodCash)

		r.sales.On("FindByID", ctx, sale.ID).Return(sale, nil)
		r.sales.On("Save", ctx, sale).Return(nil)
		r.adjustments.On("Save", ctx, mock.Anything).Return(nil)

		result, err := service.ReturnItems(ctx, sale.ID, ReturnItemsRequest{
			Items: []ReturnItemRequest{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(2), Reason: "damaged in transit"},
			},
			RefundAmount: decimal.NewFromInt(1200),
			RestockItems: false,
		})

		require.NoError(t, err)
		assert.True(t, result.Items[0].QuantityReturned.Equal(decimal.NewFromInt(2)))
		assert.True(t, result.Items[0].QuantityRestocked.IsZero())
		assert.True(t, product.Stock.Equal(decimal.NewFromInt(5)))
		r.ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("returning more than remaining is rejected", func(t *testing.T) {
		r := newTestRepos()
		service := newReturnService(r)

		product := newStockedProduct(t, "HMR-032", 5)
		sale := newCompletedSale(t, product, 5, 600, trade.PaymentMethodCash)

		r.sales.On("FindByID", ctx, sale.ID).Return(sale, nil)

		_, err := service.ReturnItems(ctx, sale.ID, ReturnItemsRequest{
			Items: []ReturnItemRequest{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(6)},
			},
			RefundAmount: decimal.NewFromInt(3600),
			RestockItems: true,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidReturn)
		r.adjustments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		r.sales.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("a line consumed to zero is deleted", func(t *testing.T) {
		r := newTestRepos()
		service := newReturnService(r)

		product := newStockedProduct(t, "HMR-033", 0)
		sale := newCompletedSale(t, product, 5, 600, trade.PaymentMethodCash)
		itemID := sale.Items[0].ID

		r.sales.On("FindByID", ctx, sale.ID).Return(sale, nil)
		r.sales.On("DeleteItems", ctx, []uuid.UUID{itemID}).Return(nil)
		r.sales.On("Save", ctx, sale).Return(nil)
		r.adjustments.On("Save", ctx, mock.Anything).Return(nil)
		r.products.On("FindByIDForUpdate", ctx, product.ID).Return(product, nil)
		r.products.On("Save", ctx, mock.Anything).Return(nil)
		r.ledger.On("Append", ctx, mock.Anything).Return(nil)

		result, err := service.ReturnItems(ctx, sale.ID, ReturnItemsRequest{
			Items: []ReturnItemRequest{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(5)},
			},
			RefundAmount: decimal.NewFromInt(3000),
			RestockItems: true,
		})

		require.NoError(t, err)
		assert.Empty(t, result.Items)
		r.sales.AssertCalled(t, "DeleteItems", ctx, []uuid.UUID{itemID})
	})

	t.Run("only completed sales accept returns", func(t *testing.T) {
		r := newTestRepos()
		service := newReturnService(r)

		product := newStockedProduct(t, "HMR-034", 5)
		sale := newCompletedSale(t, product, 5, 600, trade.PaymentMethodCash)
		require.NoError(t, sale.Revert("customer no-show"))

		r.sales.On("FindByID", ctx, sale.ID).Return(sale, nil)

		_, err := service.ReturnItems(ctx, sale.ID, ReturnItemsRequest{
			Items: []ReturnItemRequest{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(1)},
			},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestReturnService_RevertOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("full reversal restores stock and cancels the sale", func(t *testing.T) {
		r := newTestRepos()
		service := newReturnService(r)

		product := newStockedProduct(t, "HMR-040", 5)
		sale := newCompletedSale(t, product, 5, 600, trade.PaymentMethodCash)

		r.sales.On("FindByID", ctx, sale.ID).Return(sale, nil)
		r.sales.On("Save", ctx, sale).Return(nil)
		r.products.On("FindByIDForUpdate", ctx, product.ID).Return(product, nil)
		r.products.On("Save", ctx, mock.Anything).Return(nil)
		r.adjustments.On("Save", ctx, mock.MatchedBy(func(a *trade.SaleAdjustment) bool {
			return a.Type == trade.AdjustmentTypeFullReversal
		})).Return(nil)
		r.ledger.On("Append", ctx, mock.MatchedBy(func(e *inventory.LedgerEntry) bool {
			return e.Quantity.Equal(decimal.NewFromInt(5)) &&
				e.BalanceAfter.Equal(decimal.NewFromInt(10))
		})).Return(nil)

		result, err := service.RevertOrder(ctx, sale.ID, RevertOrderRequest{
			Reason:           "order placed in error",
			RestoreInventory: true,
		})

		require.NoError(t, err)
		assert.Equal(t, "cancelled", result.Status)
		assert.Equal(t, "order placed in error", result.CancelReason)
		assert.True(t, product.Stock.Equal(decimal.NewFromInt(10)))
		r.adjustments.AssertExpectations(t)
	})

	t.Run("reversal after a partial return restocks only the remainder", func(t *testing.T) {
		r := newTestRepos()
		service := newReturnService(r)

		product := newStockedProduct(t, "HMR-041", 7) // 2 already restocked by a return
		sale := newCompletedSale(t, product, 5, 600, trade.PaymentMethodCash)
		require.NoError(t, sale.Items[0].Return(decimal.NewFromInt(2), true))

		r.sales.On("FindByID", ctx, sale.ID).Return(sale, nil)
		r.sales.On("Save", ctx, sale).Return(nil)
		r.products.On("FindByIDForUpdate", ctx, product.ID).Return(product, nil)
		r.products.On("Save", ctx, mock.Anything).Return(nil)
		r.adjustments.On("Save", ctx, mock.Anything).Return(nil)
		r.ledger.On("Append", ctx, mock.MatchedBy(func(e *inventory.LedgerEntry) bool {
			return e.Quantity.Equal(decimal.NewFromInt(3)) &&
				e.BalanceAfter.Equal(decimal.NewFromInt(10))
		})).Return(nil)

		_, err := service.RevertOrder(ctx, sale.ID, RevertOrderRequest{
			Reason:           "customer cancelled",
			RestoreInventory: true,
		})

		require.NoError(t, err)
		assert.True(t, product.Stock.Equal(decimal.NewFromInt(10)))
		r.ledger.AssertNumberOfCalls(t, "Append", 1)
	})

	t.Run("credit sale reversal releases the receivable and refunds", func(t *testing.T) {
		r := newTestRepos()
		service := newReturnService(r)

		product := newStockedProduct(t, "HMR-042", 5)
		customer := newTestCustomer(t, 0)
		customerID := customer.ID
		sale := newCompletedSale(t, product, 5, 600, trade.PaymentMethodCredit)
		require.NoError(t, sale.ReassignCustomer(&customerID))
		require.NoError(t, customer.IncreaseBalance(sale.Total))

		r.sales.On("FindByID", ctx, sale.ID).Return(sale, nil)
		r.sales.On("Save", ctx, sale).Return(nil)
		r.adjustments.On("Save", ctx, mock.Anything).Return(nil)
		r.customers.On("FindByIDForUpdate", ctx, customer.ID).Return(customer, nil)
		r.customers.On("Save", ctx, customer).Return(nil)
		r.payments.On("Save", ctx, mock.MatchedBy(func(p *trade.Payment) bool {
			return p.Kind == trade.PaymentKindRefund && p.Amount.Equal(decimal.NewFromInt(3000))
		})).Return(nil)

		_, err := service.RevertOrder(ctx, sale.ID, RevertOrderRequest{
			Reason:        "dispute",
			ProcessRefund: true,
		})

		require.NoError(t, err)
		assert.True(t, customer.CurrentBalance.IsZero())
		r.payments.AssertExpectations(t)
	})

	t.Run("a cancelled sale cannot be reverted again", func(t *testing.T) {
		r := newTestRepos()
		service := newReturnService(r)

		product := newStockedProduct(t, "HMR-043", 5)
		sale := newCompletedSale(t, product, 5, 600, trade.PaymentMethodCash)
		require.NoError(t, sale.Revert("first reversal"))

		r.sales.On("FindByID", ctx, sale.ID).Return(sale, nil)

		_, err := service.RevertOrder(ctx, sale.ID, RevertOrderRequest{Reason: "second reversal"})

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		r.adjustments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
