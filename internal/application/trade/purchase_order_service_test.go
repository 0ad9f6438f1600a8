package trade

import (
	"context"
	"strings"
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

func newPurchaseOrderService(r *testRepos) *PurchaseOrderService {
	return NewPurchaseOrderService(r.scope, r.stock, zap.NewNop())
}

// newDraftPO builds a draft purchase order with one line per product,
// each with the given quantity and unit price.
func newDraftPO(t *testing.T, supplierID uuid.UUID, lines map[uuid.UUID][2]int64) *trade.PurchaseOrder {
	t.Helper()
	po, err := trade.NewPurchaseOrder("PO-202501-001", supplierID, nil, "")
	require.NoError(t, err)
	for productID, qtyPrice := range lines {
		require.NoError(t, po.AddItem(productID, "product", decimal.NewFromInt(qtyPrice[0]), decimal.NewFromInt(qtyPrice[1])))
	}
	return po
}

func TestPurchaseOrderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a draft and books the total onto the supplier", func(t *testing.T) {
		r := newTestRepos()
		service := newPurchaseOrderService(r)

		supplier := newTestSupplier(t)
		product := newStockedProduct(t, "PIP-001", 0)

		r.suppliers.On("FindByIDForUpdate", ctx, supplier.ID).Return(supplier, nil)
		r.suppliers.On("Save", ctx, supplier).Return(nil)
		r.sequences.On("Next", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "PO-")
		})).Return(int64(7), nil)
		r.products.On("FindByID", ctx, product.ID).Return(product, nil)
		r.purchaseOrders.On("Save", ctx, mock.MatchedBy(func(po *trade.PurchaseOrder) bool {
			return po.Status == trade.PurchaseOrderStatusDraft && strings.HasPrefix(po.OrderNumber, "PO-")
		})).Return(nil)

		result, err := service.Create(ctx, CreatePurchaseOrderRequest{
			SupplierID: supplier.ID,
			Items: []PurchaseOrderItemRequest{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(400)},
			},
		})

		require.NoError(t, err)
		assert.True(t, result.Total.Equal(decimal.NewFromInt(4000)))
		assert.True(t, supplier.TotalPurchases.Equal(decimal.NewFromInt(4000)))
	})

	t.Run("inactive supplier is rejected", func(t *testing.T) {
		r := newTestRepos()
		service := newPurchaseOrderService(r)

		supplier := newTestSupplier(t)
		require.NoError(t, supplier.Deactivate())
		r.suppliers.On("FindByIDForUpdate", ctx, supplier.ID).Return(supplier, nil)

		_, err := service.Create(ctx, CreatePurchaseOrderRequest{
			SupplierID: supplier.ID,
			Items: []PurchaseOrderItemRequest{
				{ProductID: uuid.New(), Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
			},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		r.purchaseOrders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPurchaseOrderService_Receive(t *testing.T) {
	ctx := context.Background()

	t.Run("one full and one partial line resolve to partially_received", func(t *testing.T) {
		r := newTestRepos()
		service := newPurchaseOrderService(r)

		supplier := newTestSupplier(t)
		product1 := newStockedProduct(t, "PIP-010", 0)
		product2 := newStockedProduct(t, "PIP-011", 0)
		po := newDraftPO(t, supplier.ID, map[uuid.UUID][2]int64{
			product1.ID: {10, 400},
			product2.ID: {5, 400},
		})

		r.purchaseOrders.On("FindByID", ctx, po.ID).Return(po, nil)
		r.purchaseOrders.On("Save", ctx, po).Return(nil)
		r.products.On("FindByIDForUpdate", ctx, product1.ID).Return(product1, nil)
		r.products.On("FindByIDForUpdate", ctx, product2.ID).Return(product2, nil)
		r.products.On("Save", ctx, mock.Anything).Return(nil)
		r.ledger.On("Append", ctx, mock.MatchedBy(func(e *inventory.LedgerEntry) bool {
			return e.MovementType == inventory.MovementTypePurchase && e.Quantity.IsPositive()
		})).Return(nil)

		result, err := service.Receive(ctx, po.ID, ReceivePurchaseOrderRequest{
			Items: []ReceiveItemRequest{
				{ProductID: product1.ID, QuantityReceived: decimal.NewFromInt(10), Condition: "good"},
				{ProductID: product2.ID, QuantityReceived: decimal.NewFromInt(3), Condition: "good"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "partially_received", result.Status)
		assert.True(t, product1.Stock.Equal(decimal.NewFromInt(10)))
		assert.True(t, product2.Stock.Equal(decimal.NewFromInt(3)))
		r.ledger.AssertNumberOfCalls(t, "Append", 2)
	})

	t.Run("receiving every line fully resolves to received", func(t *testing.T) {
		r := newTestRepos()
		service := newPurchaseOrderService(r)

		supplier := newTestSupplier(t)
		product := newStockedProduct(t, "PIP-012", 0)
		po := newDraftPO(t, supplier.ID, map[uuid.UUID][2]int64{product.ID: {10, 400}})

		r.purchaseOrders.On("FindByID", ctx, po.ID).Return(po, nil)
		r.purchaseOrders.On("Save", ctx, po).Return(nil)
		r.products.On("FindByIDForUpdate", ctx, product.ID).Return(product, nil)
		r.products.On("Save", ctx, mock.Anything).Return(nil)
		r.ledger.On("Append", ctx, mock.Anything).Return(nil)

		result, err := service.Receive(ctx, po.ID, ReceivePurchaseOrderRequest{
			Items: []ReceiveItemRequest{
				{ProductID: product.ID, QuantityReceived: decimal.NewFromInt(10)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "received", result.Status)
	})

	t.Run("damaged lines book receipt but leave stock alone", func(t *testing.T) {
		r := newTestRepos()
		service := newPurchaseOrderService(r)

		supplier := newTestSupplier(t)
		product := newStockedProduct(t, "PIP-013", 0)
		po := newDraftPO(t, supplier.ID, map[uuid.UUID][2]int64{product.ID: {10, 400}})

		r.purchaseOrders.On("FindByID", ctx, po.ID).Return(po, nil)
		r.purchaseOrders.On("Save", ctx, po).Return(nil)

		result, err := service.Receive(ctx, po.ID, ReceivePurchaseOrderRequest{
			Items: []ReceiveItemRequest{
				{ProductID: product.ID, QuantityReceived: decimal.NewFromInt(10), Condition: "damaged"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "received", result.Status)
		assert.True(t, result.Items[0].QuantityReceived.Equal(decimal.NewFromInt(10)))
		assert.True(t, product.Stock.IsZero())
		r.ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("receiving past the ordered quantity is rejected", func(t *testing.T) {
		r := newTestRepos()
		service := newPurchaseOrderService(r)

		supplier := newTestSupplier(t)
		product := newStockedProduct(t, "PIP-014", 0)
		po := newDraftPO(t, supplier.ID, map[uuid.UUID][2]int64{product.ID: {10, 400}})

		r.purchaseOrders.On("FindByID", ctx, po.ID).Return(po, nil)

		_, err := service.Receive(ctx, po.ID, ReceivePurchaseOrderRequest{
			Items: []ReceiveItemRequest{
				{ProductID: product.ID, QuantityReceived: decimal.NewFromInt(11)},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
		r.purchaseOrders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("a call with no positive quantities fails", func(t *testing.T) {
		r := newTestRepos()
		service := newPurchaseOrderService(r)

		supplier := newTestSupplier(t)
		product := newStockedProduct(t, "PIP-015", 0)
		po := newDraftPO(t, supplier.ID, map[uuid.UUID][2]int64{product.ID: {10, 400}})

		r.purchaseOrders.On("FindByID", ctx, po.ID).Return(po, nil)

		_, err := service.Receive(ctx, po.ID, ReceivePurchaseOrderRequest{
			Items: []ReceiveItemRequest{
				{ProductID: product.ID, QuantityReceived: decimal.Zero},
			},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrNoItemsReceived)
	})

	t.Run("a fully received order rejects further receipts", func(t *testing.T) {
		r := newTestRepos()
		service := newPurchaseOrderService(r)

		supplier := newTestSupplier(t)
		product := newStockedProduct(t, "PIP-016", 0)
		po := newDraftPO(t, supplier.ID, map[uuid.UUID][2]int64{product.ID: {10, 400}})
		require.NoError(t, po.ReceiveItem(product.ID, decimal.NewFromInt(10), inventory.ItemConditionGood))
		po.ResolveReceiptStatus()

		r.purchaseOrders.On("FindByID", ctx, po.ID).Return(po, nil)

		_, err := service.Receive(ctx, po.ID, ReceivePurchaseOrderRequest{
			Items: []ReceiveItemRequest{
				{ProductID: product.ID, QuantityReceived: decimal.NewFromInt(1)},
			},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestPurchaseOrderService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("same supplier total change applies the diff", func(t *testing.T) {
		r := newTestRepos()
		service := newPurchaseOrderService(r)

		supplier := newTestSupplier(t)
		require.NoError(t, supplier.AddPurchases(decimal.NewFromInt(4000)))
		product := newStockedProduct(t, "PIP-020", 0)
		po := newDraftPO(t, supplier.ID, map[uuid.UUID][2]int64{product.ID: {10, 400}})

		r.purchaseOrders.On("FindByID", ctx, po.ID).Return(po, nil)
		r.purchaseOrders.On("ReplaceItems", ctx, po.ID, mock.Anything).Return(nil)
		r.purchaseOrders.On("Save", ctx, po).Return(nil)
		r.products.On("FindByID", ctx, product.ID).Return(product, nil)
		r.suppliers.On("FindByIDForUpdate", ctx, supplier.ID).Return(supplier, nil)
		r.suppliers.On("Save", ctx, supplier).Return(nil)

		result, err := service.Update(ctx, po.ID, UpdatePurchaseOrderRequest{
			Items: []PurchaseOrderItemRequest{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(15), UnitPrice: decimal.NewFromInt(400)},
			},
		})

		require.NoError(t, err)
		assert.True(t, result.Total.Equal(decimal.NewFromInt(6000)))
		assert.True(t, supplier.TotalPurchases.Equal(decimal.NewFromInt(6000)))
	})

	t.Run("supplier change moves the total between suppliers", func(t *testing.T) {
		r := newTestRepos()
		service := newPurchaseOrderService(r)

		oldSupplier := newTestSupplier(t)
		require.NoError(t, oldSupplier.AddPurchases(decimal.NewFromInt(4000)))
		newSupplier := newTestSupplier(t)
		product := newStockedProduct(t, "PIP-021", 0)
		po := newDraftPO(t, oldSupplier.ID, map[uuid.UUID][2]int64{product.ID: {10, 400}})

		r.purchaseOrders.On("FindByID", ctx, po.ID).Return(po, nil)
		r.purchaseOrders.On("Save", ctx, po).Return(nil)
		r.suppliers.On("FindByID", ctx, newSupplier.ID).Return(newSupplier, nil)
		r.suppliers.On("FindByIDForUpdate", ctx, oldSupplier.ID).Return(oldSupplier, nil)
		r.suppliers.On("FindByIDForUpdate", ctx, newSupplier.ID).Return(newSupplier, nil)
		r.suppliers.On("Save", ctx, mock.Anything).Return(nil)

		newSupplierID := newSupplier.ID
		_, err := service.Update(ctx, po.ID, UpdatePurchaseOrderRequest{SupplierID: &newSupplierID})

		require.NoError(t, err)
		assert.True(t, oldSupplier.TotalPurchases.IsZero())
		assert.True(t, newSupplier.TotalPurchases.Equal(decimal.NewFromInt(4000)))
	})

	t.Run("cancelling subtracts the total from the supplier", func(t *testing.T) {
		r := newTestRepos()
		service := newPurchaseOrderService(r)

		supplier := newTestSupplier(t)
		require.NoError(t, supplier.AddPurchases(decimal.NewFromInt(4000)))
		product := newStockedProduct(t, "PIP-022", 0)
		po := newDraftPO(t, supplier.ID, map[uuid.UUID][2]int64{product.ID: {10, 400}})

		r.purchaseOrders.On("FindByID", ctx, po.ID).Return(po, nil)
		r.purchaseOrders.On("Save", ctx, po).Return(nil)
		r.suppliers.On("FindByIDForUpdate", ctx, supplier.ID).Return(supplier, nil)
		r.suppliers.On("Save", ctx, supplier).Return(nil)

		status := "cancelled"
		result, err := service.Update(ctx, po.ID, UpdatePurchaseOrderRequest{Status: &status})

		require.NoError(t, err)
		assert.Equal(t, "cancelled", result.Status)
		assert.True(t, supplier.TotalPurchases.IsZero())
	})

	t.Run("reactivating a cancelled order re-adds the total", func(t *testing.T) {
		r := newTestRepos()
		service := newPurchaseOrderService(r)

		supplier := newTestSupplier(t)
		product := newStockedProduct(t, "PIP-023", 0)
		po := newDraftPO(t, supplier.ID, map[uuid.UUID][2]int64{product.ID: {10, 400}})
		require.NoError(t, po.Cancel())

		r.purchaseOrders.On("FindByID", ctx, po.ID).Return(po, nil)
		r.purchaseOrders.On("Save", ctx, po).Return(nil)
		r.suppliers.On("FindByIDForUpdate", ctx, supplier.ID).Return(supplier, nil)
		r.suppliers.On("Save", ctx, supplier).Return(nil)

		status := "draft"
		result, err := service.Update(ctx, po.ID, UpdatePurchaseOrderRequest{Status: &status})

		require.NoError(t, err)
		assert.Equal(t, "draft", result.Status)
		assert.True(t, supplier.TotalPurchases.Equal(decimal.NewFromInt(4000)))
	})

	t.Run("content patches on a received order are rejected", func(t *testing.T) {
		r := newTestRepos()
		service := newPurchaseOrderService(r)

		supplier := newTestSupplier(t)
		product := newStockedProduct(t, "PIP-024", 0)
		po := newDraftPO(t, supplier.ID, map[uuid.UUID][2]int64{product.ID: {10, 400}})
		require.NoError(t, po.ReceiveItem(product.ID, decimal.NewFromInt(10), inventory.ItemConditionGood))
		po.ResolveReceiptStatus()

		r.purchaseOrders.On("FindByID", ctx, po.ID).Return(po, nil)

		notes := "revised"
		_, err := service.Update(ctx, po.ID, UpdatePurchaseOrderRequest{Notes: &notes})

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestPurchaseOrderService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleting a draft reverses the supplier total", func(t *testing.T) {
		r := newTestRepos()
		service := newPurchaseOrderService(r)

		supplier := newTestSupplier(t)
		require.NoError(t, supplier.AddPurchases(decimal.NewFromInt(4000)))
		product := newStockedProduct(t, "PIP-030", 0)
		po := newDraftPO(t, supplier.ID, map[uuid.UUID][2]int64{product.ID: {10, 400}})

		r.purchaseOrders.On("FindByID", ctx, po.ID).Return(po, nil)
		r.purchaseOrders.On("Delete", ctx, po.ID).Return(nil)
		r.suppliers.On("FindByIDForUpdate", ctx, supplier.ID).Return(supplier, nil)
		r.suppliers.On("Save", ctx, supplier).Return(nil)

		err := service.Delete(ctx, po.ID)

		require.NoError(t, err)
		assert.True(t, supplier.TotalPurchases.IsZero())
		r.purchaseOrders.AssertCalled(t, "Delete", ctx, po.ID)
	})

	t.Run("only drafts can be deleted", func(t *testing.T) {
		r := newTestRepos()
		service := newPurchaseOrderService(r)

		supplier := newTestSupplier(t)
		product := newStockedProduct(t, "PIP-031", 0)
		po := newDraftPO(t, supplier.ID, map[uuid.UUID][2]int64{product.ID: {10, 400}})
		require.NoError(t, po.UpdateStatus(trade.PurchaseOrderStatusSent))

		r.purchaseOrders.On("FindByID", ctx, po.ID).Return(po, nil)

		err := service.Delete(ctx, po.ID)

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		r.purchaseOrders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
