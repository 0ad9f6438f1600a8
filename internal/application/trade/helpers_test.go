package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	inventoryapp "github.com/usmanhardware/backend/internal/application/inventory"
	"github.com/usmanhardware/backend/internal/domain/catalog"
	"github.com/usmanhardware/backend/internal/domain/partner"
	"github.com/usmanhardware/backend/internal/domain/shared"
	"github.com/usmanhardware/backend/internal/domain/shared/valueobject"
	"github.com/usmanhardware/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// testRepos bundles one mock per repository wired into a no-op scope
type testRepos struct {
	products          *MockProductRepository
	ledger            *MockLedgerRepository
	customers         *MockCustomerRepository
	suppliers         *MockSupplierRepository
	sales             *MockSaleRepository
	adjustments       *MockSaleAdjustmentRepository
	payments          *MockPaymentRepository
	purchaseOrders    *MockPurchaseOrderRepository
	quotations        *MockQuotationRepository
	outsourcingOrders *MockOutsourcingOrderRepository
	profitRecords     *MockProfitRecordRepository
	sequences         *MockSequenceRepository
	scope             *inventoryapp.NoOpTransactionScope
	stock             *inventoryapp.StockService
}

func newTestRepos() *testRepos {
	r := &testRepos{
		products:          new(MockProductRepository),
		ledger:            new(MockLedgerRepository),
		customers:         new(MockCustomerRepository),
		suppliers:         new(MockSupplierRepository),
		sales:             new(MockSaleRepository),
		adjustments:       new(MockSaleAdjustmentRepository),
		payments:          new(MockPaymentRepository),
		purchaseOrders:    new(MockPurchaseOrderRepository),
		quotations:        new(MockQuotationRepository),
		outsourcingOrders: new(MockOutsourcingOrderRepository),
		profitRecords:     new(MockProfitRecordRepository),
		sequences:         new(MockSequenceRepository),
	}
	r.scope = &inventoryapp.NoOpTransactionScope{
		ProductRepo:          r.products,
		LedgerRepo:           r.ledger,
		CustomerRepo:         r.customers,
		SupplierRepo:         r.suppliers,
		SaleRepo:             r.sales,
		AdjustmentRepo:       r.adjustments,
		PaymentRepo:          r.payments,
		PurchaseOrderRepo:    r.purchaseOrders,
		QuotationRepo:        r.quotations,
		OutsourcingOrderRepo: r.outsourcingOrders,
		ProfitRecordRepo:     r.profitRecords,
		SequenceRepo:         r.sequences,
	}
	r.stock = inventoryapp.NewStockService(r.scope, zap.NewNop())
	return r
}

func newStockedProduct(t *testing.T, sku string, stock int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProductWithPrices(
		sku, "Product "+sku, "pcs",
		valueobject.NewMoneyPKR(decimal.NewFromInt(400)),
		valueobject.NewMoneyPKR(decimal.NewFromInt(600)),
	)
	require.NoError(t, err)
	require.NoError(t, product.ApplyStockChange(decimal.NewFromInt(stock)))
	return product
}

func newTestCustomer(t *testing.T, creditLimit int64) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer("Ahmed Khan", "+92 300 1234567")
	require.NoError(t, err)
	require.NoError(t, customer.SetCreditLimit(decimal.NewFromInt(creditLimit)))
	return customer
}

func newTestSupplier(t *testing.T) *partner.Supplier {
	t.Helper()
	supplier, err := partner.NewSupplier("Karachi Steel Traders", "Imran", "+92 21 5551234")
	require.NoError(t, err)
	return supplier
}

// recordingInvalidator records which product IDs had their cache entries
// dropped, in call order.
type recordingInvalidator struct {
	invalidated []uuid.UUID
}

func (r *recordingInvalidator) InvalidateProduct(_ context.Context, productID uuid.UUID) error {
	r.invalidated = append(r.invalidated, productID)
	return nil
}

// recordingPublisher records every domain event handed to it.
type recordingPublisher struct {
	events []shared.DomainEvent
}

func (r *recordingPublisher) Publish(_ context.Context, event shared.DomainEvent) error {
	r.events = append(r.events, event)
	return nil
}

// newCompletedSale builds a completed sale with one stocked line of the
// given quantity at the given unit price.
func newCompletedSale(t *testing.T, product *catalog.Product, quantity, unitPrice int64, method trade.PaymentMethod) *trade.Sale {
	t.Helper()
	sale, err := trade.NewSale("INV-20250102-001", nil, method, "")
	require.NoError(t, err)
	_, err = sale.AddItem(product.ID, product.Name, decimal.NewFromInt(quantity), decimal.NewFromInt(unitPrice), product.CostPrice)
	require.NoError(t, err)
	require.NoError(t, sale.Finalize())
	return sale
}
