package inventory

import (
	"context"

	"github.com/usmanhardware/backend/internal/domain/catalog"
	"github.com/usmanhardware/backend/internal/domain/inventory"
	"github.com/usmanhardware/backend/internal/domain/partner"
	"github.com/usmanhardware/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories the
// order engines write. When a function is executed within a transaction
// scope, all repository operations are part of the same database
// transaction and commit or roll back atomically. Every engine operation
// runs in exactly one scope; nothing is split across transactions.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories within a
// transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// Products returns the product repository scoped to the current transaction
	Products() catalog.ProductRepository
	// Ledger returns the stock ledger repository scoped to the current transaction
	Ledger() inventory.LedgerRepository
	// Customers returns the customer repository scoped to the current transaction
	Customers() partner.CustomerRepository
	// Suppliers returns the supplier repository scoped to the current transaction
	Suppliers() partner.SupplierRepository
	// Sales returns the sale repository scoped to the current transaction
	Sales() trade.SaleRepository
	// Adjustments returns the sale adjustment repository scoped to the current transaction
	Adjustments() trade.SaleAdjustmentRepository
	// Payments returns the payment repository scoped to the current transaction
	Payments() trade.PaymentRepository
	// PurchaseOrders returns the purchase order repository scoped to the current transaction
	PurchaseOrders() trade.PurchaseOrderRepository
	// Quotations returns the quotation repository scoped to the current transaction
	Quotations() trade.QuotationRepository
	// OutsourcingOrders returns the outsourcing order repository scoped to the current transaction
	OutsourcingOrders() trade.OutsourcingOrderRepository
	// ProfitRecords returns the profit record repository scoped to the current transaction
	ProfitRecords() trade.ProfitRecordRepository
	// Sequences returns the order-number sequence repository scoped to the current transaction
	Sequences() trade.SequenceRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests.
type NoOpTransactionScope struct {
	ProductRepo          catalog.ProductRepository
	LedgerRepo           inventory.LedgerRepository
	CustomerRepo         partner.CustomerRepository
	SupplierRepo         partner.SupplierRepository
	SaleRepo             trade.SaleRepository
	AdjustmentRepo       trade.SaleAdjustmentRepository
	PaymentRepo          trade.PaymentRepository
	PurchaseOrderRepo    trade.PurchaseOrderRepository
	QuotationRepo        trade.QuotationRepository
	OutsourcingOrderRepo trade.OutsourcingOrderRepository
	ProfitRecordRepo     trade.ProfitRecordRepository
	SequenceRepo         trade.SequenceRepository
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) Products() catalog.ProductRepository              { return s.ProductRepo }
func (s *NoOpTransactionScope) Ledger() inventory.LedgerRepository               { return s.LedgerRepo }
func (s *NoOpTransactionScope) Customers() partner.CustomerRepository            { return s.CustomerRepo }
func (s *NoOpTransactionScope) Suppliers() partner.SupplierRepository            { return s.SupplierRepo }
func (s *NoOpTransactionScope) Sales() trade.SaleRepository                      { return s.SaleRepo }
func (s *NoOpTransactionScope) Adjustments() trade.SaleAdjustmentRepository      { return s.AdjustmentRepo }
func (s *NoOpTransactionScope) Payments() trade.PaymentRepository                { return s.PaymentRepo }
func (s *NoOpTransactionScope) PurchaseOrders() trade.PurchaseOrderRepository    { return s.PurchaseOrderRepo }
func (s *NoOpTransactionScope) Quotations() trade.QuotationRepository            { return s.QuotationRepo }
func (s *NoOpTransactionScope) OutsourcingOrders() trade.OutsourcingOrderRepository {
	return s.OutsourcingOrderRepo
}
func (s *NoOpTransactionScope) ProfitRecords() trade.ProfitRecordRepository { return s.ProfitRecordRepo }
func (s *NoOpTransactionScope) Sequences() trade.SequenceRepository        { return s.SequenceRepo }

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
