package persistence

import (
	"context"

	inventoryapp "github.com/usmanhardware/backend/internal/application/inventory"
	"github.com/usmanhardware/backend/internal/domain/catalog"
	"github.com/usmanhardware/backend/internal/domain/inventory"
	"github.com/usmanhardware/backend/internal/domain/partner"
	"github.com/usmanhardware/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope runs order engine operations inside a single
// database transaction. Every repository handed to the callback is bound
// to the same *gorm.DB transaction, so stock writes, ledger appends and
// order rows commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a transaction scope over the given connection
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside one transaction. A returned error rolls back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos inventoryapp.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{tx: tx})
	})
}

// gormRepositories satisfies TransactionalRepositories over one open
// transaction. Repositories are built per call; they are stateless
// wrappers around the shared tx handle.
type gormRepositories struct {
	tx *gorm.DB
}

func (r *gormRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormRepositories) Ledger() inventory.LedgerRepository {
	return NewGormLedgerRepository(r.tx)
}

func (r *gormRepositories) Customers() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

func (r *gormRepositories) Suppliers() partner.SupplierRepository {
	return NewGormSupplierRepository(r.tx)
}

func (r *gormRepositories) Sales() trade.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *gormRepositories) Adjustments() trade.SaleAdjustmentRepository {
	return NewGormSaleAdjustmentRepository(r.tx)
}

func (r *gormRepositories) Payments() trade.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

func (r *gormRepositories) PurchaseOrders() trade.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

func (r *gormRepositories) Quotations() trade.QuotationRepository {
	return NewGormQuotationRepository(r.tx)
}

func (r *gormRepositories) OutsourcingOrders() trade.OutsourcingOrderRepository {
	return NewGormOutsourcingOrderRepository(r.tx)
}

func (r *gormRepositories) ProfitRecords() trade.ProfitRecordRepository {
	return NewGormProfitRecordRepository(r.tx)
}

func (r *gormRepositories) Sequences() trade.SequenceRepository {
	return NewGormSequenceRepository(r.tx)
}

var _ inventoryapp.TransactionScope = (*GormTransactionScope)(nil)
var _ inventoryapp.TransactionalRepositories = (*gormRepositories)(nil)
