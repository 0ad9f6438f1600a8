package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/usmanhardware/backend/internal/domain/catalog"
	"github.com/usmanhardware/backend/internal/domain/shared"
	"github.com/usmanhardware/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// ProductReadCache caches whole product records keyed by id. Get
// reports a miss as a nil product with no error.
type ProductReadCache interface {
	Get(ctx context.Context, productID uuid.UUID) (*catalog.Product, error)
	Set(ctx context.Context, product *catalog.Product) error
	InvalidateProduct(ctx context.Context, productID uuid.UUID) error
}

// ProductService handles catalog maintenance. Stock is never written
// here; every stock change goes through the inventory stock service so
// the ledger stays authoritative.
type ProductService struct {
	productRepo catalog.ProductRepository
	cache       ProductReadCache
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      zap.NewNop(),
	}
}

// SetReadCache wires the product read cache (optional). GetByID serves
// from the cache; catalog writes refresh or drop the entry, stock
// writes drop it through the inventory stock service.
func (s *ProductService) SetReadCache(cache ProductReadCache, logger *zap.Logger) {
	s.cache = cache
	if logger != nil {
		s.logger = logger
	}
}

// SetEventPublisher wires the post-commit event sink (optional)
func (s *ProductService) SetEventPublisher(events shared.EventPublisher) {
	s.events = events
}

// Create creates a new product with a unique SKU
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, strings.ToUpper(req.SKU))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	product, err := catalog.NewProduct(req.SKU, req.Name, req.Unit)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description

	if !req.CostPrice.IsZero() || !req.Price.IsZero() {
		cost := valueobject.NewMoneyPKR(req.CostPrice)
		price := valueobject.NewMoneyPKR(req.Price)
		if err := product.SetPrices(cost, price); err != nil {
			return nil, err
		}
	}
	if req.MinStock != nil {
		if err := product.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	shared.PublishEvents(ctx, s.events, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// Update patches a product's details, prices, minimum stock or status
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := product.Name
		if req.Name != nil {
			name = *req.Name
		}
		description := product.Description
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.CostPrice != nil || req.Price != nil {
		cost := product.CostPrice
		if req.CostPrice != nil {
			cost = *req.CostPrice
		}
		price := product.Price
		if req.Price != nil {
			price = *req.Price
		}
		if err := product.SetPrices(valueobject.NewMoneyPKR(cost), valueobject.NewMoneyPKR(price)); err != nil {
			return nil, err
		}
	}

	if req.MinStock != nil {
		if err := product.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		switch catalog.ProductStatus(*req.Status) {
		case catalog.ProductStatusActive:
			if !product.IsActive() {
				if err := product.Activate(); err != nil {
					return nil, err
				}
			}
		case catalog.ProductStatusInactive:
			if product.IsActive() {
				if err := product.Deactivate(); err != nil {
					return nil, err
				}
			}
		default:
			return nil, shared.NewDomainError("INVALID_INPUT", "Unknown product status: "+*req.Status)
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.refreshCache(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.InvalidateProduct(ctx, productID); err != nil {
			s.logger.Warn("failed to invalidate product cache",
				zap.String("product_id", productID.String()),
				zap.Error(err))
		}
	}
	return nil
}

// GetByID loads one product, serving from the read cache when wired.
// A cache failure counts as a miss.
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, productID)
		if err != nil {
			s.logger.Warn("product cache read failed",
				zap.String("product_id", productID.String()),
				zap.Error(err))
		} else if cached != nil {
			resp := ToProductResponse(cached)
			return &resp, nil
		}
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	s.refreshCache(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// refreshCache writes the current product state to the read cache.
// Failures are logged and swallowed; the entry expires on its TTL.
func (s *ProductService) refreshCache(ctx context.Context, product *catalog.Product) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, product); err != nil {
		s.logger.Warn("product cache write failed",
			zap.String("product_id", product.ID.String()),
			zap.Error(err))
	}
}

// GetBySKU loads one product by its SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns a page of products with the total match count
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	var products []catalog.Product
	var err error
	if filter.LowStock {
		products, err = s.productRepo.FindLowStock(ctx, domainFilter)
	} else {
		products, err = s.productRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for idx := range products {
		responses = append(responses, ToProductResponse(&products[idx]))
	}
	return responses, total, nil
}
