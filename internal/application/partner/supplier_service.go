package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/usmanhardware/backend/internal/domain/partner"
	"github.com/usmanhardware/backend/internal/domain/shared"
)

// SupplierService handles supplier bookkeeping. TotalPurchases is owned
// by the purchase order flow and is never written here.
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	events       shared.EventPublisher
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// SetEventPublisher wires the post-commit event sink (optional)
func (s *SupplierService) SetEventPublisher(events shared.EventPublisher) {
	s.events = events
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(req.Name, req.ContactName, req.Phone)
	if err != nil {
		return nil, err
	}
	supplier.Address = req.Address
	supplier.Notes = req.Notes

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	shared.PublishEvents(ctx, s.events, supplier)

	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// Update patches a supplier's details or status
func (s *SupplierService) Update(ctx context.Context, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.ContactName != nil || req.Phone != nil || req.Address != nil || req.Notes != nil {
		name := supplier.Name
		if req.Name != nil {
			name = *req.Name
		}
		contactName := supplier.ContactName
		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		phone := supplier.Phone
		if req.Phone != nil {
			phone = *req.Phone
		}
		address := supplier.Address
		if req.Address != nil {
			address = *req.Address
		}
		notes := supplier.Notes
		if req.Notes != nil {
			notes = *req.Notes
		}
		if err := supplier.Update(name, contactName, phone, address, notes); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		if err := applySupplierStatus(supplier, *req.Status); err != nil {
			return nil, err
		}
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// Delete removes a supplier
func (s *SupplierService) Delete(ctx context.Context, supplierID uuid.UUID) error {
	return s.supplierRepo.Delete(ctx, supplierID)
}

// GetByID loads one supplier
func (s *SupplierService) GetByID(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// List returns a page of suppliers with the total match count
func (s *SupplierService) List(ctx context.Context, filter PartnerListFilter) ([]SupplierResponse, int64, error) {
	domainFilter := buildFilter(filter)

	suppliers, err := s.supplierRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.supplierRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SupplierResponse, 0, len(suppliers))
	for idx := range suppliers {
		responses = append(responses, ToSupplierResponse(&suppliers[idx]))
	}
	return responses, total, nil
}

func applySupplierStatus(supplier *partner.Supplier, status string) error {
	switch partner.SupplierStatus(status) {
	case partner.SupplierStatusActive:
		if !supplier.IsActive() {
			return supplier.Activate()
		}
	case partner.SupplierStatusInactive:
		if supplier.IsActive() {
			return supplier.Deactivate()
		}
	default:
		return shared.NewDomainError("INVALID_INPUT", "Unknown supplier status: "+status)
	}
	return nil
}
