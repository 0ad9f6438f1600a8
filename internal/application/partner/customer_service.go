package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/usmanhardware/backend/internal/domain/partner"
	"github.com/usmanhardware/backend/internal/domain/shared"
)

// CustomerService handles customer bookkeeping. Balance movements are
// owned by the sales and payment flows; this service only maintains the
// customer record itself.
type CustomerService struct {
	customerRepo partner.CustomerRepository
	events       shared.EventPublisher
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// SetEventPublisher wires the post-commit event sink (optional)
func (s *CustomerService) SetEventPublisher(events shared.EventPublisher) {
	s.events = events
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.Phone)
	if err != nil {
		return nil, err
	}
	customer.Address = req.Address
	customer.Notes = req.Notes

	if req.CreditLimit != nil {
		if err := customer.SetCreditLimit(*req.CreditLimit); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	shared.PublishEvents(ctx, s.events, customer)

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Update patches a customer's details, credit limit or status
func (s *CustomerService) Update(ctx context.Context, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Phone != nil || req.Address != nil || req.Notes != nil {
		name := customer.Name
		if req.Name != nil {
			name = *req.Name
		}
		phone := customer.Phone
		if req.Phone != nil {
			phone = *req.Phone
		}
		address := customer.Address
		if req.Address != nil {
			address = *req.Address
		}
		notes := customer.Notes
		if req.Notes != nil {
			notes = *req.Notes
		}
		if err := customer.Update(name, phone, address, notes); err != nil {
			return nil, err
		}
	}

	if req.CreditLimit != nil {
		if err := customer.SetCreditLimit(*req.CreditLimit); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		if err := applyCustomerStatus(customer, *req.Status); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Delete removes a customer
func (s *CustomerService) Delete(ctx context.Context, customerID uuid.UUID) error {
	return s.customerRepo.Delete(ctx, customerID)
}

// GetByID loads one customer
func (s *CustomerService) GetByID(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// List returns a page of customers with the total match count
func (s *CustomerService) List(ctx context.Context, filter PartnerListFilter) ([]CustomerResponse, int64, error) {
	domainFilter := buildFilter(filter)

	customers, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CustomerResponse, 0, len(customers))
	for idx := range customers {
		responses = append(responses, ToCustomerResponse(&customers[idx]))
	}
	return responses, total, nil
}

func applyCustomerStatus(customer *partner.Customer, status string) error {
	switch partner.CustomerStatus(status) {
	case partner.CustomerStatusActive:
		if !customer.IsActive() {
			return customer.Activate()
		}
	case partner.CustomerStatusInactive:
		if customer.IsActive() {
			return customer.Deactivate()
		}
	default:
		return shared.NewDomainError("INVALID_INPUT", "Unknown customer status: "+status)
	}
	return nil
}
