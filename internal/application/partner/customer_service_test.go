package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/usmanhardware/backend/internal/domain/partner"
	"github.com/usmanhardware/backend/internal/domain/shared"
)

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestCustomerService_Create(t *testing.T) {
	repo := new(MockCustomerRepository)
	service := NewCustomerService(repo)

	repo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Customer")).Return(nil)

	limit := decimal.NewFromInt(50000)
	resp, err := service.Create(context.Background(), CreateCustomerRequest{
		Name:        "Iqbal Traders",
		Phone:       "0300-1234567",
		Address:     "Main Bazaar, Sialkot",
		CreditLimit: &limit,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Iqbal Traders", resp.Name)
	assert.Equal(t, "active", resp.Status)
	assert.True(t, resp.CreditLimit.Equal(limit))
	assert.True(t, resp.CurrentBalance.IsZero())
	repo.AssertExpectations(t)
}

func TestCustomerService_Create_InvalidPhone(t *testing.T) {
	repo := new(MockCustomerRepository)
	service := NewCustomerService(repo)

	_, err := service.Create(context.Background(), CreateCustomerRequest{
		Name:  "Iqbal Traders",
		Phone: "not a phone!",
	})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCustomerService_Update_PatchesOnlyProvidedFields(t *testing.T) {
	repo := new(MockCustomerRepository)
	service := NewCustomerService(repo)

	customer, err := partner.NewCustomer("Iqbal Traders", "0300-1234567")
	assert.NoError(t, err)

	repo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	repo.On("Save", mock.Anything, customer).Return(nil)

	address := "Shahrah-e-Faisal, Karachi"
	resp, err := service.Update(context.Background(), customer.ID, UpdateCustomerRequest{
		Address: &address,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Iqbal Traders", resp.Name)
	assert.Equal(t, "0300-1234567", resp.Phone)
	assert.Equal(t, address, resp.Address)
	repo.AssertExpectations(t)
}

func TestCustomerService_Update_Deactivate(t *testing.T) {
	repo := new(MockCustomerRepository)
	service := NewCustomerService(repo)

	customer, err := partner.NewCustomer("Iqbal Traders", "")
	assert.NoError(t, err)

	repo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	repo.On("Save", mock.Anything, customer).Return(nil)

	status := "inactive"
	resp, err := service.Update(context.Background(), customer.ID, UpdateCustomerRequest{
		Status: &status,
	})

	assert.NoError(t, err)
	assert.Equal(t, "inactive", resp.Status)
}

func TestCustomerService_Update_NotFound(t *testing.T) {
	repo := new(MockCustomerRepository)
	service := NewCustomerService(repo)

	customerID := uuid.New()
	repo.On("FindByID", mock.Anything, customerID).Return(nil, shared.ErrNotFound)

	_, err := service.Update(context.Background(), customerID, UpdateCustomerRequest{})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCustomerService_List(t *testing.T) {
	repo := new(MockCustomerRepository)
	service := NewCustomerService(repo)

	customer, err := partner.NewCustomer("Iqbal Traders", "")
	assert.NoError(t, err)

	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.Filters["status"] == "active"
	})).Return([]partner.Customer{*customer}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	responses, total, err := service.List(context.Background(), PartnerListFilter{Status: "active"})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, responses, 1)
}

func TestCustomerService_Delete(t *testing.T) {
	repo := new(MockCustomerRepository)
	service := NewCustomerService(repo)

	customerID := uuid.New()
	repo.On("Delete", mock.Anything, customerID).Return(nil)

	err := service.Delete(context.Background(), customerID)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
