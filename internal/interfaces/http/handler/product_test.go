package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/usmanhardware/backend/internal/application/catalog"
	"github.com/usmanhardware/backend/internal/domain/catalog"
	"github.com/usmanhardware/backend/internal/domain/shared"
	"github.com/usmanhardware/backend/internal/interfaces/http/dto"
)

// fakeProductRepository is an in-memory catalog.ProductRepository for
// exercising handlers through a real service.
type fakeProductRepository struct {
	products map[uuid.UUID]*catalog.Product
}

func newFakeProductRepository() *fakeProductRepository {
	return &fakeProductRepository{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *fakeProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (r *fakeProductRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	for _, product := range r.products {
		if product.SKU == sku {
			copied := *product
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0, len(r.products))
	for _, product := range r.products {
		result = append(result, *product)
	}
	return result, nil
}

func (r *fakeProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			result = append(result, *product)
		}
	}
	return result, nil
}

func (r *fakeProductRepository) FindLowStock(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0)
	for _, product := range r.products {
		if product.IsLowStock() {
			result = append(result, *product)
		}
	}
	return result, nil
}

func (r *fakeProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	_, err := r.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func setupProductRouter(repo *fakeProductRepository) *gin.Engine {
	service := catalogapp.NewProductService(repo)
	productHandler := NewProductHandler(service)

	router := gin.New()
	api := router.Group("/api/v1")
	productHandler.RegisterRoutes(api)
	return router
}

func seedProduct(t *testing.T, repo *fakeProductRepository, sku, name string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(sku, name, "pcs")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), product))
	return product
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestProductHandler_Create(t *testing.T) {
	repo := newFakeProductRepository()
	router := setupProductRouter(repo)

	body := `{"sku":"pvc-001","name":"PVC Pipe 1 inch","unit":"ft","price":"150.50","min_stock":"25"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "PVC-001", data["sku"])
	assert.Equal(t, "PVC Pipe 1 inch", data["name"])

	stored, err := repo.FindBySKU(context.Background(), "PVC-001")
	require.NoError(t, err)
	assert.Equal(t, "ft", stored.Unit)
}

func TestProductHandler_Create_MissingName(t *testing.T) {
	router := setupProductRouter(newFakeProductRepository())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBufferString(`{"sku":"PVC-002","unit":"pcs"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
}

func TestProductHandler_Create_DuplicateSKU(t *testing.T) {
	repo := newFakeProductRepository()
	seedProduct(t, repo, "PVC-001", "PVC Pipe 1 inch")
	router := setupProductRouter(repo)

	w := httptest.NewRecorder()
	body := `{"sku":"PVC-001","name":"PVC Pipe duplicate","unit":"ft"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "ALREADY_EXISTS", resp.Error.Code)
}

func TestProductHandler_GetByID(t *testing.T) {
	repo := newFakeProductRepository()
	product := seedProduct(t, repo, "HMR-010", "Claw Hammer 16oz")
	router := setupProductRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+product.ID.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "HMR-010", data["sku"])
}

func TestProductHandler_GetByID_InvalidUUID(t *testing.T) {
	router := setupProductRouter(newFakeProductRepository())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
}

func TestProductHandler_GetByID_NotFound(t *testing.T) {
	router := setupProductRouter(newFakeProductRepository())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+uuid.New().String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestProductHandler_List_Meta(t *testing.T) {
	repo := newFakeProductRepository()
	for i := 0; i < 3; i++ {
		seedProduct(t, repo, fmt.Sprintf("SKU-%03d", i), fmt.Sprintf("Product %d", i))
	}
	router := setupProductRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?page=1&page_size=20", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(3), resp.Meta.Total)
	assert.Equal(t, 1, resp.Meta.Page)
	assert.Equal(t, 20, resp.Meta.PageSize)
}

func TestProductHandler_Update_Deactivate(t *testing.T) {
	repo := newFakeProductRepository()
	product := seedProduct(t, repo, "HMR-010", "Claw Hammer 16oz")
	router := setupProductRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/"+product.ID.String(), bytes.NewBufferString(`{"status":"inactive"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "inactive", data["status"])
}

func TestProductHandler_Delete(t *testing.T) {
	repo := newFakeProductRepository()
	product := seedProduct(t, repo, "HMR-010", "Claw Hammer 16oz")
	router := setupProductRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+product.ID.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	_, err := repo.FindByID(context.Background(), product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
