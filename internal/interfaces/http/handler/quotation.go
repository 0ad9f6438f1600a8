package handler

import (
	"github.com/gin-gonic/gin"

	tradeapp "github.com/usmanhardware/backend/internal/application/trade"
)

// QuotationHandler exposes the quotation lifecycle including conversion
// into a sale
type QuotationHandler struct {
	BaseHandler
	quotationService *tradeapp.QuotationService
}

// NewQuotationHandler creates a new QuotationHandler
func NewQuotationHandler(quotationService *tradeapp.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// RegisterRoutes mounts the quotation routes
func (h *QuotationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/quotations", h.Create)
	rg.GET("/quotations", h.List)
	rg.GET("/quotations/:id", h.GetByID)
	rg.PUT("/quotations/:id", h.Update)
	rg.PUT("/quotations/:id/status", h.UpdateStatus)
	rg.POST("/quotations/:id/convert", h.ConvertToSale)
	rg.DELETE("/quotations/:id", h.Delete)
}

// Create handles POST /quotations
func (h *QuotationHandler) Create(c *gin.Context) {
	var req tradeapp.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	quotation, err := h.quotationService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, quotation)
}

// List handles GET /quotations
func (h *QuotationHandler) List(c *gin.Context) {
	listReq, err := bindListRequest(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	customerID, ok := parseOptionalUUIDQuery(c.Query("customer_id"))
	if !ok {
		h.BadRequest(c, "Invalid customer_id format")
		return
	}

	filter := tradeapp.QuotationListFilter{
		Page:       listReq.Page,
		PageSize:   listReq.PageSize,
		OrderBy:    listReq.OrderBy,
		OrderDir:   listReq.OrderDir,
		Search:     listReq.Search,
		CustomerID: customerID,
		Status:     c.Query("status"),
	}

	quotations, total, err := h.quotationService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, quotations, total, normalizePage(filter.Page), normalizePageSize(filter.PageSize))
}

// GetByID handles GET /quotations/:id
func (h *QuotationHandler) GetByID(c *gin.Context) {
	quotationID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	quotation, err := h.quotationService.GetByID(c.Request.Context(), quotationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quotation)
}

// Update handles PUT /quotations/:id
func (h *QuotationHandler) Update(c *gin.Context) {
	quotationID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	var req tradeapp.UpdateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	quotation, err := h.quotationService.Update(c.Request.Context(), quotationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quotation)
}

// UpdateStatus handles PUT /quotations/:id/status
func (h *QuotationHandler) UpdateStatus(c *gin.Context) {
	quotationID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	quotation, err := h.quotationService.UpdateStatus(c.Request.Context(), quotationID, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quotation)
}

// ConvertToSale handles POST /quotations/:id/convert
func (h *QuotationHandler) ConvertToSale(c *gin.Context) {
	quotationID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	sale, err := h.quotationService.ConvertToSale(c.Request.Context(), quotationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sale)
}

// Delete handles DELETE /quotations/:id
func (h *QuotationHandler) Delete(c *gin.Context) {
	quotationID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	if err := h.quotationService.Delete(c.Request.Context(), quotationID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
