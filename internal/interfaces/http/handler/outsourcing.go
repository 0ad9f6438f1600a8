package handler

import (
	"github.com/gin-gonic/gin"

	tradeapp "github.com/usmanhardware/backend/internal/application/trade"
)

// OutsourcingHandler exposes supplier-fulfilled order tracking
type OutsourcingHandler struct {
	BaseHandler
	outsourcingService *tradeapp.OutsourcingService
}

// NewOutsourcingHandler creates a new OutsourcingHandler
func NewOutsourcingHandler(outsourcingService *tradeapp.OutsourcingService) *OutsourcingHandler {
	return &OutsourcingHandler{outsourcingService: outsourcingService}
}

// RegisterRoutes mounts the outsourcing routes
func (h *OutsourcingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/outsourcing-orders", h.List)
	rg.GET("/outsourcing-orders/:id", h.GetByID)
	rg.PUT("/outsourcing-orders/:id/status", h.UpdateStatus)
	rg.POST("/outsourcing-orders/:id/deliver", h.MarkDelivered)
	rg.POST("/outsourcing-orders/:id/notes", h.AppendNote)
}

// AppendNoteRequest adds one note to the order's trail
type AppendNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// List handles GET /outsourcing-orders
func (h *OutsourcingHandler) List(c *gin.Context) {
	listReq, err := bindListRequest(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	supplierID, ok := parseOptionalUUIDQuery(c.Query("supplier_id"))
	if !ok {
		h.BadRequest(c, "Invalid supplier_id format")
		return
	}
	saleID, ok := parseOptionalUUIDQuery(c.Query("sale_id"))
	if !ok {
		h.BadRequest(c, "Invalid sale_id format")
		return
	}

	filter := tradeapp.OutsourcingListFilter{
		Page:       listReq.Page,
		PageSize:   listReq.PageSize,
		OrderBy:    listReq.OrderBy,
		OrderDir:   listReq.OrderDir,
		SupplierID: supplierID,
		SaleID:     saleID,
		Status:     c.Query("status"),
	}

	orders, total, err := h.outsourcingService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, normalizePage(filter.Page), normalizePageSize(filter.PageSize))
}

// GetByID handles GET /outsourcing-orders/:id
func (h *OutsourcingHandler) GetByID(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid outsourcing order ID format")
		return
	}

	order, err := h.outsourcingService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// UpdateStatus handles PUT /outsourcing-orders/:id/status
func (h *OutsourcingHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid outsourcing order ID format")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.outsourcingService.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// MarkDelivered handles POST /outsourcing-orders/:id/deliver
func (h *OutsourcingHandler) MarkDelivered(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid outsourcing order ID format")
		return
	}

	order, err := h.outsourcingService.MarkDelivered(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// AppendNote handles POST /outsourcing-orders/:id/notes
func (h *OutsourcingHandler) AppendNote(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid outsourcing order ID format")
		return
	}

	var req AppendNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.outsourcingService.AppendNote(c.Request.Context(), orderID, req.Note)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
