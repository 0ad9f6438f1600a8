package handler

import (
	"github.com/gin-gonic/gin"

	tradeapp "github.com/usmanhardware/backend/internal/application/trade"
)

// PurchaseOrderHandler exposes the purchase order lifecycle
type PurchaseOrderHandler struct {
	BaseHandler
	purchaseOrderService *tradeapp.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(purchaseOrderService *tradeapp.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{purchaseOrderService: purchaseOrderService}
}

// RegisterRoutes mounts the purchase order routes
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/purchase-orders", h.Create)
	rg.GET("/purchase-orders", h.List)
	rg.GET("/purchase-orders/:id", h.GetByID)
	rg.PUT("/purchase-orders/:id", h.Update)
	rg.POST("/purchase-orders/:id/receive", h.Receive)
	rg.DELETE("/purchase-orders/:id", h.Delete)
}

// Create handles POST /purchase-orders
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	po, err := h.purchaseOrderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, po)
}

// List handles GET /purchase-orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
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

	filter := tradeapp.PurchaseOrderListFilter{
		Page:       listReq.Page,
		PageSize:   listReq.PageSize,
		OrderBy:    listReq.OrderBy,
		OrderDir:   listReq.OrderDir,
		Search:     listReq.Search,
		SupplierID: supplierID,
		Status:     c.Query("status"),
	}

	orders, total, err := h.purchaseOrderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, normalizePage(filter.Page), normalizePageSize(filter.PageSize))
}

// GetByID handles GET /purchase-orders/:id
func (h *PurchaseOrderHandler) GetByID(c *gin.Context) {
	poID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	po, err := h.purchaseOrderService.GetByID(c.Request.Context(), poID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, po)
}

// Update handles PUT /purchase-orders/:id
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	poID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	var req tradeapp.UpdatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	po, err := h.purchaseOrderService.Update(c.Request.Context(), poID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, po)
}

// Receive handles POST /purchase-orders/:id/receive
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	poID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	var req tradeapp.ReceivePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	po, err := h.purchaseOrderService.Receive(c.Request.Context(), poID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, po)
}

// Delete handles DELETE /purchase-orders/:id
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	poID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	if err := h.purchaseOrderService.Delete(c.Request.Context(), poID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
