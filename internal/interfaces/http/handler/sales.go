package handler

import (
	"github.com/gin-gonic/gin"

	tradeapp "github.com/usmanhardware/backend/internal/application/trade"
)

// SalesHandler exposes the sale lifecycle: creation, status moves,
// detail edits and the return and reversal flows.
type SalesHandler struct {
	BaseHandler
	salesService  *tradeapp.SalesService
	returnService *tradeapp.ReturnService
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(salesService *tradeapp.SalesService, returnService *tradeapp.ReturnService) *SalesHandler {
	return &SalesHandler{
		salesService:  salesService,
		returnService: returnService,
	}
}

// RegisterRoutes mounts the sales routes
func (h *SalesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sales", h.Create)
	rg.GET("/sales", h.List)
	rg.GET("/sales/:id", h.GetByID)
	rg.PUT("/sales/:id/status", h.UpdateStatus)
	rg.PATCH("/sales/:id", h.UpdateDetails)
	rg.POST("/sales/:id/returns", h.ReturnItems)
	rg.POST("/sales/:id/revert", h.RevertOrder)
}

// UpdateStatusRequest moves an order to a new status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create handles POST /sales
func (h *SalesHandler) Create(c *gin.Context) {
	var req tradeapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	sale, err := h.salesService.CreateSale(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sale)
}

// List handles GET /sales
func (h *SalesHandler) List(c *gin.Context) {
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

	filter := tradeapp.SaleListFilter{
		Page:          listReq.Page,
		PageSize:      listReq.PageSize,
		OrderBy:       listReq.OrderBy,
		OrderDir:      listReq.OrderDir,
		Search:        listReq.Search,
		CustomerID:    customerID,
		Status:        c.Query("status"),
		PaymentMethod: c.Query("payment_method"),
	}

	sales, total, err := h.salesService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, sales, total, normalizePage(filter.Page), normalizePageSize(filter.PageSize))
}

// GetByID handles GET /sales/:id
func (h *SalesHandler) GetByID(c *gin.Context) {
	saleID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.salesService.GetByID(c.Request.Context(), saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// UpdateStatus handles PUT /sales/:id/status
func (h *SalesHandler) UpdateStatus(c *gin.Context) {
	saleID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	sale, err := h.salesService.UpdateOrderStatus(c.Request.Context(), saleID, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// UpdateDetails handles PATCH /sales/:id
func (h *SalesHandler) UpdateDetails(c *gin.Context) {
	saleID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	var req tradeapp.UpdateSaleDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	sale, err := h.salesService.UpdateOrderDetails(c.Request.Context(), saleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// ReturnItems handles POST /sales/:id/returns
func (h *SalesHandler) ReturnItems(c *gin.Context) {
	saleID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	var req tradeapp.ReturnItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	sale, err := h.returnService.ReturnItems(c.Request.Context(), saleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// RevertOrder handles POST /sales/:id/revert
func (h *SalesHandler) RevertOrder(c *gin.Context) {
	saleID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	var req tradeapp.RevertOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	sale, err := h.returnService.RevertOrder(c.Request.Context(), saleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}
