package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	inventoryapp "github.com/usmanhardware/backend/internal/application/inventory"
	"github.com/usmanhardware/backend/internal/domain/inventory"
	"github.com/usmanhardware/backend/internal/domain/shared"
)

// InventoryHandler exposes stock corrections and ledger reads
type InventoryHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(stockService *inventoryapp.StockService) *InventoryHandler {
	return &InventoryHandler{stockService: stockService}
}

// RegisterRoutes mounts the inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/inventory/adjustments", h.Adjust)
	rg.GET("/inventory/products/:id/ledger", h.GetLedger)
}

// ManualAdjustmentRequest is a stock-taking correction. Delta is signed:
// negative removes stock, positive adds it.
type ManualAdjustmentRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Delta     decimal.Decimal `json:"delta" binding:"required"`
	Movement  string          `json:"movement" binding:"required,oneof=adjustment restock damage"`
	Reason    string          `json:"reason" binding:"required"`
}

// StockAdjustmentResponse reports the stock transition a correction produced
type StockAdjustmentResponse struct {
	ProductID     uuid.UUID       `json:"product_id"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	LedgerEntryID uuid.UUID       `json:"ledger_entry_id"`
}

// Adjust handles POST /inventory/adjustments
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req ManualAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	adjustment, err := h.stockService.ManualAdjustment(c.Request.Context(), inventoryapp.ManualAdjustmentInput{
		ProductID: req.ProductID,
		Delta:     req.Delta,
		Movement:  inventory.MovementType(req.Movement),
		Reason:    req.Reason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, StockAdjustmentResponse{
		ProductID:     adjustment.ProductID,
		BalanceBefore: adjustment.BalanceBefore,
		BalanceAfter:  adjustment.BalanceAfter,
		LedgerEntryID: adjustment.LedgerEntryID,
	})
}

// GetLedger handles GET /inventory/products/:id/ledger
func (h *InventoryHandler) GetLedger(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	listReq, err := bindListRequest(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	filter := shared.Filter{
		Page:     normalizePage(listReq.Page),
		PageSize: normalizePageSize(listReq.PageSize),
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if movement := c.Query("movement_type"); movement != "" {
		filter.Filters["movement_type"] = movement
	}

	entries, err := h.stockService.GetLedger(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}
