package handler

import (
	"github.com/fekuna/omnipos-inventory-service/internal/auth"
	"github.com/fekuna/omnipos-inventory-service/internal/inventory"
	"github.com/fekuna/omnipos-inventory-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/response"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
	debug  bool
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger, debug bool) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
		debug:  debug,
	}
}

func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inv := rg.Group("/inventory")
	{
		inv.GET("/low-stock", h.ListLowStock)
		inv.GET("/products/:productId", h.GetProductInventory)
		inv.PUT("", h.UpsertInventory)
	}

	tx := rg.Group("/stock-transactions")
	{
		tx.GET("", h.ListTransactions)
		tx.POST("", h.CreateStockTransaction)
		tx.PUT("/:id", h.UpdateStockTransaction)
	}
}

func (h *InventoryHandler) GetProductInventory(c *gin.Context) {
	productID, ok := response.UUIDParam(c, "productId")
	if !ok {
		return
	}
	inv, err := h.uc.GetProductInventory(c.Request.Context(), productID)
	if err != nil {
		response.Error(c, err, h.debug)
		return
	}
	response.OK(c, "Inventory retrieved", inv)
}

func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	page, pageSize := response.PageParams(c)

	items, total, err := h.uc.ListLowStock(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err, h.debug)
		return
	}
	response.OK(c, "Low stock items retrieved", response.Page{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *InventoryHandler) UpsertInventory(c *gin.Context) {
	var in dto.UpsertInventoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err)
		return
	}
	in.Actor = auth.GetActor(c.Request.Context())

	inv, err := h.uc.UpsertInventory(c.Request.Context(), &in)
	if err != nil {
		response.Error(c, err, h.debug)
		return
	}
	response.OK(c, "Inventory saved", inv)
}

func (h *InventoryHandler) CreateStockTransaction(c *gin.Context) {
	var in dto.CreateStockTransactionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err)
		return
	}
	in.Actor = auth.GetActor(c.Request.Context())

	tx, err := h.uc.CreateStockTransaction(c.Request.Context(), &in)
	if err != nil {
		response.Error(c, err, h.debug)
		return
	}
	response.Created(c, "Stock transaction recorded", tx)
}

func (h *InventoryHandler) UpdateStockTransaction(c *gin.Context) {
	var in dto.UpdateStockTransactionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err)
		return
	}
	in.ID = c.Param("id")
	in.Actor = auth.GetActor(c.Request.Context())

	tx, err := h.uc.UpdateStockTransaction(c.Request.Context(), &in)
	if err != nil {
		response.Error(c, err, h.debug)
		return
	}
	response.OK(c, "Stock transaction updated", tx)
}

func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	var f dto.TransactionFilters
	if err := c.ShouldBindQuery(&f); err != nil {
		response.BadRequest(c, err)
		return
	}
	f.Page, f.PageSize = response.PageParams(c)

	items, total, err := h.uc.ListTransactions(c.Request.Context(), &f)
	if err != nil {
		response.Error(c, err, h.debug)
		return
	}
	response.OK(c, "Stock transactions retrieved", response.Page{
		Items:    items,
		Total:    total,
		Page:     f.Page,
		PageSize: f.PageSize,
	})
}
