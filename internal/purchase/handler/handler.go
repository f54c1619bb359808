package handler

import (
	"github.com/fekuna/omnipos-inventory-service/internal/auth"
	"github.com/fekuna/omnipos-inventory-service/internal/purchase"
	"github.com/fekuna/omnipos-inventory-service/internal/purchase/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/response"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	uc     purchase.UseCase
	logger logger.ZapLogger
	debug  bool
}

func NewPurchaseHandler(uc purchase.UseCase, log logger.ZapLogger, debug bool) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, logger: log, debug: debug}
}

func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.ReceivePurchase)
		purchases.GET("/:id", h.GetPurchase)
	}
}

func (h *PurchaseHandler) ReceivePurchase(c *gin.Context) {
	var in dto.ReceivePurchaseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err)
		return
	}
	in.Actor = auth.GetActor(c.Request.Context())

	p, err := h.uc.ReceivePurchase(c.Request.Context(), &in)
	if err != nil {
		response.Error(c, err, h.debug)
		return
	}
	response.Created(c, "Purchase received", p)
}

func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
	id, ok := response.UUIDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.uc.GetPurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err, h.debug)
		return
	}
	response.OK(c, "Purchase retrieved", p)
}
