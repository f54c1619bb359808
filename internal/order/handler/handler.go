package handler

import (
	"github.com/fekuna/omnipos-inventory-service/internal/auth"
	"github.com/fekuna/omnipos-inventory-service/internal/order"
	"github.com/fekuna/omnipos-inventory-service/internal/order/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/response"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
	debug  bool
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger, debug bool) *OrderHandler {
	return &OrderHandler{uc: uc, logger: log, debug: debug}
}

func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("/:id", h.GetOrder)
	}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var in dto.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err)
		return
	}
	in.Actor = auth.GetActor(c.Request.Context())

	res, err := h.uc.CreateOrder(c.Request.Context(), &in)
	if err != nil {
		response.Error(c, err, h.debug)
		return
	}
	response.Created(c, "Order placed", res)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := response.UUIDParam(c, "id")
	if !ok {
		return
	}
	o, err := h.uc.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err, h.debug)
		return
	}
	response.OK(c, "Order retrieved", o)
}
