package handler

import (
	"github.com/fekuna/omnipos-inventory-service/internal/auth"
	"github.com/fekuna/omnipos-inventory-service/internal/response"
	"github.com/fekuna/omnipos-inventory-service/internal/sale"
	"github.com/fekuna/omnipos-inventory-service/internal/sale/dto"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	uc     sale.UseCase
	logger logger.ZapLogger
	debug  bool
}

func NewSaleHandler(uc sale.UseCase, log logger.ZapLogger, debug bool) *SaleHandler {
	return &SaleHandler{uc: uc, logger: log, debug: debug}
}

func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("", h.CreateSale)
		sales.GET("/:id", h.GetSale)
	}
}

func (h *SaleHandler) CreateSale(c *gin.Context) {
	var in dto.CreateSaleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err)
		return
	}
	in.Actor = auth.GetActor(c.Request.Context())

	s, err := h.uc.CreateSale(c.Request.Context(), &in)
	if err != nil {
		response.Error(c, err, h.debug)
		return
	}
	response.Created(c, "Sale recorded", s)
}

func (h *SaleHandler) GetSale(c *gin.Context) {
	id, ok := response.UUIDParam(c, "id")
	if !ok {
		return
	}
	s, err := h.uc.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err, h.debug)
		return
	}
	response.OK(c, "Sale retrieved", s)
}
