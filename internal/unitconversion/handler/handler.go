package handler

import (
	"github.com/fekuna/omnipos-inventory-service/internal/apperror"
	"github.com/fekuna/omnipos-inventory-service/internal/auth"
	"github.com/fekuna/omnipos-inventory-service/internal/response"
	"github.com/fekuna/omnipos-inventory-service/internal/unitconversion"
	"github.com/fekuna/omnipos-inventory-service/internal/unitconversion/dto"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ConversionHandler struct {
	uc     unitconversion.UseCase
	logger logger.ZapLogger
	debug  bool
}

func NewConversionHandler(uc unitconversion.UseCase, log logger.ZapLogger, debug bool) *ConversionHandler {
	return &ConversionHandler{uc: uc, logger: log, debug: debug}
}

func (h *ConversionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	conv := rg.Group("/unit-conversions")
	{
		conv.GET("", h.ListConversions)
		conv.POST("", h.CreateConversion)
		conv.GET("/convert", h.Convert)
	}
}

func (h *ConversionHandler) CreateConversion(c *gin.Context) {
	var in dto.CreateConversionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err)
		return
	}
	in.Actor = auth.GetActor(c.Request.Context())

	conv, err := h.uc.CreateConversion(c.Request.Context(), &in)
	if err != nil {
		response.Error(c, err, h.debug)
		return
	}
	response.Created(c, "Unit conversion created", conv)
}

func (h *ConversionHandler) ListConversions(c *gin.Context) {
	items, err := h.uc.ListConversions(c.Request.Context())
	if err != nil {
		response.Error(c, err, h.debug)
		return
	}
	response.OK(c, "Unit conversions retrieved", items)
}

func (h *ConversionHandler) Convert(c *gin.Context) {
	var q dto.ConvertQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err)
		return
	}
	value, err := decimal.NewFromString(q.Value)
	if err != nil {
		response.Error(c, apperror.InvalidArgument("value %q is not a number", q.Value), h.debug)
		return
	}

	result, err := h.uc.Convert(c.Request.Context(), q.From, q.To, value)
	if err != nil {
		response.Error(c, err, h.debug)
		return
	}
	response.OK(c, "Converted", dto.ConvertResult{
		From:   q.From,
		To:     q.To,
		Value:  value,
		Result: result,
	})
}
