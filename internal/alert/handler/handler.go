package handler

import (
	"github.com/fekuna/omnipos-inventory-service/internal/alert"
	"github.com/fekuna/omnipos-inventory-service/internal/alert/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/auth"
	"github.com/fekuna/omnipos-inventory-service/internal/response"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	uc     alert.UseCase
	logger logger.ZapLogger
	debug  bool
}

func NewAlertHandler(uc alert.UseCase, log logger.ZapLogger, debug bool) *AlertHandler {
	return &AlertHandler{uc: uc, logger: log, debug: debug}
}

func (h *AlertHandler) RegisterRoutes(rg *gin.RouterGroup) {
	alerts := rg.Group("/alerts")
	{
		alerts.GET("", h.ListAlerts)
		alerts.POST("/:id/acknowledge", h.Acknowledge)
	}
}

func (h *AlertHandler) ListAlerts(c *gin.Context) {
	var f dto.AlertFilters
	if err := c.ShouldBindQuery(&f); err != nil {
		response.BadRequest(c, err)
		return
	}
	f.Page, f.PageSize = response.PageParams(c)

	items, total, err := h.uc.ListAlerts(c.Request.Context(), &f)
	if err != nil {
		response.Error(c, err, h.debug)
		return
	}
	response.OK(c, "Alerts retrieved", response.Page{
		Items:    items,
		Total:    total,
		Page:     f.Page,
		PageSize: f.PageSize,
	})
}

func (h *AlertHandler) Acknowledge(c *gin.Context) {
	a, err := h.uc.Acknowledge(c.Request.Context(), &dto.AcknowledgeAlertInput{
		ID:    c.Param("id"),
		Actor: auth.GetActor(c.Request.Context()),
	})
	if err != nil {
		response.Error(c, err, h.debug)
		return
	}
	response.OK(c, "Alert acknowledged", a)
}
