package handler

import (
	"github.com/fekuna/omnipos-inventory-service/internal/product"
	"github.com/fekuna/omnipos-inventory-service/internal/product/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/response"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
	debug  bool
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger, debug bool) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
		debug:  debug,
	}
}

func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
	}
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := response.UUIDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.uc.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err, h.debug)
		return
	}
	response.OK(c, "Product retrieved", p)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	var f dto.ProductFilters
	if err := c.ShouldBindQuery(&f); err != nil {
		response.BadRequest(c, err)
		return
	}
	f.Page, f.PageSize = response.PageParams(c)

	items, total, err := h.uc.ListProducts(c.Request.Context(), &f)
	if err != nil {
		response.Error(c, err, h.debug)
		return
	}
	response.OK(c, "Products retrieved", response.Page{
		Items:    items,
		Total:    total,
		Page:     f.Page,
		PageSize: f.PageSize,
	})
}
