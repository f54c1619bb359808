package dto

import "github.com/fekuna/omnipos-inventory-service/internal/model"

type ProductFilters struct {
	IsActive    *bool  `form:"is_active"`
	SearchQuery string `form:"q"` // name or sku
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}

// ProductDetail is a product together with the recipe consumed per unit sold.
type ProductDetail struct {
	model.Product
	Recipe []model.ProductIngredient `json:"recipe"`
}
