package dto

import "time"

type InventoryFilters struct {
	ProductID string
	LowStock  bool
	Page      int
	PageSize  int
}

type TransactionFilters struct {
	ProductID       string     `form:"product_id" binding:"omitempty,uuid"`
	IngredientID    string     `form:"ingredient_id" binding:"omitempty,uuid"`
	TransactionType string     `form:"transaction_type"`
	SourceType      string     `form:"source_type"`
	StartDate       *time.Time `form:"start_date" time_format:"2006-01-02T15:04:05Z07:00"`
	EndDate         *time.Time `form:"end_date" time_format:"2006-01-02T15:04:05Z07:00"`
	Page            int        `form:"page"`
	PageSize        int        `form:"page_size"`
}
