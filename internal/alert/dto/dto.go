package dto

type AlertFilters struct {
	AlertType    string `form:"alert_type"`
	ProductID    string `form:"product_id" binding:"omitempty,uuid"`
	IngredientID string `form:"ingredient_id" binding:"omitempty,uuid"`
	Acknowledged *bool  `form:"acknowledged"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
}

type AcknowledgeAlertInput struct {
	ID    string `json:"id" validate:"required,uuid"`
	Actor string `json:"-" validate:"required"`
}
