package product

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/internal/product/dto"
	"github.com/shopspring/decimal"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateCostPrice(ctx context.Context, id string, cost decimal.Decimal, at time.Time) error

	ListRecipe(ctx context.Context, productID string) ([]model.ProductIngredient, error)
	FindIngredientByID(ctx context.Context, id string) (*model.Ingredient, error)
}
