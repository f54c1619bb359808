package inventory_test

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-inventory-service/internal/apperror"
	"github.com/fekuna/omnipos-inventory-service/internal/inventory"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/internal/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAvailability(t *testing.T) {
	store := storetest.New()
	store.AddProduct(model.Product{BaseModel: model.BaseModel{ID: "p1"}, Name: "Burger"})
	store.AddProduct(model.Product{BaseModel: model.BaseModel{ID: "p2"}, Name: "Fries"})
	store.AddProduct(model.Product{BaseModel: model.BaseModel{ID: "p3"}, Name: "Shake"})
	store.SetStock(model.ProductTarget("p1"), 5, 0)
	store.SetStock(model.ProductTarget("p2"), 2, 0)

	ctx := context.Background()
	products := store.ProductRepo()
	repo := store.InventoryRepo()

	got, err := inventory.CheckAvailability(ctx, products, repo, []inventory.Line{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 2},
		{ProductID: "p1", Quantity: 3},
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Burger", got[2].Product.Name)
	assert.Equal(t, int64(3), got[2].Quantity)

	_, err = inventory.CheckAvailability(ctx, products, repo, []inventory.Line{
		{ProductID: "p1", Quantity: 3},
		{ProductID: "p1", Quantity: 3},
	})
	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)

	_, err = inventory.CheckAvailability(ctx, products, repo, []inventory.Line{{ProductID: "ghost", Quantity: 1}})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = inventory.CheckAvailability(ctx, products, repo, []inventory.Line{{ProductID: "p3", Quantity: 1}})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Contains(t, err.Error(), "Shake")
}
