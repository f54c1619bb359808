package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	alertusecase "github.com/fekuna/omnipos-inventory-service/internal/alert/usecase"
	auditusecase "github.com/fekuna/omnipos-inventory-service/internal/audit/usecase"
	"github.com/fekuna/omnipos-inventory-service/internal/auth"
	inventoryusecase "github.com/fekuna/omnipos-inventory-service/internal/inventory/usecase"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/internal/storetest"
	"github.com/fekuna/omnipos-inventory-service/pkg/clock"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fries = model.ProductTarget(storetest.ID("fries"))

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func setup(t *testing.T) (*gin.Engine, *storetest.Store) {
	t.Helper()
	store := storetest.New()
	clk := clock.NewFixed(time.Date(2026, 5, 5, 10, 0, 0, 0, time.UTC))
	log := logger.NewNop()

	alerts := alertusecase.NewAlertUseCase(store.AlertRepo(), store.InventoryRepo(), clk, log)
	sink := auditusecase.NewAuditSink(store.AuditRepo(), clk)
	uc := inventoryusecase.NewInventoryUseCase(store.InventoryRepo(), store, alerts, sink, clk, log)

	r := gin.New()
	api := r.Group("/api/v1", func(c *gin.Context) {
		c.Request = c.Request.WithContext(auth.WithActor(c.Request.Context(), "manager-1"))
	})
	NewInventoryHandler(uc, log, false).RegisterRoutes(api)
	return r, store
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestCreateStockTransaction(t *testing.T) {
	r, store := setup(t)
	store.SetStock(fries, 10, 0)

	w, env := do(t, r, http.MethodPost, "/api/v1/stock-transactions",
		`{"product_id":"`+fries.ProductID+`","transaction_type":"OUT","quantity":3}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, int64(7), store.Stock(fries))

	var tx model.StockTransaction
	require.NoError(t, json.Unmarshal(env.Data, &tx))
	assert.Equal(t, "manager-1", tx.CreatedBy)
}

func TestCreateStockTransaction_Errors(t *testing.T) {
	r, store := setup(t)
	store.SetStock(fries, 2, 0)

	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"overdraw", `{"product_id":"`+fries.ProductID+`","transaction_type":"OUT","quantity":3}`, http.StatusUnprocessableEntity, "INSUFFICIENT_STOCK"},
		{"zero quantity", `{"product_id":"`+fries.ProductID+`","transaction_type":"OUT","quantity":0}`, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"malformed", `{"product_id":`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"malformed product id", `{"product_id":"p-fries","transaction_type":"IN","quantity":1}`, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"malformed ingredient id", `{"ingredient_id":"flour","transaction_type":"IN","quantity":1}`, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"unknown target", `{"product_id":"`+storetest.ID("none")+`","transaction_type":"IN","quantity":1}`, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := do(t, r, http.MethodPost, "/api/v1/stock-transactions", tc.body)
			assert.Equal(t, tc.status, w.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tc.code, env.Code)
		})
	}
	assert.Equal(t, int64(2), store.Stock(fries))
}

func TestUpdateStockTransaction(t *testing.T) {
	r, store := setup(t)
	store.SetStock(fries, 10, 0)

	_, env := do(t, r, http.MethodPost, "/api/v1/stock-transactions",
		`{"product_id":"`+fries.ProductID+`","transaction_type":"IN","quantity":5}`)
	var tx model.StockTransaction
	require.NoError(t, json.Unmarshal(env.Data, &tx))
	assert.Equal(t, int64(15), store.Stock(fries))

	w, _ := do(t, r, http.MethodPut, "/api/v1/stock-transactions/"+tx.ID,
		`{"transaction_type":"OUT","quantity":1}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(9), store.Stock(fries))

	w, env = do(t, r, http.MethodPut, "/api/v1/stock-transactions/42", `{"transaction_type":"OUT","quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", env.Code)
	assert.Equal(t, int64(9), store.Stock(fries))
}

func TestUpsertAndReadInventory(t *testing.T) {
	r, _ := setup(t)

	w, _ := do(t, r, http.MethodPut, "/api/v1/inventory",
		`{"product_id":"`+fries.ProductID+`","min_stock_level":5,"initial_stock":3}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := do(t, r, http.MethodGet, "/api/v1/inventory/products/"+fries.ProductID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var inv model.Inventory
	require.NoError(t, json.Unmarshal(env.Data, &inv))
	assert.Equal(t, int64(3), inv.CurrentStock)

	w, env = do(t, r, http.MethodGet, "/api/v1/inventory/low-stock?page=1&page_size=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []model.Inventory `json:"items"`
		Total int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 1, page.Total)

	w, _ = do(t, r, http.MethodGet, "/api/v1/inventory/products/"+storetest.ID("other"), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = do(t, r, http.MethodGet, "/api/v1/inventory/products/p-other", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", env.Code)
}

func TestListTransactions(t *testing.T) {
	r, store := setup(t)
	store.SetStock(fries, 10, 0)
	do(t, r, http.MethodPost, "/api/v1/stock-transactions", `{"product_id":"`+fries.ProductID+`","transaction_type":"OUT","quantity":1}`)
	do(t, r, http.MethodPost, "/api/v1/stock-transactions", `{"product_id":"`+fries.ProductID+`","transaction_type":"IN","quantity":4}`)

	w, _ := do(t, r, http.MethodGet, "/api/v1/stock-transactions?product_id=fries", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := do(t, r, http.MethodGet, "/api/v1/stock-transactions?transaction_type=IN", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []model.StockTransaction `json:"items"`
		Total int                      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(4), page.Items[0].Quantity)
}
