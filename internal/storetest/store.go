// Package storetest provides an in-memory implementation of every repository
// plus a transaction manager that restores a snapshot on rollback.
package storetest

import (
	"context"
	"database/sql"
	"sync"

	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/shopspring/decimal"
)

type state struct {
	units        map[string]model.Unit
	products     map[string]model.Product
	ingredients  map[string]model.Ingredient
	recipes      map[string][]model.ProductIngredient
	conversions  []model.UnitConversion
	inventory    map[string]model.Inventory
	transactions []model.StockTransaction
	alerts       []model.Alert
	orders       map[string]model.Order
	orderEvents  map[string]string
	sales        map[string]model.Sale
	purchases    map[string]model.Purchase
	audit        []model.AuditLog
}

func newState() *state {
	return &state{
		units:       map[string]model.Unit{},
		products:    map[string]model.Product{},
		ingredients: map[string]model.Ingredient{},
		recipes:     map[string][]model.ProductIngredient{},
		inventory:   map[string]model.Inventory{},
		orders:      map[string]model.Order{},
		orderEvents: map[string]string{},
		sales:       map[string]model.Sale{},
		purchases:   map[string]model.Purchase{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *state) clone() *state {
	recipes := make(map[string][]model.ProductIngredient, len(s.recipes))
	for k, v := range s.recipes {
		recipes[k] = append([]model.ProductIngredient(nil), v...)
	}
	return &state{
		units:        cloneMap(s.units),
		products:     cloneMap(s.products),
		ingredients:  cloneMap(s.ingredients),
		recipes:      recipes,
		conversions:  append([]model.UnitConversion(nil), s.conversions...),
		inventory:    cloneMap(s.inventory),
		transactions: append([]model.StockTransaction(nil), s.transactions...),
		alerts:       append([]model.Alert(nil), s.alerts...),
		orders:       cloneMap(s.orders),
		orderEvents:  cloneMap(s.orderEvents),
		sales:        cloneMap(s.sales),
		purchases:    cloneMap(s.purchases),
		audit:        append([]model.AuditLog(nil), s.audit...),
	}
}

type txKey struct{}

type Store struct {
	txMu     sync.Mutex
	mu       sync.Mutex
	data     *state
	failures map[string]error

	Commits   int
	Rollbacks int
}

func New() *Store {
	return &Store{data: newState(), failures: map[string]error{}}
}

// WithinTx serializes units of work and restores the pre-transaction state
// when fn fails. Nested calls join the open unit of work.
func (s *Store) WithinTx(ctx context.Context, _ sql.IsolationLevel, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.Rollbacks++
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.Commits++
	s.mu.Unlock()
	return nil
}

// FailOn makes the named repository operation return err until cleared with a nil err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// fail must be called with s.mu held.
func (s *Store) fail(op string) error {
	return s.failures[op]
}

func (s *Store) AddUnit(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.units[id] = model.Unit{ID: id, Name: name, Abbreviation: name}
}

func (s *Store) AddProduct(p model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.products[p.ID] = p
}

func (s *Store) AddIngredient(i model.Ingredient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.ingredients[i.ID] = i
}

func (s *Store) AddRecipeLine(pi model.ProductIngredient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.recipes[pi.ProductID] = append(s.data.recipes[pi.ProductID], pi)
}

func (s *Store) AddConversion(c model.UnitConversion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.conversions = append(s.data.conversions, c)
}

// SetStock creates or overwrites the inventory row of target.
func (s *Store) SetStock(target model.StockTarget, current, minLevel int64) model.Inventory {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.data.inventory[target.String()]
	if !ok {
		inv = model.Inventory{
			ID:           "inv-" + target.ID(),
			ProductID:    target.ProductPtr(),
			IngredientID: target.IngredientPtr(),
			InitialStock: current,
		}
	}
	inv.CurrentStock = current
	inv.MinStockLevel = minLevel
	s.data.inventory[target.String()] = inv
	return inv
}

// Stock returns the current stock of target, or -1 when it has no row.
func (s *Store) Stock(target model.StockTarget) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.data.inventory[target.String()]
	if !ok {
		return -1
	}
	return inv.CurrentStock
}

func (s *Store) CostPrice(productID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.products[productID].CostPrice
}

func (s *Store) Transactions() []model.StockTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.StockTransaction(nil), s.data.transactions...)
}

func (s *Store) Alerts() []model.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Alert(nil), s.data.alerts...)
}

// AlertsOfType counts alerts of t raised for target.
func (s *Store) AlertsOfType(t model.AlertType, target model.StockTarget) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.data.alerts {
		if a.AlertType == t && alertTarget(a) == target {
			n++
		}
	}
	return n
}

func (s *Store) AuditLogs() []model.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.AuditLog(nil), s.data.audit...)
}

func (s *Store) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.orders)
}

func (s *Store) SaleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.sales)
}

func (s *Store) PurchaseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.purchases)
}

func alertTarget(a model.Alert) model.StockTarget {
	if a.IngredientID != nil {
		return model.IngredientTarget(*a.IngredientID)
	}
	if a.ProductID != nil {
		return model.ProductTarget(*a.ProductID)
	}
	return model.StockTarget{}
}

func paginate[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
