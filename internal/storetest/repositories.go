package storetest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	alertdto "github.com/fekuna/omnipos-inventory-service/internal/alert/dto"
	inventorydto "github.com/fekuna/omnipos-inventory-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
	productdto "github.com/fekuna/omnipos-inventory-service/internal/product/dto"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

var errCheckViolation = &pgconn.PgError{Code: "23514", Message: "inventory current_stock check"}

type InventoryRepo struct{ s *Store }

func (s *Store) InventoryRepo() *InventoryRepo { return &InventoryRepo{s: s} }

func (r *InventoryRepo) get(op string, target model.StockTarget) (*model.Inventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(op); err != nil {
		return nil, err
	}
	inv, ok := r.s.data.inventory[target.String()]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r *InventoryRepo) GetByTarget(_ context.Context, target model.StockTarget) (*model.Inventory, error) {
	return r.get("GetByTarget", target)
}

func (r *InventoryRepo) GetByTargetForUpdate(_ context.Context, target model.StockTarget) (*model.Inventory, error) {
	return r.get("GetByTargetForUpdate", target)
}

func (r *InventoryRepo) BatchGetByProducts(_ context.Context, productIDs []string) ([]model.Inventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Inventory{}
	for _, id := range productIDs {
		if inv, ok := r.s.data.inventory[model.ProductTarget(id).String()]; ok {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *InventoryRepo) sorted() []model.Inventory {
	out := make([]model.Inventory, 0, len(r.s.data.inventory))
	for _, inv := range r.s.data.inventory {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *InventoryRepo) FindAll(_ context.Context, f *inventorydto.InventoryFilters) ([]model.Inventory, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("FindAll"); err != nil {
		return nil, 0, err
	}
	matched := []model.Inventory{}
	for _, inv := range r.sorted() {
		if f.ProductID != "" && (inv.ProductID == nil || *inv.ProductID != f.ProductID) {
			continue
		}
		if f.LowStock && !inv.IsLow() {
			continue
		}
		matched = append(matched, inv)
	}
	return paginate(matched, f.Page, f.PageSize), len(matched), nil
}

func (r *InventoryRepo) ListBelowMinimum(_ context.Context) ([]model.Inventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Inventory{}
	for _, inv := range r.sorted() {
		if inv.IsLow() {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *InventoryRepo) Upsert(_ context.Context, inv *model.Inventory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Upsert"); err != nil {
		return err
	}
	key := inv.Target().String()
	if existing, ok := r.s.data.inventory[key]; ok {
		existing.MinStockLevel = inv.MinStockLevel
		existing.LastUpdated = inv.LastUpdated
		r.s.data.inventory[key] = existing
		*inv = existing
		return nil
	}
	r.s.data.inventory[key] = *inv
	return nil
}

func (r *InventoryRepo) UpdateStock(_ context.Context, inv *model.Inventory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("UpdateStock"); err != nil {
		return err
	}
	if inv.CurrentStock < 0 {
		return errCheckViolation
	}
	for key, existing := range r.s.data.inventory {
		if existing.ID == inv.ID {
			existing.CurrentStock = inv.CurrentStock
			existing.LastUpdated = inv.LastUpdated
			r.s.data.inventory[key] = existing
			return nil
		}
	}
	return fmt.Errorf("update inventory %s: no row", inv.ID)
}

func (r *InventoryRepo) CreateTransaction(_ context.Context, t *model.StockTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("CreateTransaction"); err != nil {
		return err
	}
	r.s.data.transactions = append(r.s.data.transactions, *t)
	return nil
}

func (r *InventoryRepo) GetTransactionForUpdate(_ context.Context, id string) (*model.StockTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.data.transactions {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, nil
}

func (r *InventoryRepo) UpdateTransaction(_ context.Context, t *model.StockTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("UpdateTransaction"); err != nil {
		return err
	}
	for i := range r.s.data.transactions {
		if r.s.data.transactions[i].ID == t.ID {
			r.s.data.transactions[i] = *t
			return nil
		}
	}
	return fmt.Errorf("stock transaction %s: no row", t.ID)
}

func (r *InventoryRepo) ListTransactions(_ context.Context, f *inventorydto.TransactionFilters) ([]model.StockTransaction, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	matched := []model.StockTransaction{}
	for _, t := range r.s.data.transactions {
		target := t.Target()
		switch {
		case f.ProductID != "" && target.ProductID != f.ProductID,
			f.IngredientID != "" && target.IngredientID != f.IngredientID,
			f.TransactionType != "" && string(t.TransactionType) != strings.ToUpper(f.TransactionType),
			f.SourceType != "" && string(t.SourceType) != f.SourceType,
			f.StartDate != nil && t.TransactionDate.Before(*f.StartDate),
			f.EndDate != nil && t.TransactionDate.After(*f.EndDate):
			continue
		}
		matched = append(matched, t)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].TransactionDate.After(matched[j].TransactionDate)
	})
	return paginate(matched, f.Page, f.PageSize), len(matched), nil
}

type AlertRepo struct{ s *Store }

func (s *Store) AlertRepo() *AlertRepo { return &AlertRepo{s: s} }

func (r *AlertRepo) Create(_ context.Context, a *model.Alert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("CreateAlert"); err != nil {
		return err
	}
	r.s.data.alerts = append(r.s.data.alerts, *a)
	return nil
}

func (r *AlertRepo) FindByID(_ context.Context, id string) (*model.Alert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.data.alerts {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *AlertRepo) FindAll(_ context.Context, f *alertdto.AlertFilters) ([]model.Alert, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	matched := []model.Alert{}
	for _, a := range r.s.data.alerts {
		target := alertTarget(a)
		switch {
		case f.AlertType != "" && string(a.AlertType) != f.AlertType,
			f.ProductID != "" && target.ProductID != f.ProductID,
			f.IngredientID != "" && target.IngredientID != f.IngredientID,
			f.Acknowledged != nil && a.IsAcknowledged != *f.Acknowledged:
			continue
		}
		matched = append(matched, a)
	}
	return paginate(matched, f.Page, f.PageSize), len(matched), nil
}

func (r *AlertRepo) Acknowledge(_ context.Context, id, by string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.data.alerts {
		if r.s.data.alerts[i].ID == id {
			r.s.data.alerts[i].IsAcknowledged = true
			r.s.data.alerts[i].AcknowledgedBy = &by
			r.s.data.alerts[i].AcknowledgedAt = &at
			return nil
		}
	}
	return nil
}

func (r *AlertRepo) HasOpen(_ context.Context, alertType model.AlertType, target model.StockTarget) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.data.alerts {
		if a.AlertType == alertType && !a.IsAcknowledged && alertTarget(a) == target {
			return true, nil
		}
	}
	return false, nil
}

type ProductRepo struct{ s *Store }

func (s *Store) ProductRepo() *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("FindProduct"); err != nil {
		return nil, err
	}
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) FindAll(_ context.Context, f *productdto.ProductFilters) ([]model.Product, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	matched := []model.Product{}
	for _, p := range r.s.data.products {
		if f.IsActive != nil && p.IsActive != *f.IsActive {
			continue
		}
		q := strings.ToLower(f.SearchQuery)
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.SKU), q) {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return paginate(matched, f.Page, f.PageSize), len(matched), nil
}

func (r *ProductRepo) UpdateCostPrice(_ context.Context, id string, cost decimal.Decimal, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("UpdateCostPrice"); err != nil {
		return err
	}
	p, ok := r.s.data.products[id]
	if !ok {
		return fmt.Errorf("update cost price: product %s not found", id)
	}
	p.CostPrice = cost
	p.UpdatedAt = at
	r.s.data.products[id] = p
	return nil
}

func (r *ProductRepo) ListRecipe(_ context.Context, productID string) ([]model.ProductIngredient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]model.ProductIngredient{}, r.s.data.recipes[productID]...), nil
}

func (r *ProductRepo) FindIngredientByID(_ context.Context, id string) (*model.Ingredient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.data.ingredients[id]
	if !ok {
		return nil, nil
	}
	return &i, nil
}

type UnitRepo struct{ s *Store }

func (s *Store) UnitRepo() *UnitRepo { return &UnitRepo{s: s} }

func (r *UnitRepo) FindUnitByID(_ context.Context, id string) (*model.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.data.units[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UnitRepo) FindDirect(_ context.Context, from, to string) (*model.UnitConversion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("FindDirect"); err != nil {
		return nil, err
	}
	for _, c := range r.s.data.conversions {
		if c.FromUnitID == from && c.ToUnitID == to {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UnitRepo) FindPair(_ context.Context, a, b string) (*model.UnitConversion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.data.conversions {
		if (c.FromUnitID == a && c.ToUnitID == b) || (c.FromUnitID == b && c.ToUnitID == a) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UnitRepo) Create(_ context.Context, c *model.UnitConversion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.conversions {
		if (existing.FromUnitID == c.FromUnitID && existing.ToUnitID == c.ToUnitID) ||
			(existing.FromUnitID == c.ToUnitID && existing.ToUnitID == c.FromUnitID) {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_unit_conversion_pair"}
		}
	}
	r.s.data.conversions = append(r.s.data.conversions, *c)
	return nil
}

func (r *UnitRepo) FindAll(_ context.Context) ([]model.UnitConversion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]model.UnitConversion{}, r.s.data.conversions...), nil
}

type OrderRepo struct{ s *Store }

func (s *Store) OrderRepo() *OrderRepo { return &OrderRepo{s: s} }

func (r *OrderRepo) Create(_ context.Context, o *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("CreateOrder"); err != nil {
		return err
	}
	r.s.data.orders[o.ID] = *o
	return nil
}

func (r *OrderRepo) FindByID(_ context.Context, id string) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *OrderRepo) OrderIDForEvent(_ context.Context, eventID string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data.orderEvents[eventID], nil
}

func (r *OrderRepo) MarkEventProcessed(_ context.Context, eventID, orderID string, _ time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("MarkEventProcessed"); err != nil {
		return false, err
	}
	if _, seen := r.s.data.orderEvents[eventID]; seen {
		return false, nil
	}
	r.s.data.orderEvents[eventID] = orderID
	return true, nil
}

type SaleRepo struct{ s *Store }

func (s *Store) SaleRepo() *SaleRepo { return &SaleRepo{s: s} }

func (r *SaleRepo) Create(_ context.Context, sale *model.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("CreateSale"); err != nil {
		return err
	}
	r.s.data.sales[sale.ID] = *sale
	return nil
}

func (r *SaleRepo) FindByID(_ context.Context, id string) (*model.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale, ok := r.s.data.sales[id]
	if !ok {
		return nil, nil
	}
	return &sale, nil
}

type PurchaseRepo struct{ s *Store }

func (s *Store) PurchaseRepo() *PurchaseRepo { return &PurchaseRepo{s: s} }

func (r *PurchaseRepo) Create(_ context.Context, p *model.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("CreatePurchase"); err != nil {
		return err
	}
	r.s.data.purchases[p.ID] = *p
	return nil
}

func (r *PurchaseRepo) FindByID(_ context.Context, id string) (*model.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.purchases[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

type AuditRepo struct{ s *Store }

func (s *Store) AuditRepo() *AuditRepo { return &AuditRepo{s: s} }

func (r *AuditRepo) Create(_ context.Context, l *model.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("CreateAudit"); err != nil {
		return err
	}
	r.s.data.audit = append(r.s.data.audit, *l)
	return nil
}

func (r *AuditRepo) FindByEntity(_ context.Context, entityType, entityID string) ([]model.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.AuditLog{}
	for _, l := range r.s.data.audit {
		if l.EntityType == entityType && l.EntityID == entityID {
			out = append(out, l)
		}
	}
	return out, nil
}

// ErrInjected is a convenient failure for FailOn.
var ErrInjected = errors.New("injected failure")
