package storetest

import (
	"github.com/fekuna/omnipos-inventory-service/internal/alert"
	"github.com/fekuna/omnipos-inventory-service/internal/audit"
	"github.com/fekuna/omnipos-inventory-service/internal/inventory"
	"github.com/fekuna/omnipos-inventory-service/internal/order"
	"github.com/fekuna/omnipos-inventory-service/internal/product"
	"github.com/fekuna/omnipos-inventory-service/internal/purchase"
	"github.com/fekuna/omnipos-inventory-service/internal/sale"
	"github.com/fekuna/omnipos-inventory-service/internal/unitconversion"
	"github.com/fekuna/omnipos-inventory-service/pkg/database/postgres"
)

var (
	_ postgres.TxManager        = (*Store)(nil)
	_ inventory.Repository      = (*InventoryRepo)(nil)
	_ alert.StockReader         = (*InventoryRepo)(nil)
	_ alert.Repository          = (*AlertRepo)(nil)
	_ product.Repository        = (*ProductRepo)(nil)
	_ unitconversion.Repository = (*UnitRepo)(nil)
	_ order.Repository          = (*OrderRepo)(nil)
	_ sale.Repository           = (*SaleRepo)(nil)
	_ purchase.Repository       = (*PurchaseRepo)(nil)
	_ audit.Repository          = (*AuditRepo)(nil)
)
