package audit

import "context"

const (
	ActionOrderCreated            = "OrderCreated"
	ActionSaleCreated             = "SaleCreated"
	ActionPurchaseReceived        = "PurchaseReceived"
	ActionStockTransactionCreated = "StockTransactionCreated"
	ActionStockTransactionUpdated = "StockTransactionUpdated"
	ActionInventoryUpserted       = "InventoryUpserted"
	ActionUnitConversionCreated   = "UnitConversionCreated"
	ActionAlertAcknowledged       = "AlertAcknowledged"
)

type Entry struct {
	Action      string
	EntityType  string
	EntityID    string
	PerformedBy string
	Details     any
}

// Sink records audit entries. It joins the caller's transaction when one is open.
type Sink interface {
	Record(ctx context.Context, e Entry) error
}
