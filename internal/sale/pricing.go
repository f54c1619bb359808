package sale

import (
	"fmt"

	"github.com/fekuna/omnipos-inventory-service/internal/apperror"
	"github.com/shopspring/decimal"
)

// LineTotal is price*qty minus discount. field names the line in errors.
func LineTotal(price decimal.Decimal, qty int64, discount decimal.Decimal, field string) (decimal.Decimal, error) {
	gross := price.Mul(decimal.NewFromInt(qty))
	if discount.IsNegative() {
		return decimal.Zero, apperror.ValidationFailed(apperror.FieldError{
			Field: field + ".discount", Message: "must not be negative",
		})
	}
	if discount.GreaterThan(gross) {
		return decimal.Zero, apperror.ValidationFailed(apperror.FieldError{
			Field: field + ".discount", Message: fmt.Sprintf("must not exceed the line amount %s", gross.StringFixed(2)),
		})
	}
	return gross.Sub(discount), nil
}

// Cost is the cost of goods for qty units at the given unit cost.
func Cost(unitCost decimal.Decimal, qty int64) decimal.Decimal {
	return unitCost.Mul(decimal.NewFromInt(qty))
}
