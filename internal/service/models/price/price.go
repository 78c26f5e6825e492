package price

import (
	"time"

	"github.com/4dxrsh/ApnaMandi/internal/service/models/money"
)

// ProcurementPrice is one append-only price row for a product. Rows are
// never updated; the effective price per product is the row with the
// greatest SetAt, ties broken by the greatest ID.
type ProcurementPrice struct {
	ID         int64       `json:"id"`
	ProductID  int64       `json:"productId"`
	PricePaise money.Paise `json:"pricePaise"`
	SetAt      time.Time   `json:"setAt"`
}
