package orderitem

import (
	"time"

	"github.com/4dxrsh/ApnaMandi/internal/service/models/money"
)

// OrderItem represents one line of an order. PricePaise is the procurement
// price snapshot taken when the order was placed; later price updates do not
// touch it.
type OrderItem struct {
	ID         int64       `json:"id"`
	OrderID    int64       `json:"orderId"`
	ProductID  int64       `json:"productId"`
	Quantity   int         `json:"quantity"`
	PricePaise money.Paise `json:"pricePaise"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Subtotal is the line's contribution to the order total.
func (i OrderItem) Subtotal() money.Paise {
	return i.PricePaise.Mul(i.Quantity)
}
