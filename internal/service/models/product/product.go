package product

import (
	"github.com/4dxrsh/ApnaMandi/internal/service/models/money"
)

// Product represents a catalog item vendors can order.
type Product struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// WithPrice is a product together with its current effective procurement
// price. HasPrice is false when no price row exists for the product yet.
type WithPrice struct {
	Product
	PricePaise money.Paise `json:"-"`
	HasPrice   bool        `json:"-"`
}
