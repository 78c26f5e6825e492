package iprice

import (
	"context"

	"github.com/4dxrsh/ApnaMandi/internal/service/models/price"
)

// IPriceRepository is an interface for the procurement price postgres repository.
type IPriceRepository interface {
	// Insert appends a new price row; rows are never updated in place.
	Insert(ctx context.Context, p price.ProcurementPrice) (price.ProcurementPrice, error)

	// EffectivePrices returns the latest row per product (greatest set_at,
	// ties broken by greatest id).
	EffectivePrices(ctx context.Context) ([]price.ProcurementPrice, error)
}
