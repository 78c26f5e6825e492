package iorderitem

import (
	"context"

	"github.com/4dxrsh/ApnaMandi/internal/service/models/orderitem"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/procurement"
)

// IOrderItemRepository is an interface for the order item postgres repository.
type IOrderItemRepository interface {
	BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error)
	Query(ctx context.Context, filter *orderitem.QueryOrderItemsModel) ([]orderitem.OrderItem, error)
	QueryPlacedDemand(ctx context.Context) ([]procurement.DemandRow, error)
}
