package event

import (
	"time"

	"github.com/4dxrsh/ApnaMandi/internal/service/models/order"
)

// Routing keys for order lifecycle events published through the outbox.
const (
	RoutingKeyOrderPlaced        = "order.placed"
	RoutingKeyOrderStatusChanged = "order.status_changed"
	RoutingKeyOrderDelivered     = "order.delivered"
)

// OrderPlaced is emitted when a vendor places an order.
type OrderPlaced struct {
	OrderID    int64     `json:"orderId"`
	UserID     int64     `json:"userId"`
	TotalPaise int64     `json:"totalPaise"`
	OccurredAt time.Time `json:"occurredAt"`
}

// OrderStatusChanged is emitted on any status write, including the
// unguarded PATCH path.
type OrderStatusChanged struct {
	OrderID    int64        `json:"orderId"`
	Status     order.Status `json:"status"`
	OccurredAt time.Time    `json:"occurredAt"`
}

// OrderDelivered is emitted when a partner marks an order delivered.
type OrderDelivered struct {
	OrderID     int64     `json:"orderId"`
	DeliveredAt time.Time `json:"deliveredAt"`
}
