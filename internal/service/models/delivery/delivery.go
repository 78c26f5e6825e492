package delivery

import "time"

// Delivery records a partner marking an order delivered.
type Delivery struct {
	ID          int64     `json:"id"`
	OrderID     int64     `json:"orderId"`
	DeliveredAt time.Time `json:"deliveredAt"`
}
