package order

import (
	"time"

	"github.com/4dxrsh/ApnaMandi/internal/service/models/money"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/orderitem"
)

// Order represents a vendor's order in the system.
type Order struct {
	ID         int64                 `json:"id"`
	UserID     int64                 `json:"userId"`
	Status     Status                `json:"status"`
	TotalPaise money.Paise           `json:"totalPaise"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
	OrderItems []orderitem.OrderItem `json:"orderItems"`
}
