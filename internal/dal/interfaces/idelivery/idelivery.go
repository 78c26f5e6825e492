package idelivery

import (
	"context"

	"github.com/4dxrsh/ApnaMandi/internal/service/models/delivery"
)

// IDeliveryRepository is an interface for the delivery postgres repository.
type IDeliveryRepository interface {
	Insert(ctx context.Context, d delivery.Delivery) (delivery.Delivery, error)
}
