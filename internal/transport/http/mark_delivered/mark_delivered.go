package markdelivered

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/4dxrsh/ApnaMandi/internal/service/models/delivery"
	"github.com/4dxrsh/ApnaMandi/internal/service/services/partnersvc"
	"github.com/4dxrsh/ApnaMandi/internal/transport/http/converters"
	"github.com/4dxrsh/ApnaMandi/internal/transport/http/middleware/metrics"
)

// service is an interface for the service layer.
type service interface {
	MarkDelivered(ctx context.Context, orderID int64) (*delivery.Delivery, error)
}

type request struct {
	OrderID int64 `json:"orderId"`
}

// MarkDelivered records a delivery and flips the order to DELIVERED.
func MarkDelivered(w http.ResponseWriter, r *http.Request, service service) {
	success := false
	defer func() { metrics.RecordOrderOperation("mark_delivered", success) }()

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for mark delivered", "error", err)

		return
	}

	d, err := service.MarkDelivered(r.Context(), req.OrderID)
	if err != nil {
		if errors.Is(err, partnersvc.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)

			return
		}
		http.Error(w, "Failed to mark order delivered", http.StatusInternalServerError)
		slog.Error("Error marking order delivered", "error", err, "order_id", req.OrderID)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(converters.DeliveryToResponse(*d)); err != nil {
		slog.Error("Error writing response for mark delivered", "error", err)

		return
	}

	success = true
}
