package updatestatus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/4dxrsh/ApnaMandi/internal/service/models/order"
	"github.com/4dxrsh/ApnaMandi/internal/service/services/ordersvc"
	"github.com/4dxrsh/ApnaMandi/internal/transport/http/middleware/metrics"
)

// service is an interface for the service layer.
type service interface {
	UpdateStatus(ctx context.Context, orderID int64, status order.Status) error
}

type request struct {
	Status string `json:"status"`
}

// UpdateStatus overwrites an order's status. Unknown status strings are
// rejected; transition ordering is not checked.
func UpdateStatus(w http.ResponseWriter, r *http.Request, service service) {
	success := false
	defer func() { metrics.RecordOrderOperation("update_status", success) }()

	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for update status", "error", err)

		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		http.Error(w, "Unknown order status", http.StatusBadRequest)
		return
	}

	if err := service.UpdateStatus(r.Context(), orderID, status); err != nil {
		if errors.Is(err, ordersvc.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)

			return
		}
		http.Error(w, "Failed to update order status", http.StatusInternalServerError)
		slog.Error("Error updating order status", "error", err, "order_id", orderID)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"orderId": orderID, "status": status.String()}); err != nil {
		slog.Error("Error writing response for update status", "error", err)

		return
	}

	success = true
}
