package listorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/4dxrsh/ApnaMandi/internal/service/models/order"
	"github.com/4dxrsh/ApnaMandi/internal/transport/http/converters"
	"github.com/4dxrsh/ApnaMandi/internal/transport/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	GetOrders(ctx context.Context, userID int64) ([]order.Order, error)
}

// ListOrders returns the authenticated vendor's orders with items.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing authorization token", http.StatusUnauthorized)
		return
	}

	orders, err := service.GetOrders(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to list orders", http.StatusInternalServerError)
		slog.Error("Error listing orders", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(converters.OrdersToResponse(orders)); err != nil {
		slog.Error("Error writing response for list orders", "error", err)
	}
}
