package getorder

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
	"github.com/4dxrsh/ApnaMandi/internal/transport/http/converters"
	"github.com/4dxrsh/ApnaMandi/internal/transport/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	GetOrder(ctx context.Context, userID, orderID int64) (*order.Order, error)
}

// GetOrder returns one of the vendor's orders by id.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing authorization token", http.StatusUnauthorized)
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	o, err := service.GetOrder(r.Context(), userID, orderID)
	if err != nil {
		if errors.Is(err, ordersvc.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)

			return
		}
		http.Error(w, "Failed to get order", http.StatusInternalServerError)
		slog.Error("Error getting order", "error", err, "order_id", orderID)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(converters.OrderToResponse(*o)); err != nil {
		slog.Error("Error writing response for get order", "error", err)
	}
}
