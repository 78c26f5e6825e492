package createorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/4dxrsh/ApnaMandi/internal/service/models/order"
	"github.com/4dxrsh/ApnaMandi/internal/service/services/ordersvc"
	"github.com/4dxrsh/ApnaMandi/internal/transport/http/converters"
	"github.com/4dxrsh/ApnaMandi/internal/transport/http/middleware/auth"
	"github.com/4dxrsh/ApnaMandi/internal/transport/http/middleware/metrics"
)

// service is an interface for the service layer.
type service interface {
	PlaceOrder(ctx context.Context, userID int64, items []ordersvc.PlaceOrderItem) (*order.Order, error)
}

type request struct {
	Items []struct {
		ProductID int64 `json:"productId"`
		Quantity  int   `json:"quantity"`
	} `json:"items"`
}

// PlaceOrder handles the place order request.
func PlaceOrder(w http.ResponseWriter, r *http.Request, service service) {
	success := false
	defer func() { metrics.RecordOrderOperation("create", success) }()

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing authorization token", http.StatusUnauthorized)
		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for place order", "error", err)

		return
	}

	items := make([]ordersvc.PlaceOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ordersvc.PlaceOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	created, err := service.PlaceOrder(r.Context(), userID, items)
	if err != nil {
		if errors.Is(err, ordersvc.ErrEmptyOrder) || errors.Is(err, ordersvc.ErrInvalidQuantity) {
			http.Error(w, err.Error(), http.StatusBadRequest)

			return
		}
		http.Error(w, "Failed to place order", http.StatusInternalServerError)
		slog.Error("Error placing order", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(converters.OrderToResponse(*created)); err != nil {
		slog.Error("Error writing response for place order", "error", err)

		return
	}

	success = true
}
