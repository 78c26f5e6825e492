package setprice

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/4dxrsh/ApnaMandi/internal/service/models/money"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/price"
	"github.com/4dxrsh/ApnaMandi/internal/service/services/partnersvc"
	"github.com/4dxrsh/ApnaMandi/internal/transport/http/converters"
)

// service is an interface for the service layer.
type service interface {
	SetPrice(ctx context.Context, productID int64, paise money.Paise) (*price.ProcurementPrice, error)
}

type request struct {
	ProductID int64  `json:"productId"`
	Price     string `json:"price"`
}

// SetPrice appends a procurement price row for a product.
func SetPrice(w http.ResponseWriter, r *http.Request, service service) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for set price", "error", err)

		return
	}

	paise, err := money.ParsePaise(req.Price)
	if err != nil {
		http.Error(w, "Invalid price", http.StatusBadRequest)
		return
	}

	inserted, err := service.SetPrice(r.Context(), req.ProductID, paise)
	if err != nil {
		if errors.Is(err, partnersvc.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)

			return
		}
		http.Error(w, "Failed to set price", http.StatusInternalServerError)
		slog.Error("Error setting procurement price", "error", err, "product_id", req.ProductID)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(converters.PriceToResponse(*inserted)); err != nil {
		slog.Error("Error writing response for set price", "error", err)
	}
}
