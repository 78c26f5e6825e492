package listproducts

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/4dxrsh/ApnaMandi/internal/service/models/product"
	"github.com/4dxrsh/ApnaMandi/internal/transport/http/converters"
)

// service is an interface for the service layer.
type service interface {
	ListProducts(ctx context.Context) ([]product.WithPrice, error)
}

// ListProducts returns the catalog with current effective prices.
func ListProducts(w http.ResponseWriter, r *http.Request, service service) {
	products, err := service.ListProducts(r.Context())
	if err != nil {
		http.Error(w, "Failed to list products", http.StatusInternalServerError)
		slog.Error("Error listing products", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(converters.ProductsToResponse(products)); err != nil {
		slog.Error("Error writing response for list products", "error", err)
	}
}
