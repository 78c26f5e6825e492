package procurementlist

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/4dxrsh/ApnaMandi/internal/service/models/procurement"
)

// service is an interface for the service layer.
type service interface {
	ProcurementList(ctx context.Context) ([]procurement.Line, error)
}

// ProcurementList returns aggregated outstanding demand per product across
// all PLACED orders.
func ProcurementList(w http.ResponseWriter, r *http.Request, service service) {
	lines, err := service.ProcurementList(r.Context())
	if err != nil {
		http.Error(w, "Failed to build procurement list", http.StatusInternalServerError)
		slog.Error("Error building procurement list", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(lines); err != nil {
		slog.Error("Error writing response for procurement list", "error", err)
	}
}
