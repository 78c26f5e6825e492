package earnings

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/4dxrsh/ApnaMandi/internal/service/services/partnersvc"
	"github.com/4dxrsh/ApnaMandi/internal/transport/http/converters"
)

// service is an interface for the service layer.
type service interface {
	Earnings(ctx context.Context) (*partnersvc.EarningsReport, error)
}

// Earnings reports delivered-order count and total partner earnings. The
// optional partnerId query parameter is accepted and ignored; earnings are
// not attributed per partner.
func Earnings(w http.ResponseWriter, r *http.Request, service service) {
	_ = r.URL.Query().Get("partnerId")

	report, err := service.Earnings(r.Context())
	if err != nil {
		http.Error(w, "Failed to compute earnings", http.StatusInternalServerError)
		slog.Error("Error computing earnings", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(converters.EarningsToResponse(*report)); err != nil {
		slog.Error("Error writing response for earnings", "error", err)
	}
}
