package v1

import (
	"context"
	"net/http"
	"time"

	"storefront-backend/pkg/utils"
)

type HealthHandler struct {
	catalog string
	ping    func(ctx context.Context) error
}

// NewHealthHandler reports which catalog backend is in use. ping may be nil
// when there is no database to check.
func NewHealthHandler(catalog string, ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{catalog: catalog, ping: ping}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{"status": "ok", "catalog": h.catalog}
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			body["status"] = "degraded"
			body["db"] = "unreachable"
			utils.WriteJSON(w, http.StatusServiceUnavailable, body)
			return
		}
		body["db"] = "connected"
	}
	utils.WriteJSON(w, http.StatusOK, body)
}
