package api

import (
	"net/http"

	"github.com/ignite/customer-onboarding/internal/pkg/httputil"
)

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// HealthCheck is a liveness probe. It is the only route open to anonymous
// callers.
//
//	GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, HealthStatus{Status: "ok", Storage: h.storageType})
}
