package api

import (
	"net/http"

	"github.com/ignite/customer-onboarding/internal/domain"
	"github.com/ignite/customer-onboarding/internal/pkg/httputil"
)

// ScheduleAppointment validates the request and echoes it back. Nothing is
// stored and the customer id is not looked up.
//
//	POST /appointments
func (h *Handlers) ScheduleAppointment(w http.ResponseWriter, r *http.Request) {
	var req domain.AppointmentRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if !validate(w, req.Validate()) {
		return
	}

	httputil.OK(w, req)
}
