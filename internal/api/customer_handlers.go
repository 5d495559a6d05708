package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ignite/customer-onboarding/internal/domain"
	"github.com/ignite/customer-onboarding/internal/pkg/httputil"
	"github.com/ignite/customer-onboarding/internal/pkg/logger"
	"github.com/ignite/customer-onboarding/internal/service/customer"
)

// createCustomerRequest is the POST /customers body. It has no id field, so
// whatever id a client sends is dropped during decoding.
type createCustomerRequest struct {
	BusinessName string   `json:"businessName"`
	PhoneNumber  string   `json:"phoneNumber"`
	Website      string   `json:"website"`
	Documents    []string `json:"documents"`
}

func (req createCustomerRequest) customer() domain.Customer {
	return domain.Customer{
		BusinessName: req.BusinessName,
		PhoneNumber:  req.PhoneNumber,
		Website:      req.Website,
		Documents:    req.Documents,
	}
}

// CreateCustomer onboards a new customer. Any id in the body is ignored.
//
//	POST /customers
func (h *Handlers) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	c := req.customer()
	if !validate(w, c.Validate()) {
		return
	}

	created, err := h.customers.CreateCustomer(r.Context(), &c)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	logger.Info("customer created", "customer_id", created.ID, "phoneNumber", created.PhoneNumber)
	httputil.OK(w, created)
}

// GetCustomer returns a customer by id.
//
//	GET /customers/{id}
func (h *Handlers) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		httputil.BadRequest(w, "customer id must be a positive integer")
		return
	}

	c, err := h.customers.GetCustomerByID(r.Context(), id)
	if errors.Is(err, customer.ErrNotFound) {
		httputil.NotFound(w, "customer not found")
		return
	}
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	httputil.OK(w, c)
}

// validate writes a 400 and returns false when err carries field errors.
func validate(w http.ResponseWriter, err error) bool {
	if err == nil {
		return true
	}
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		httputil.ValidationFailed(w, verrs)
		return false
	}
	httputil.BadRequest(w, err.Error())
	return false
}
