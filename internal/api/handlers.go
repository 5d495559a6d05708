package api

import (
	"github.com/ignite/customer-onboarding/internal/service/customer"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	customers   *customer.Service
	storageType string
}

// NewHandlers creates a new Handlers instance
func NewHandlers(customers *customer.Service, storageType string) *Handlers {
	return &Handlers{
		customers:   customers,
		storageType: storageType,
	}
}
