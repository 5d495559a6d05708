package customer

import (
	"context"

	"github.com/ignite/customer-onboarding/internal/domain"
)

// Service implements customer onboarding. It is safe for concurrent use and
// holds no state beyond its repository.
type Service struct {
	repo Repository
}

// NewService creates a customer service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateCustomer stores a new customer and returns it with its assigned ID.
func (s *Service) CreateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	return s.repo.Save(ctx, c)
}

// GetCustomerByID returns the customer with the given ID, or ErrNotFound.
func (s *Service) GetCustomerByID(ctx context.Context, id uint64) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}
