package customer

import (
	"context"

	"github.com/ignite/customer-onboarding/internal/domain"
)

// Repository defines the identity store contract for customers.
type Repository interface {
	// Save assigns the next identifier to c, overwriting any caller supplied
	// ID, stores it and returns it. Identifiers start at 1, are strictly
	// increasing and are never handed out twice, even under concurrent calls.
	// The record is visible to FindByID as soon as Save returns.
	Save(ctx context.Context, c *domain.Customer) (*domain.Customer, error)

	// FindByID returns the stored customer or ErrNotFound.
	FindByID(ctx context.Context, id uint64) (*domain.Customer, error)
}
