package ports

import (
	"context"

	"github.com/pagebound/bookstore-api/internal/core/domain"
)

// CreateOrderInput carries all data needed to place an order. CustomerID is
// honoured for admin callers only; for everyone else the order is created
// for the caller's own identity regardless of the supplied value.
type CreateOrderInput struct {
	BookIDs    []string
	CustomerID string
}

// OrderService defines order use cases: placement with snapshot pricing,
// book-set replacement with repricing, and the status lifecycle.
type OrderService interface {
	Create(ctx context.Context, p domain.Principal, input CreateOrderInput) (*domain.Order, error)
	Get(ctx context.Context, p domain.Principal, id string) (*domain.Order, error)
	List(ctx context.Context, p domain.Principal) ([]*domain.Order, error)
	ListByCustomer(ctx context.Context, p domain.Principal, customerID string) ([]*domain.Order, error)
	ReplaceBooks(ctx context.Context, p domain.Principal, id string, bookIDs []string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, p domain.Principal, id string, status string) (*domain.Order, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
}
