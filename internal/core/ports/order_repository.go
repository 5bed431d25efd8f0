package ports

import (
	"context"
	"time"

	"github.com/pagebound/bookstore-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	// ReplaceBooks writes the new book set together with its snapshot value
	// in a single document update, so no reader can observe the new set with
	// a stale order_value.
	ReplaceBooks(ctx context.Context, id string, bookIDs []string, orderValue float64, updatedAt time.Time) error
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// OrderEventRepository persists status transitions to the audit trail.
type OrderEventRepository interface {
	Insert(ctx context.Context, event *domain.OrderEvent) error
}

// OrderEventSink receives transition events for asynchronous recording.
type OrderEventSink interface {
	Enqueue(event domain.OrderEvent)
}
