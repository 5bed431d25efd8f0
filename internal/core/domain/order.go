package domain

import (
	"errors"
	"fmt"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions: forward
// progression only, plus cancellation from any non-terminal state. Delivered
// and cancelled are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
}

var ErrOrderNotFound = errors.New("order not found")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrInvalidStatus = errors.New("invalid order status")
var ErrOrderEmptyBooks = errors.New("order must reference at least one book")
var ErrForbidden = errors.New("access forbidden")

// IsValid reports whether s is one of the five defined status values.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is the core aggregate. OrderValue is a snapshot: it holds the sum of
// the referenced book prices as of the last time the book set was written,
// and is never recomputed on read.
type Order struct {
	ID         string      `json:"id" bson:"_id,omitempty"`
	OrderDate  time.Time   `json:"order_date" bson:"order_date"`
	OrderValue float64     `json:"order_value" bson:"order_value"`
	BookIDs    []string    `json:"book_ids" bson:"books"`
	CustomerID string      `json:"customer_id" bson:"customer"`
	Status     OrderStatus `json:"status" bson:"status"`
	CreatedAt  time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" bson:"updated_at"`
}

// OrderEvent records a single status transition for the audit trail.
type OrderEvent struct {
	OrderID   string
	From      OrderStatus
	To        OrderStatus
	ActorID   string
	Timestamp time.Time
}

// ReferenceError reports a dangling entity reference inside a request, e.g.
// an order that names a book id not present in the catalog.
type ReferenceError struct {
	Entity string
	ID     string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %s does not exist", e.Entity, e.ID)
}
