package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/pagebound/bookstore-api/internal/api/metrics"
	"github.com/pagebound/bookstore-api/internal/core/domain"
	"github.com/pagebound/bookstore-api/internal/core/ports"
)

// OrderService implements order placement, snapshot pricing, the status
// lifecycle, and the per-order authorization checks.
type OrderService struct {
	orders ports.OrderRepository
	books  ports.BookRepository
	users  ports.UserRepository
	events ports.OrderEventSink
	logger zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, books ports.BookRepository, users ports.UserRepository, events ports.OrderEventSink, logger zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, books: books, users: users, events: events, logger: logger}
}

// Create places a new order. The caller's identity is forced as the customer
// unless the caller is an admin supplying an explicit customer id; the order
// value snapshot is computed before the insert.
func (s *OrderService) Create(ctx context.Context, p domain.Principal, input ports.CreateOrderInput) (*domain.Order, error) {
	if !domain.Authorize(p, domain.ActionCreateOrder, domain.Resource{}) {
		return nil, s.deny(domain.ActionCreateOrder)
	}

	customerID := p.UserID
	if p.IsAdmin() && input.CustomerID != "" {
		if _, err := s.users.FindByID(ctx, input.CustomerID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, &domain.ReferenceError{Entity: "customer", ID: input.CustomerID}
			}
			return nil, err
		}
		customerID = input.CustomerID
	}

	value, err := s.priceBooks(ctx, input.BookIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &domain.Order{
		OrderDate:  now,
		OrderValue: value,
		BookIDs:    input.BookIDs,
		CustomerID: customerID,
		Status:     domain.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create order")
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	s.logger.Info().Str("order_id", created.ID).Str("customer_id", customerID).Float64("order_value", value).Msg("order created")
	return created, nil
}

// Get returns a single order. A denied read is reported as not-found so the
// response never reveals whether the order exists.
func (s *OrderService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.Authorize(p, domain.ActionReadOrder, domain.Resource{OwnerID: order.CustomerID}) {
		metrics.AuthzDenialsTotal.WithLabelValues(string(domain.ActionReadOrder)).Inc()
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context, p domain.Principal) ([]*domain.Order, error) {
	if !domain.Authorize(p, domain.ActionListOrders, domain.Resource{}) {
		return nil, s.deny(domain.ActionListOrders)
	}
	return s.orders.List(ctx)
}

func (s *OrderService) ListByCustomer(ctx context.Context, p domain.Principal, customerID string) ([]*domain.Order, error) {
	if !domain.Authorize(p, domain.ActionListCustomerOrders, domain.Resource{OwnerID: customerID}) {
		return nil, s.deny(domain.ActionListCustomerOrders)
	}
	return s.orders.FindByCustomer(ctx, customerID)
}

// ReplaceBooks swaps the order's book set and recomputes the value snapshot.
// The set and its value are written in one repository call so readers never
// observe the new set with the old value.
func (s *OrderService) ReplaceBooks(ctx context.Context, p domain.Principal, id string, bookIDs []string) (*domain.Order, error) {
	if !domain.Authorize(p, domain.ActionUpdateOrder, domain.Resource{}) {
		return nil, s.deny(domain.ActionUpdateOrder)
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	value, err := s.priceBooks(ctx, bookIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.orders.ReplaceBooks(ctx, id, bookIDs, value, now); err != nil {
		return nil, err
	}

	order.BookIDs = bookIDs
	order.OrderValue = value
	order.UpdatedAt = now
	s.logger.Info().Str("order_id", id).Float64("order_value", value).Msg("order books replaced")
	return order, nil
}

// UpdateStatus applies a status transition. Unknown status values and
// illegal transitions fail without touching the stored order.
func (s *OrderService) UpdateStatus(ctx context.Context, p domain.Principal, id string, status string) (*domain.Order, error) {
	if !domain.Authorize(p, domain.ActionUpdateOrderStatus, domain.Resource{}) {
		return nil, s.deny(domain.ActionUpdateOrderStatus)
	}

	next := domain.OrderStatus(status)
	if !next.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	if err := s.orders.UpdateStatus(ctx, id, next, now); err != nil {
		return nil, err
	}

	metrics.OrderStatusTransitionsTotal.WithLabelValues(string(order.Status), string(next)).Inc()
	if s.events != nil {
		s.events.Enqueue(domain.OrderEvent{
			OrderID:   id,
			From:      order.Status,
			To:        next,
			ActorID:   p.UserID,
			Timestamp: now,
		})
	}

	s.logger.Info().Str("order_id", id).Str("from", string(order.Status)).Str("to", string(next)).Msg("order status updated")
	order.Status = next
	order.UpdatedAt = now
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if !domain.Authorize(p, domain.ActionDeleteOrder, domain.Resource{}) {
		return s.deny(domain.ActionDeleteOrder)
	}
	return s.orders.Delete(ctx, id)
}

// priceBooks resolves every reference and sums the current prices, counting
// duplicate entries once per occurrence. Any dangling reference fails the
// whole computation; no partial sum is ever returned.
func (s *OrderService) priceBooks(ctx context.Context, bookIDs []string) (float64, error) {
	if len(bookIDs) == 0 {
		return 0, domain.ErrOrderEmptyBooks
	}

	distinct := make([]string, 0, len(bookIDs))
	seen := make(map[string]struct{}, len(bookIDs))
	for _, id := range bookIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	books, err := s.books.FindByIDs(ctx, distinct)
	if err != nil {
		return 0, err
	}

	byID := make(map[string]*domain.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	var total float64
	for _, id := range bookIDs {
		b, ok := byID[id]
		if !ok {
			return 0, &domain.ReferenceError{Entity: "book", ID: id}
		}
		total += b.Price
	}
	return total, nil
}

func (s *OrderService) deny(action domain.Action) error {
	metrics.AuthzDenialsTotal.WithLabelValues(string(action)).Inc()
	return domain.ErrForbidden
}
