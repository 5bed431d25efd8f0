package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pagebound/bookstore-api/internal/core/domain"
	"github.com/pagebound/bookstore-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubOrderRepo struct {
	byID      map[string]*domain.Order
	nextID    int
	createErr error // if set, Create returns this error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{byID: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *o
	clone.ID = fmt.Sprintf("order_%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) FindByCustomer(_ context.Context, customerID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.byID {
		if o.CustomerID == customerID {
			clone := *o
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) List(_ context.Context) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.byID {
		clone := *o
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubOrderRepo) ReplaceBooks(_ context.Context, id string, bookIDs []string, orderValue float64, updatedAt time.Time) error {
	o, ok := r.byID[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.BookIDs = bookIDs
	o.OrderValue = orderValue
	o.UpdatedAt = updatedAt
	return nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus, updatedAt time.Time) error {
	o, ok := r.byID[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubBookRepo struct {
	byID map[string]*domain.Book
}

func newStubBookRepo(books ...*domain.Book) *stubBookRepo {
	r := &stubBookRepo{byID: make(map[string]*domain.Book)}
	for _, b := range books {
		r.byID[b.ID] = b
	}
	return r
}

func (r *stubBookRepo) Create(_ context.Context, b *domain.Book) (*domain.Book, error) {
	for _, existing := range r.byID {
		if existing.ISBN == b.ISBN {
			return nil, domain.ErrISBNExists
		}
	}
	clone := *b
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("book_%d", len(r.byID)+1)
	}
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBookRepo) FindByID(_ context.Context, id string) (*domain.Book, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	clone := *b
	return &clone, nil
}

// FindByIDs mirrors the Mongo $in query: missing ids are simply absent.
func (r *stubBookRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Book, error) {
	var out []*domain.Book
	for _, id := range ids {
		if b, ok := r.byID[id]; ok {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubBookRepo) List(_ context.Context, _ ports.BookFilter) ([]*domain.Book, error) {
	var out []*domain.Book
	for _, b := range r.byID {
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubBookRepo) Update(_ context.Context, b *domain.Book) error {
	if _, ok := r.byID[b.ID]; !ok {
		return domain.ErrBookNotFound
	}
	clone := *b
	r.byID[b.ID] = &clone
	return nil
}

func (r *stubBookRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrBookNotFound
	}
	delete(r.byID, id)
	return nil
}

// captureSink records enqueued audit events synchronously.
type captureSink struct {
	events []domain.OrderEvent
}

func (s *captureSink) Enqueue(event domain.OrderEvent) {
	s.events = append(s.events, event)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

var (
	admin = domain.Principal{UserID: "admin_1", Role: domain.RoleAdmin}
	owner = domain.Principal{UserID: "user_1", Role: domain.RoleUser}
	other = domain.Principal{UserID: "user_2", Role: domain.RoleUser}
)

func catalogFixture() *stubBookRepo {
	return newStubBookRepo(
		&domain.Book{ID: "b1", Title: "Dune", Price: 12.99, ISBN: "978-1"},
		&domain.Book{ID: "b2", Title: "Neuromancer", Price: 9.99, ISBN: "978-2"},
		&domain.Book{ID: "b3", Title: "Hyperion", Price: 15.50, ISBN: "978-3"},
	)
}

func newOrderFixture(t *testing.T) (*OrderService, *stubOrderRepo, *captureSink) {
	t.Helper()
	orders := newStubOrderRepo()
	users := newStubUserRepo(
		&domain.User{ID: "user_1", Email: "alice@example.com", Role: domain.RoleUser},
		&domain.User{ID: "user_2", Email: "bob@example.com", Role: domain.RoleUser},
	)
	sink := &captureSink{}
	svc := NewOrderService(orders, catalogFixture(), users, sink, discardLogger)
	return svc, orders, sink
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// ---------------------------------------------------------------------------
// Create and pricing tests
// ---------------------------------------------------------------------------

func TestOrderService_Create_SnapshotsValue(t *testing.T) {
	svc, repo, _ := newOrderFixture(t)

	order, err := svc.Create(context.Background(), owner, ports.CreateOrderInput{BookIDs: []string{"b1", "b2"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(order.OrderValue, 22.98) {
		t.Errorf("expected order value 22.98, got %v", order.OrderValue)
	}
	if order.Status != domain.StatusPending {
		t.Errorf("expected initial status %q, got %q", domain.StatusPending, order.Status)
	}
	if order.OrderDate.IsZero() {
		t.Error("order date must not be zero")
	}

	stored := repo.byID[order.ID]
	if stored == nil {
		t.Fatal("order was not persisted")
	}
	if !almostEqual(stored.OrderValue, 22.98) {
		t.Errorf("stored value: expected 22.98, got %v", stored.OrderValue)
	}
}

func TestOrderService_Create_DuplicatesCountPerOccurrence(t *testing.T) {
	svc, _, _ := newOrderFixture(t)

	// Two copies of b1 (12.99 each) plus one b2 (9.99) = 35.97.
	order, err := svc.Create(context.Background(), owner, ports.CreateOrderInput{BookIDs: []string{"b1", "b1", "b2"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(order.OrderValue, 35.97) {
		t.Errorf("expected 35.97 with duplicate priced twice, got %v", order.OrderValue)
	}
	if len(order.BookIDs) != 3 {
		t.Errorf("book list must keep duplicates, got %v", order.BookIDs)
	}
}

func TestOrderService_Create_DanglingBookReference(t *testing.T) {
	svc, repo, _ := newOrderFixture(t)

	_, err := svc.Create(context.Background(), owner, ports.CreateOrderInput{BookIDs: []string{"b1", "missing"}})

	var refErr *domain.ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected ReferenceError, got %v", err)
	}
	if refErr.Entity != "book" || refErr.ID != "missing" {
		t.Errorf("expected book/missing, got %s/%s", refErr.Entity, refErr.ID)
	}
	// All-or-nothing: nothing may be persisted on a dangling reference.
	if len(repo.byID) != 0 {
		t.Errorf("expected no orders stored, got %d", len(repo.byID))
	}
}

func TestOrderService_Create_EmptyBookSet(t *testing.T) {
	svc, _, _ := newOrderFixture(t)

	_, err := svc.Create(context.Background(), owner, ports.CreateOrderInput{BookIDs: nil})
	if !errors.Is(err, domain.ErrOrderEmptyBooks) {
		t.Errorf("expected ErrOrderEmptyBooks, got %v", err)
	}
}

func TestOrderService_Create_ForcesCallerAsCustomer(t *testing.T) {
	svc, _, _ := newOrderFixture(t)

	// A plain user naming someone else still gets the order booked on itself.
	order, err := svc.Create(context.Background(), owner, ports.CreateOrderInput{
		BookIDs:    []string{"b1"},
		CustomerID: "user_2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.CustomerID != "user_1" {
		t.Errorf("expected customer forced to caller user_1, got %q", order.CustomerID)
	}
}

func TestOrderService_Create_AdminMayPlaceForCustomer(t *testing.T) {
	svc, _, _ := newOrderFixture(t)

	order, err := svc.Create(context.Background(), admin, ports.CreateOrderInput{
		BookIDs:    []string{"b1"},
		CustomerID: "user_2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.CustomerID != "user_2" {
		t.Errorf("expected customer user_2, got %q", order.CustomerID)
	}
}

func TestOrderService_Create_AdminUnknownCustomer(t *testing.T) {
	svc, _, _ := newOrderFixture(t)

	_, err := svc.Create(context.Background(), admin, ports.CreateOrderInput{
		BookIDs:    []string{"b1"},
		CustomerID: "ghost",
	})

	var refErr *domain.ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected ReferenceError for unknown customer, got %v", err)
	}
	if refErr.Entity != "customer" {
		t.Errorf("expected customer reference error, got %q", refErr.Entity)
	}
}

func TestOrderService_Create_AnonymousDenied(t *testing.T) {
	svc, _, _ := newOrderFixture(t)

	_, err := svc.Create(context.Background(), domain.Anonymous(), ports.CreateOrderInput{BookIDs: []string{"b1"}})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Read visibility tests
// ---------------------------------------------------------------------------

func TestOrderService_Get_OwnerSeesOwn(t *testing.T) {
	svc, _, _ := newOrderFixture(t)
	created, _ := svc.Create(context.Background(), owner, ports.CreateOrderInput{BookIDs: []string{"b1"}})

	got, err := svc.Get(context.Background(), owner, created.ID)
	if err != nil {
		t.Fatalf("owner must see own order, got error: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("expected order %q, got %q", created.ID, got.ID)
	}
}

func TestOrderService_Get_NonOwnerGetsNotFound(t *testing.T) {
	svc, _, _ := newOrderFixture(t)
	created, _ := svc.Create(context.Background(), owner, ports.CreateOrderInput{BookIDs: []string{"b1"}})

	// A denied read must be indistinguishable from a missing order.
	_, err := svc.Get(context.Background(), other, created.ID)
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound for non-owner, got %v", err)
	}
}

func TestOrderService_Get_AdminSeesAll(t *testing.T) {
	svc, _, _ := newOrderFixture(t)
	created, _ := svc.Create(context.Background(), owner, ports.CreateOrderInput{BookIDs: []string{"b1"}})

	if _, err := svc.Get(context.Background(), admin, created.ID); err != nil {
		t.Errorf("admin must see any order, got error: %v", err)
	}
}

func TestOrderService_List_AdminOnly(t *testing.T) {
	svc, _, _ := newOrderFixture(t)
	_, _ = svc.Create(context.Background(), owner, ports.CreateOrderInput{BookIDs: []string{"b1"}})

	if _, err := svc.List(context.Background(), owner); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("plain user listing all orders: expected ErrForbidden, got %v", err)
	}

	all, err := svc.List(context.Background(), admin)
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 order, got %d", len(all))
	}
}

func TestOrderService_ListByCustomer_Ownership(t *testing.T) {
	svc, _, _ := newOrderFixture(t)
	_, _ = svc.Create(context.Background(), owner, ports.CreateOrderInput{BookIDs: []string{"b1"}})

	own, err := svc.ListByCustomer(context.Background(), owner, "user_1")
	if err != nil {
		t.Fatalf("owner must list own orders: %v", err)
	}
	if len(own) != 1 {
		t.Errorf("expected 1 order, got %d", len(own))
	}

	if _, err := svc.ListByCustomer(context.Background(), other, "user_1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden listing another customer's orders, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ReplaceBooks tests
// ---------------------------------------------------------------------------

func TestOrderService_ReplaceBooks_Reprices(t *testing.T) {
	svc, repo, _ := newOrderFixture(t)
	created, _ := svc.Create(context.Background(), admin, ports.CreateOrderInput{BookIDs: []string{"b1"}})

	updated, err := svc.ReplaceBooks(context.Background(), admin, created.ID, []string{"b2", "b3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(updated.OrderValue, 25.49) {
		t.Errorf("expected repriced value 25.49, got %v", updated.OrderValue)
	}

	stored := repo.byID[created.ID]
	if len(stored.BookIDs) != 2 || !almostEqual(stored.OrderValue, 25.49) {
		t.Errorf("stored set and value must change together, got %v / %v", stored.BookIDs, stored.OrderValue)
	}
}

func TestOrderService_ReplaceBooks_DanglingReferenceKeepsOrder(t *testing.T) {
	svc, repo, _ := newOrderFixture(t)
	created, _ := svc.Create(context.Background(), admin, ports.CreateOrderInput{BookIDs: []string{"b1"}})

	_, err := svc.ReplaceBooks(context.Background(), admin, created.ID, []string{"b2", "missing"})

	var refErr *domain.ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected ReferenceError, got %v", err)
	}

	stored := repo.byID[created.ID]
	if len(stored.BookIDs) != 1 || stored.BookIDs[0] != "b1" {
		t.Errorf("failed replace must leave the order untouched, got %v", stored.BookIDs)
	}
	if !almostEqual(stored.OrderValue, 12.99) {
		t.Errorf("failed replace must keep the old value, got %v", stored.OrderValue)
	}
}

func TestOrderService_ReplaceBooks_NonAdminDenied(t *testing.T) {
	svc, _, _ := newOrderFixture(t)
	created, _ := svc.Create(context.Background(), owner, ports.CreateOrderInput{BookIDs: []string{"b1"}})

	_, err := svc.ReplaceBooks(context.Background(), owner, created.ID, []string{"b2"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Status lifecycle tests
// ---------------------------------------------------------------------------

func TestOrderService_UpdateStatus_ValidTransition(t *testing.T) {
	svc, repo, sink := newOrderFixture(t)
	created, _ := svc.Create(context.Background(), admin, ports.CreateOrderInput{BookIDs: []string{"b1"}})

	updated, err := svc.UpdateStatus(context.Background(), admin, created.ID, "processing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.StatusProcessing {
		t.Errorf("expected processing, got %q", updated.Status)
	}
	if repo.byID[created.ID].Status != domain.StatusProcessing {
		t.Errorf("stored status not updated: %q", repo.byID[created.ID].Status)
	}

	if len(sink.events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(sink.events))
	}
	ev := sink.events[0]
	if ev.From != domain.StatusPending || ev.To != domain.StatusProcessing {
		t.Errorf("audit event: expected pending->processing, got %s->%s", ev.From, ev.To)
	}
	if ev.ActorID != admin.UserID {
		t.Errorf("audit event actor: expected %q, got %q", admin.UserID, ev.ActorID)
	}
}

func TestOrderService_UpdateStatus_UnknownValue(t *testing.T) {
	svc, repo, sink := newOrderFixture(t)
	created, _ := svc.Create(context.Background(), admin, ports.CreateOrderInput{BookIDs: []string{"b1"}})

	_, err := svc.UpdateStatus(context.Background(), admin, created.ID, "teleported")
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if repo.byID[created.ID].Status != domain.StatusPending {
		t.Error("rejected status value must leave the order untouched")
	}
	if len(sink.events) != 0 {
		t.Error("no audit event may be emitted for a rejected update")
	}
}

func TestOrderService_UpdateStatus_IllegalTransition(t *testing.T) {
	svc, repo, sink := newOrderFixture(t)
	created, _ := svc.Create(context.Background(), admin, ports.CreateOrderInput{BookIDs: []string{"b1"}})

	// pending -> delivered skips processing and shipped.
	_, err := svc.UpdateStatus(context.Background(), admin, created.ID, "delivered")
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if repo.byID[created.ID].Status != domain.StatusPending {
		t.Error("rejected transition must leave the order untouched")
	}
	if len(sink.events) != 0 {
		t.Error("no audit event may be emitted for a rejected transition")
	}
}

func TestOrderService_UpdateStatus_TerminalStateFrozen(t *testing.T) {
	svc, _, _ := newOrderFixture(t)
	created, _ := svc.Create(context.Background(), admin, ports.CreateOrderInput{BookIDs: []string{"b1"}})

	if _, err := svc.UpdateStatus(context.Background(), admin, created.ID, "cancelled"); err != nil {
		t.Fatalf("pending -> cancelled must be allowed: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), admin, created.ID, "processing"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("cancelled is terminal, expected ErrInvalidTransition, got %v", err)
	}
}

func TestOrderService_UpdateStatus_FullLifecycle(t *testing.T) {
	svc, _, sink := newOrderFixture(t)
	created, _ := svc.Create(context.Background(), admin, ports.CreateOrderInput{BookIDs: []string{"b1"}})

	for _, next := range []string{"processing", "shipped", "delivered"} {
		if _, err := svc.UpdateStatus(context.Background(), admin, created.ID, next); err != nil {
			t.Fatalf("transition to %q failed: %v", next, err)
		}
	}
	if len(sink.events) != 3 {
		t.Errorf("expected 3 audit events, got %d", len(sink.events))
	}
}

func TestOrderService_UpdateStatus_NonAdminDenied(t *testing.T) {
	svc, _, _ := newOrderFixture(t)
	created, _ := svc.Create(context.Background(), owner, ports.CreateOrderInput{BookIDs: []string{"b1"}})

	_, err := svc.UpdateStatus(context.Background(), owner, created.ID, "processing")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete tests
// ---------------------------------------------------------------------------

func TestOrderService_Delete(t *testing.T) {
	svc, repo, _ := newOrderFixture(t)
	created, _ := svc.Create(context.Background(), owner, ports.CreateOrderInput{BookIDs: []string{"b1"}})

	if err := svc.Delete(context.Background(), owner, created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("plain user delete: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), admin, created.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if len(repo.byID) != 0 {
		t.Error("order must be removed")
	}
}
