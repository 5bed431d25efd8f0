package ports

import (
	"context"
	"time"

	"github.com/pagebound/bookstore-api/internal/core/domain"
)

// BookInput carries the writable fields of a catalog entry.
type BookInput struct {
	Title       string
	Authors     []string
	Price       float64
	ReleaseDate time.Time
	ISBN        string
	Stock       int
}

// BookService defines catalog use cases. Reads are public; writes are gated
// by the authorization policy (admin only).
type BookService interface {
	List(ctx context.Context, filter BookFilter) ([]*domain.Book, error)
	Get(ctx context.Context, id string) (*domain.Book, error)
	Create(ctx context.Context, p domain.Principal, input BookInput) (*domain.Book, error)
	Update(ctx context.Context, p domain.Principal, id string, input BookInput) (*domain.Book, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
}
