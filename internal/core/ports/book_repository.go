package ports

import (
	"context"

	"github.com/pagebound/bookstore-api/internal/core/domain"
)

// BookFilter carries the query parameters for listing catalog entries.
type BookFilter struct {
	// Query is an optional case-insensitive substring matched against
	// title and authors.
	Query string
}

// BookRepository defines persistence operations for catalog entries.
type BookRepository interface {
	Create(ctx context.Context, b *domain.Book) (*domain.Book, error)
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	// FindByIDs returns the books matching the given distinct ids. Missing
	// ids are simply absent from the result; callers detect dangling
	// references by comparing against the requested set.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Book, error)
	List(ctx context.Context, filter BookFilter) ([]*domain.Book, error)
	Update(ctx context.Context, b *domain.Book) error
	Delete(ctx context.Context, id string) error
}
