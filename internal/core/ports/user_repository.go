package ports

import (
	"context"

	"github.com/pagebound/bookstore-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Create returns domain.ErrEmailExists when the unique email index rejects
// the document.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}
