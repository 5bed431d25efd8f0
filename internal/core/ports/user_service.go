package ports

import (
	"context"
	"time"

	"github.com/pagebound/bookstore-api/internal/core/domain"
)

// UpdateUserInput carries the self-service editable profile fields. Email,
// role, and credentials are not updatable through this path.
type UpdateUserInput struct {
	GivenName string
	Surname   string
	Address   domain.Address
	Phone     string
	BirthDate time.Time
}

// UserService defines account use cases gated by the authorization policy.
type UserService interface {
	List(ctx context.Context, p domain.Principal) ([]*domain.User, error)
	Get(ctx context.Context, p domain.Principal, id string) (*domain.User, error)
	Update(ctx context.Context, p domain.Principal, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
}
