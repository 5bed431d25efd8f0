package ports

import (
	"context"
	"time"

	"github.com/pagebound/bookstore-api/internal/core/domain"
)

// RegisterInput carries all data needed to create a new account. Role is not
// part of the input: self-registration always produces a plain user.
type RegisterInput struct {
	Email     string
	Password  string
	GivenName string
	Surname   string
	Address   domain.Address
	Phone     string
	BirthDate time.Time
}

// SessionStore tracks which session ids are live. Login marks a session,
// logout revokes it; tokens whose session id is no longer marked resolve to
// the anonymous principal.
type SessionStore interface {
	Mark(ctx context.Context, sessionID string, ttl time.Duration) error
	IsLive(ctx context.Context, sessionID string) (bool, error)
	Revoke(ctx context.Context, sessionID string) error
}

// PrincipalResolver maps an inbound bearer token to a Principal. Resolution
// never fails: any absent, malformed, revoked, or dangling token yields the
// anonymous principal.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, token string) domain.Principal
}

// AuthService implements registration and session establishment/teardown.
type AuthService interface {
	PrincipalResolver
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns a signed session token. Unknown email and wrong password
	// are indistinguishable to the caller: both yield ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the token's session. It is an idempotent no-op for
	// absent or invalid tokens.
	Logout(ctx context.Context, token string) error
}
