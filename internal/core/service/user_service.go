package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pagebound/bookstore-api/internal/api/metrics"
	"github.com/pagebound/bookstore-api/internal/core/domain"
	"github.com/pagebound/bookstore-api/internal/core/ports"
)

// UserService implements account use cases. A denied read of a single
// profile is reported as not-found so responses never reveal whether an
// account exists.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) List(ctx context.Context, p domain.Principal) ([]*domain.User, error) {
	if !domain.Authorize(p, domain.ActionListUsers, domain.Resource{}) {
		metrics.AuthzDenialsTotal.WithLabelValues(string(domain.ActionListUsers)).Inc()
		return nil, domain.ErrForbidden
	}
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, p domain.Principal, id string) (*domain.User, error) {
	if !domain.Authorize(p, domain.ActionReadUser, domain.Resource{OwnerID: id}) {
		metrics.AuthzDenialsTotal.WithLabelValues(string(domain.ActionReadUser)).Inc()
		return nil, domain.ErrUserNotFound
	}
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, p domain.Principal, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if !domain.Authorize(p, domain.ActionUpdateUser, domain.Resource{OwnerID: id}) {
		metrics.AuthzDenialsTotal.WithLabelValues(string(domain.ActionUpdateUser)).Inc()
		return nil, domain.ErrUserNotFound
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Role and email are immutable through this path.
	user.GivenName = input.GivenName
	user.Surname = input.Surname
	user.Address = input.Address
	user.Phone = input.Phone
	user.BirthDate = input.BirthDate
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("user profile updated")
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if !domain.Authorize(p, domain.ActionDeleteUser, domain.Resource{}) {
		metrics.AuthzDenialsTotal.WithLabelValues(string(domain.ActionDeleteUser)).Inc()
		return domain.ErrForbidden
	}
	return s.users.Delete(ctx, id)
}
