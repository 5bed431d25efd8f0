package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pagebound/bookstore-api/internal/api/metrics"
	"github.com/pagebound/bookstore-api/internal/core/domain"
	"github.com/pagebound/bookstore-api/internal/core/ports"
)

// AuthService implements registration, login/logout, and per-request
// principal resolution.
type AuthService struct {
	users     ports.UserRepository
	sessions  ports.SessionStore
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, sessions: sessions, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		GivenName:    input.GivenName,
		Surname:      input.Surname,
		Address:      input.Address,
		Phone:        input.Phone,
		BirthDate:    input.BirthDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and establishes a session. Unknown email
// and wrong password both return ErrInvalidCredentials so callers cannot
// enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	sessionID := newSessionID()
	if err := s.sessions.Mark(ctx, sessionID, s.tokenTTL); err != nil {
		return "", nil, fmt.Errorf("mark session: %w", err)
	}

	token, err := s.signToken(user, sessionID)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("session established")
	return token, user, nil
}

// Logout revokes the token's session. Invalid or absent tokens are a no-op,
// so logging out an already-anonymous caller succeeds.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, ok := s.parseClaims(token)
	if !ok {
		return nil
	}
	sessionID, _ := claims["jti"].(string)
	if sessionID == "" {
		return nil
	}
	return s.sessions.Revoke(ctx, sessionID)
}

// ResolvePrincipal maps a bearer token to a Principal. Every failure path
// degrades to the anonymous principal; resolution itself never fails a
// request. Role is taken from the live user record, not the token, so role
// changes and deletions take effect immediately.
func (s *AuthService) ResolvePrincipal(ctx context.Context, token string) domain.Principal {
	claims, ok := s.parseClaims(token)
	if !ok {
		return domain.Anonymous()
	}

	sessionID, _ := claims["jti"].(string)
	userID, _ := claims["sub"].(string)
	if sessionID == "" || userID == "" {
		return domain.Anonymous()
	}

	live, err := s.sessions.IsLive(ctx, sessionID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("session lookup failed, treating caller as anonymous")
		return domain.Anonymous()
	}
	if !live {
		return domain.Anonymous()
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.Anonymous()
	}

	return domain.Principal{UserID: user.ID, Role: user.Role}
}

func (s *AuthService) signToken(user *domain.User, sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"jti":  sessionID,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) parseClaims(token string) (jwt.MapClaims, bool) {
	if token == "" {
		return nil, false
	}
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, false
	}
	return claims, true
}

// newSessionID returns a random session identifier in the format BKS-XXXXXXXXXXXXXXXX.
func newSessionID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("BKS-%016X", time.Now().UnixNano())
	}
	return fmt.Sprintf("BKS-%016X", b)
}
