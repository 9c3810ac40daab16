package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/pictobox/pictobox-api/internal/core/domain"
	"github.com/pictobox/pictobox-api/internal/core/ports"
	"github.com/pictobox/pictobox-api/internal/metrics"
)

// PasswordHasher abstracts the one-way credential transform (bcrypt).
type PasswordHasher interface {
	Hash(raw string) (string, error)
	Verify(raw, hash string) bool
}

// TokenIssuer mints signed identity tokens.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// AuthService implements registration, login and password change.
type AuthService struct {
	users  ports.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(users ports.UserRepository, hasher PasswordHasher, tokens TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register creates an account and returns a token for it. Duplicate email or
// username is rejected before anything is written.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register: check email: %w", err)
	}
	if taken {
		s.log.Warn().Str("email", email).Msg("duplicate registration for email")
		metrics.RegistrationsTotal.WithLabelValues("email_taken").Inc()
		return nil, domain.ErrEmailTaken
	}

	taken, err = s.users.ExistsByUsername(ctx, username)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register: check username: %w", err)
	}
	if taken {
		s.log.Warn().Str("username", username).Msg("duplicate registration for username")
		metrics.RegistrationsTotal.WithLabelValues("username_taken").Inc()
		return nil, domain.ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(in.Password)
	if errors.Is(err, domain.ErrInvalidInput) {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		CreatedAt:    s.now(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			s.log.Warn().Str("email", email).Msg("store rejected registration as duplicate")
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			return nil, err
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register: create user: %w", err)
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return &ports.AuthResult{Token: token, User: created}, nil
}

// Login checks the credentials and returns a fresh token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Str("email", email).Msg("login failed")
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Warn().Str("email", email).Msg("login failed")
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("token issued")
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return &ports.AuthResult{Token: token, User: user}, nil
}

// ChangePassword replaces the caller's password after re-checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, claims domain.Claims, currentPassword, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidInput
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		s.log.Warn().Str("user_id", user.ID).Msg("password change rejected: wrong current password")
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if errors.Is(err, domain.ErrInvalidInput) {
		return err
	}
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// checkTextLength rejects free text longer than domain.MaxTextLength characters.
func checkTextLength(field, v string) error {
	if utf8.RuneCountInString(v) > domain.MaxTextLength {
		return fmt.Errorf("%w: %s must be at most %d characters", domain.ErrInvalidInput, field, domain.MaxTextLength)
	}
	return nil
}
