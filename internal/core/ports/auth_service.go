package ports

import (
	"context"

	"github.com/pictobox/pictobox-api/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	PhoneNumber string
}

// AuthResult is returned on successful login or registration.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	ChangePassword(ctx context.Context, claims domain.Claims, currentPassword, newPassword string) error
}
