package ports

import (
	"context"
	"time"

	"github.com/pictobox/pictobox-api/internal/core/domain"
)

// ProfileUpdate carries the mutable profile fields of a user.
type ProfileUpdate struct {
	Username    string
	Email       string
	PhoneNumber string
	Bio         string
	DateOfBirth *time.Time
}

// UserRepository is the credential store.
// Find* return domain.ErrUserNotFound when nothing matches; Exists* report
// presence without treating absence as an error.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetProfilePic(ctx context.Context, id, ref string) error
	// Search returns users whose username contains query, case-insensitively.
	Search(ctx context.Context, query string, limit int) ([]*domain.User, error)
}
