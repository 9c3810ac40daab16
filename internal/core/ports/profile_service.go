package ports

import (
	"context"

	"github.com/pictobox/pictobox-api/internal/core/domain"
)

// ProfileView is the aggregated profile page.
type ProfileView struct {
	User           *domain.User
	FollowersCount int64
	FollowingCount int64
	PostsCount     int64
	Posts          []*domain.Post
	// IsFollowing is set on public profiles when the viewer follows the user.
	IsFollowing bool
}

// UserSummary is a search hit.
type UserSummary struct {
	UserID      string
	Username    string
	ProfilePic  string
	IsFollowing bool
}

type ProfileService interface {
	GetOwnProfile(ctx context.Context, userID string) (*ProfileView, error)
	// GetPublicProfile resolves username; viewerID may be empty for anonymous callers.
	GetPublicProfile(ctx context.Context, username, viewerID string) (*ProfileView, error)
	// UpdateProfileData applies upd and returns a fresh token carrying the new claims.
	UpdateProfileData(ctx context.Context, claims domain.Claims, upd ProfileUpdate) (*AuthResult, error)
	SetProfilePicture(ctx context.Context, userID, ref string) error
	ClearProfilePicture(ctx context.Context, userID string) error
	SearchUsers(ctx context.Context, query, viewerID string) ([]UserSummary, error)
}
