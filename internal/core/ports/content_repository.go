package ports

import (
	"context"

	"github.com/pictobox/pictobox-api/internal/core/domain"
)

// PostRepository persists posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Post, error)
	Delete(ctx context.Context, id string) error
}

// CommentRepository persists comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]*domain.Comment, error)
	UpdateContent(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
	DeleteByPost(ctx context.Context, postID string) error
}

// FollowRepository persists follow edges. Create returns
// domain.ErrAlreadyFollowing when the pair already exists.
type FollowRepository interface {
	Create(ctx context.Context, follow *domain.Follow) error
	Delete(ctx context.Context, followerID, followeeID string) error
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
	// FollowingAmong returns the subset of candidateIDs that followerID follows.
	FollowingAmong(ctx context.Context, followerID string, candidateIDs []string) (map[string]bool, error)
}

// LikeRepository persists likes. Create returns domain.ErrAlreadyLiked when
// the pair already exists.
type LikeRepository interface {
	Create(ctx context.Context, like *domain.Like) error
	Delete(ctx context.Context, postID, userID string) error
	CountByPost(ctx context.Context, postID string) (int64, error)
	Exists(ctx context.Context, postID, userID string) (bool, error)
	DeleteByPost(ctx context.Context, postID string) error
}
