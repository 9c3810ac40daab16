package ports

import (
	"context"

	"github.com/pictobox/pictobox-api/internal/core/domain"
)

// CreatePostInput carries a new post.
type CreatePostInput struct {
	ImagePath string
	Caption   string
}

// CommentView is a comment with its author's handle.
type CommentView struct {
	Comment  *domain.Comment
	Username string
}

// PostDetail is the full post view.
type PostDetail struct {
	Post       *domain.Post
	Username   string
	ProfilePic string
	Likes      int64
	IsLiked    bool
	Comments   []CommentView
}

type PostService interface {
	CreatePost(ctx context.Context, claims domain.Claims, in CreatePostInput) (*domain.Post, error)
	// GetPost returns the post detail; viewerID may be empty.
	GetPost(ctx context.Context, postID, viewerID string) (*PostDetail, error)
	DeletePost(ctx context.Context, claims domain.Claims, postID string) error
}

// PostRef addresses a post through its author's profile path.
type PostRef struct {
	Username string
	PostID   string
}

// CommentService resolves ref against the post's author; a post that does not
// belong to ref.Username is reported as domain.ErrPostNotFound.
type CommentService interface {
	AddComment(ctx context.Context, claims domain.Claims, ref PostRef, content string) (*domain.Comment, error)
	UpdateComment(ctx context.Context, claims domain.Claims, ref PostRef, commentID, content string) error
	DeleteComment(ctx context.Context, claims domain.Claims, ref PostRef, commentID string) error
}

type SocialService interface {
	Follow(ctx context.Context, claims domain.Claims, followeeID string) error
	Unfollow(ctx context.Context, claims domain.Claims, followeeID string) error
	Like(ctx context.Context, claims domain.Claims, postID string) error
	Unlike(ctx context.Context, claims domain.Claims, postID string) error
}
