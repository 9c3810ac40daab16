package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pictobox/pictobox-api/internal/core/auth"
	"github.com/pictobox/pictobox-api/internal/core/domain"
	"github.com/pictobox/pictobox-api/internal/core/ports"
	"github.com/pictobox/pictobox-api/internal/metrics"
)

type PostService struct {
	posts    ports.PostRepository
	comments ports.CommentRepository
	likes    ports.LikeRepository
	users    ports.UserRepository
	log      zerolog.Logger
	now      func() time.Time
}

func NewPostService(
	posts ports.PostRepository,
	comments ports.CommentRepository,
	likes ports.LikeRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *PostService {
	return &PostService{
		posts:    posts,
		comments: comments,
		likes:    likes,
		users:    users,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreatePost stores a post owned by the caller.
func (s *PostService) CreatePost(ctx context.Context, claims domain.Claims, in ports.CreatePostInput) (*domain.Post, error) {
	imagePath := strings.TrimSpace(in.ImagePath)
	if imagePath == "" {
		return nil, fmt.Errorf("%w: image is required", domain.ErrInvalidInput)
	}
	caption := strings.TrimSpace(in.Caption)
	if err := checkTextLength("caption", caption); err != nil {
		return nil, err
	}

	post, err := s.posts.Create(ctx, &domain.Post{
		UserID:    claims.UserID,
		ImagePath: imagePath,
		Caption:   caption,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Info().Str("post_id", post.ID).Str("user_id", claims.UserID).Msg("post created")
	metrics.ContentCreatedTotal.WithLabelValues("post").Inc()
	return post, nil
}

// GetPost assembles the post with its author, comments and like state.
func (s *PostService) GetPost(ctx context.Context, postID, viewerID string) (*ports.PostDetail, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	comments, err := s.comments.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("get post: list comments: %w", err)
	}

	ids := make([]string, 0, len(comments)+1)
	ids = append(ids, post.UserID)
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}
	authors, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get post: resolve authors: %w", err)
	}

	likes, err := s.likes.CountByPost(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("get post: count likes: %w", err)
	}

	detail := &ports.PostDetail{
		Post:     post,
		Likes:    likes,
		Comments: make([]ports.CommentView, 0, len(comments)),
	}
	if owner, ok := authors[post.UserID]; ok {
		detail.Username = owner.Username
		detail.ProfilePic = owner.ProfilePic
	}
	for _, c := range comments {
		view := ports.CommentView{Comment: c}
		if author, ok := authors[c.UserID]; ok {
			view.Username = author.Username
		}
		detail.Comments = append(detail.Comments, view)
	}

	if viewerID != "" {
		detail.IsLiked, err = s.likes.Exists(ctx, post.ID, viewerID)
		if err != nil {
			return nil, fmt.Errorf("get post: like state: %w", err)
		}
	}
	return detail, nil
}

// DeletePost removes a post owned by the caller together with its comments
// and likes.
func (s *PostService) DeletePost(ctx context.Context, claims domain.Claims, postID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	if err := auth.Authorize(claims, post.UserID); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			s.log.Warn().Str("post_id", post.ID).Str("user_id", claims.UserID).Msg("post delete denied")
			metrics.AuthorizationDenialsTotal.WithLabelValues("post").Inc()
		}
		return err
	}

	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	// Orphans are harmless to readers, so cleanup failures are not fatal.
	if err := s.comments.DeleteByPost(ctx, post.ID); err != nil {
		s.log.Warn().Err(err).Str("post_id", post.ID).Msg("failed to delete post comments")
	}
	if err := s.likes.DeleteByPost(ctx, post.ID); err != nil {
		s.log.Warn().Err(err).Str("post_id", post.ID).Msg("failed to delete post likes")
	}

	s.log.Info().Str("post_id", post.ID).Msg("post deleted")
	return nil
}
