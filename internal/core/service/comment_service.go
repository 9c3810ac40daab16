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

type CommentService struct {
	comments ports.CommentRepository
	posts    ports.PostRepository
	users    ports.UserRepository
	log      zerolog.Logger
	now      func() time.Time
}

func NewCommentService(comments ports.CommentRepository, posts ports.PostRepository, users ports.UserRepository, log zerolog.Logger) *CommentService {
	return &CommentService{
		comments: comments,
		posts:    posts,
		users:    users,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *CommentService) AddComment(ctx context.Context, claims domain.Claims, ref ports.PostRef, content string) (*domain.Comment, error) {
	content, err := commentContent(content)
	if err != nil {
		return nil, err
	}

	post, err := s.resolvePost(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}

	comment, err := s.comments.Create(ctx, &domain.Comment{
		PostID:    post.ID,
		UserID:    claims.UserID,
		Content:   content,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}

	metrics.ContentCreatedTotal.WithLabelValues("comment").Inc()
	return comment, nil
}

// UpdateComment edits a comment. Only its author may do so.
func (s *CommentService) UpdateComment(ctx context.Context, claims domain.Claims, ref ports.PostRef, commentID, content string) error {
	comment, err := s.ownedComment(ctx, claims, ref, commentID)
	if err != nil {
		return err
	}

	content, err = commentContent(content)
	if err != nil {
		return err
	}
	if err := s.comments.UpdateContent(ctx, comment.ID, content); err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

// DeleteComment removes a comment. Only its author may do so.
func (s *CommentService) DeleteComment(ctx context.Context, claims domain.Claims, ref ports.PostRef, commentID string) error {
	comment, err := s.ownedComment(ctx, claims, ref, commentID)
	if err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// resolvePost loads the post and checks it is published under ref.Username.
func (s *CommentService) resolvePost(ctx context.Context, ref ports.PostRef) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, ref.PostID)
	if err != nil {
		return nil, err
	}

	author, err := s.users.FindByUsername(ctx, ref.Username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	if author.ID != post.UserID {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

func (s *CommentService) ownedComment(ctx context.Context, claims domain.Claims, ref ports.PostRef, commentID string) (*domain.Comment, error) {
	post, err := s.resolvePost(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}

	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("find comment: %w", err)
	}
	if comment.PostID != post.ID {
		return nil, domain.ErrCommentNotFound
	}

	if err := auth.Authorize(claims, comment.UserID); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			s.log.Warn().Str("comment_id", comment.ID).Str("user_id", claims.UserID).Msg("comment mutation denied")
			metrics.AuthorizationDenialsTotal.WithLabelValues("comment").Inc()
		}
		return nil, err
	}
	return comment, nil
}

func commentContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}
	if err := checkTextLength("content", content); err != nil {
		return "", err
	}
	return content, nil
}
