package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pictobox/pictobox-api/internal/core/domain"
	"github.com/pictobox/pictobox-api/internal/core/ports"
	"github.com/pictobox/pictobox-api/internal/metrics"
)

// SocialService handles follows and likes.
type SocialService struct {
	users   ports.UserRepository
	posts   ports.PostRepository
	follows ports.FollowRepository
	likes   ports.LikeRepository
	log     zerolog.Logger
	now     func() time.Time
}

func NewSocialService(
	users ports.UserRepository,
	posts ports.PostRepository,
	follows ports.FollowRepository,
	likes ports.LikeRepository,
	log zerolog.Logger,
) *SocialService {
	return &SocialService{
		users:   users,
		posts:   posts,
		follows: follows,
		likes:   likes,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *SocialService) Follow(ctx context.Context, claims domain.Claims, followeeID string) error {
	if followeeID == claims.UserID {
		return domain.ErrSelfFollow
	}
	if _, err := s.users.FindByID(ctx, followeeID); err != nil {
		return fmt.Errorf("follow: %w", err)
	}

	err := s.follows.Create(ctx, &domain.Follow{
		FollowerID: claims.UserID,
		FolloweeID: followeeID,
		CreatedAt:  s.now(),
	})
	if err != nil {
		return fmt.Errorf("follow: %w", err)
	}

	s.log.Debug().Str("follower_id", claims.UserID).Str("followee_id", followeeID).Msg("user followed")
	metrics.ContentCreatedTotal.WithLabelValues("follow").Inc()
	return nil
}

// Unfollow is idempotent: removing a missing edge succeeds.
func (s *SocialService) Unfollow(ctx context.Context, claims domain.Claims, followeeID string) error {
	if err := s.follows.Delete(ctx, claims.UserID, followeeID); err != nil {
		return fmt.Errorf("unfollow: %w", err)
	}
	return nil
}

func (s *SocialService) Like(ctx context.Context, claims domain.Claims, postID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("like: %w", err)
	}

	err = s.likes.Create(ctx, &domain.Like{
		PostID:    post.ID,
		UserID:    claims.UserID,
		CreatedAt: s.now(),
	})
	if err != nil {
		return fmt.Errorf("like: %w", err)
	}

	metrics.ContentCreatedTotal.WithLabelValues("like").Inc()
	return nil
}

// Unlike is idempotent.
func (s *SocialService) Unlike(ctx context.Context, claims domain.Claims, postID string) error {
	if err := s.likes.Delete(ctx, postID, claims.UserID); err != nil {
		return fmt.Errorf("unlike: %w", err)
	}
	return nil
}
