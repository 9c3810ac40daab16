package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pictobox/pictobox-api/internal/core/domain"
	"github.com/pictobox/pictobox-api/internal/core/ports"
)

const searchLimit = 20

type ProfileService struct {
	users   ports.UserRepository
	posts   ports.PostRepository
	follows ports.FollowRepository
	tokens  TokenIssuer
	log     zerolog.Logger
}

func NewProfileService(
	users ports.UserRepository,
	posts ports.PostRepository,
	follows ports.FollowRepository,
	tokens TokenIssuer,
	log zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		users:   users,
		posts:   posts,
		follows: follows,
		tokens:  tokens,
		log:     log,
	}
}

// GetOwnProfile returns the caller's profile page.
func (s *ProfileService) GetOwnProfile(ctx context.Context, userID string) (*ports.ProfileView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return s.aggregate(ctx, user)
}

// GetPublicProfile returns the profile page of username as seen by viewerID.
func (s *ProfileService) GetPublicProfile(ctx context.Context, username, viewerID string) (*ports.ProfileView, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	view, err := s.aggregate(ctx, user)
	if err != nil {
		return nil, err
	}

	if viewerID != "" && viewerID != user.ID {
		following, err := s.follows.FollowingAmong(ctx, viewerID, []string{user.ID})
		if err != nil {
			return nil, fmt.Errorf("get profile: follow state: %w", err)
		}
		view.IsFollowing = following[user.ID]
	}
	return view, nil
}

func (s *ProfileService) aggregate(ctx context.Context, user *domain.User) (*ports.ProfileView, error) {
	followers, err := s.follows.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get profile: count followers: %w", err)
	}
	following, err := s.follows.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get profile: count following: %w", err)
	}
	posts, err := s.posts.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get profile: list posts: %w", err)
	}

	return &ports.ProfileView{
		User:           user,
		FollowersCount: followers,
		FollowingCount: following,
		PostsCount:     int64(len(posts)),
		Posts:          posts,
	}, nil
}

// UpdateProfileData rewrites the caller's profile fields. Because username and
// email are token claims, a new token is issued for the updated identity.
func (s *ProfileService) UpdateProfileData(ctx context.Context, claims domain.Claims, upd ports.ProfileUpdate) (*ports.AuthResult, error) {
	upd.Username = strings.TrimSpace(upd.Username)
	upd.Email = normalizeEmail(upd.Email)
	upd.PhoneNumber = strings.TrimSpace(upd.PhoneNumber)
	if upd.Username == "" || upd.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := checkTextLength("bio", upd.Bio); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if upd.Email != user.Email {
		taken, err := s.users.ExistsByEmail(ctx, upd.Email)
		if err != nil {
			return nil, fmt.Errorf("update profile: check email: %w", err)
		}
		if taken {
			return nil, domain.ErrEmailTaken
		}
	}
	if upd.Username != user.Username {
		taken, err := s.users.ExistsByUsername(ctx, upd.Username)
		if err != nil {
			return nil, fmt.Errorf("update profile: check username: %w", err)
		}
		if taken {
			return nil, domain.ErrUsernameTaken
		}
	}

	if err := s.users.UpdateProfile(ctx, user.ID, upd); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	updated := *user
	updated.Username = upd.Username
	updated.Email = upd.Email
	updated.PhoneNumber = upd.PhoneNumber
	updated.Bio = upd.Bio
	updated.DateOfBirth = upd.DateOfBirth

	token, err := s.tokens.Issue(&updated)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("username", updated.Username).Msg("profile updated")
	return &ports.AuthResult{Token: token, User: &updated}, nil
}

func (s *ProfileService) SetProfilePicture(ctx context.Context, userID, ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.ErrInvalidInput
	}
	if err := s.users.SetProfilePic(ctx, userID, ref); err != nil {
		return fmt.Errorf("set profile picture: %w", err)
	}
	return nil
}

func (s *ProfileService) ClearProfilePicture(ctx context.Context, userID string) error {
	if err := s.users.SetProfilePic(ctx, userID, ""); err != nil {
		return fmt.Errorf("clear profile picture: %w", err)
	}
	return nil
}

// SearchUsers matches usernames containing query. When viewerID is set, hits
// the viewer already follows are flagged.
func (s *ProfileService) SearchUsers(ctx context.Context, query, viewerID string) ([]ports.UserSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query parameter 'q' is required", domain.ErrInvalidInput)
	}

	users, err := s.users.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	following := map[string]bool{}
	if viewerID != "" && len(users) > 0 {
		ids := make([]string, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		following, err = s.follows.FollowingAmong(ctx, viewerID, ids)
		if err != nil {
			return nil, fmt.Errorf("search users: follow state: %w", err)
		}
	}

	out := make([]ports.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, ports.UserSummary{
			UserID:      u.ID,
			Username:    u.Username,
			ProfilePic:  u.ProfilePic,
			IsFollowing: following[u.ID],
		})
	}
	return out, nil
}
