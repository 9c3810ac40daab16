package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pictobox/pictobox-api/internal/core/domain"
	"github.com/pictobox/pictobox-api/internal/core/ports"
)

func TestProfileService_Aggregates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	carol := f.register(t, "carol")

	_, err := f.posts.CreatePost(ctx, alice, ports.CreatePostInput{ImagePath: "img/1.jpg"})
	require.NoError(t, err)
	_, err = f.posts.CreatePost(ctx, alice, ports.CreatePostInput{ImagePath: "img/2.jpg"})
	require.NoError(t, err)
	require.NoError(t, f.social.Follow(ctx, bob, alice.UserID))
	require.NoError(t, f.social.Follow(ctx, carol, alice.UserID))
	require.NoError(t, f.social.Follow(ctx, alice, bob.UserID))

	own, err := f.profiles.GetOwnProfile(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), own.FollowersCount)
	assert.Equal(t, int64(1), own.FollowingCount)
	assert.Equal(t, int64(2), own.PostsCount)
	assert.Len(t, own.Posts, 2)
	assert.False(t, own.IsFollowing)

	seenByBob, err := f.profiles.GetPublicProfile(ctx, "alice", bob.UserID)
	require.NoError(t, err)
	assert.True(t, seenByBob.IsFollowing)

	anonymous, err := f.profiles.GetPublicProfile(ctx, "alice", "")
	require.NoError(t, err)
	assert.False(t, anonymous.IsFollowing)

	_, err = f.profiles.GetPublicProfile(ctx, "nobody", "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestProfileService_UpdateProfileData(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	f.register(t, "bob")

	_, err := f.profiles.UpdateProfileData(ctx, alice, ports.ProfileUpdate{Username: "bob", Email: "alice@x.com"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	_, err = f.profiles.UpdateProfileData(ctx, alice, ports.ProfileUpdate{Username: "alice", Email: "BOB@x.com"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	_, err = f.profiles.UpdateProfileData(ctx, alice, ports.ProfileUpdate{Username: "", Email: "alice@x.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.profiles.UpdateProfileData(ctx, alice, ports.ProfileUpdate{Username: "alice", Email: "alice@x.com", Bio: strings.Repeat("b", domain.MaxTextLength+1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	res, err := f.profiles.UpdateProfileData(ctx, alice, ports.ProfileUpdate{
		Username: "alicia",
		Email:    "alice@x.com",
		Bio:      "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "alicia", res.User.Username)
	assert.Equal(t, "hello", res.User.Bio)

	claims, err := f.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, claims.UserID)
	assert.Equal(t, "alicia", claims.Username)

	stored, err := memUsers{f.store}.FindByID(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Equal(t, "alicia", stored.Username)
}

func TestProfileService_ProfilePicture(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")

	assert.ErrorIs(t, f.profiles.SetProfilePicture(ctx, alice.UserID, " "), domain.ErrInvalidInput)
	require.NoError(t, f.profiles.SetProfilePicture(ctx, alice.UserID, "pics/alice.png"))

	view, err := f.profiles.GetOwnProfile(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Equal(t, "pics/alice.png", view.User.ProfilePic)

	require.NoError(t, f.profiles.ClearProfilePicture(ctx, alice.UserID))
	view, err = f.profiles.GetOwnProfile(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Empty(t, view.User.ProfilePic)

	assert.ErrorIs(t, f.profiles.SetProfilePicture(ctx, "missing", "x.png"), domain.ErrUserNotFound)
}

func TestProfileService_SearchUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bobby")
	f.register(t, "bobcat")
	require.NoError(t, f.social.Follow(ctx, alice, bob.UserID))

	_, err := f.profiles.SearchUsers(ctx, "  ", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	hits, err := f.profiles.SearchUsers(ctx, "bob", alice.UserID)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	for _, h := range hits {
		assert.Equal(t, h.UserID == bob.UserID, h.IsFollowing, h.Username)
	}

	hits, err = f.profiles.SearchUsers(ctx, "zzz", "")
	require.NoError(t, err)
	assert.Empty(t, hits)
}
