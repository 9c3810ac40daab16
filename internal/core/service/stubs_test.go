package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pictobox/pictobox-api/internal/core/auth"
	"github.com/pictobox/pictobox-api/internal/core/domain"
	"github.com/pictobox/pictobox-api/internal/core/ports"
)

// memStore backs the in-memory repositories used by the service tests.
type memStore struct {
	mu       sync.Mutex
	seq      int
	writes   int
	users    map[string]*domain.User
	posts    map[string]*domain.Post
	comments map[string]*domain.Comment
	follows  map[[2]string]*domain.Follow
	likes    map[[2]string]*domain.Like

	createUserErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]*domain.User),
		posts:    make(map[string]*domain.Post),
		comments: make(map[string]*domain.Comment),
		follows:  make(map[[2]string]*domain.Follow),
		likes:    make(map[[2]string]*domain.Like),
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s%d", prefix, m.seq)
}

type memUsers struct{ *memStore }

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (r memUsers) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createUserErr != nil {
		return nil, r.createUserErr
	}
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	c := cloneUser(user)
	c.ID = r.nextID("u")
	r.users[c.ID] = c
	r.writes++
	return cloneUser(c), nil
}

func (r memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r memUsers) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*domain.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = cloneUser(u)
		}
	}
	return out, nil
}

func (r memUsers) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r memUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r memUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	return err == nil, nil
}

func (r memUsers) update(id string, apply func(*domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	apply(u)
	r.writes++
	return nil
}

func (r memUsers) UpdateProfile(_ context.Context, id string, upd ports.ProfileUpdate) error {
	return r.update(id, func(u *domain.User) {
		u.Username = upd.Username
		u.Email = upd.Email
		u.PhoneNumber = upd.PhoneNumber
		u.Bio = upd.Bio
		u.DateOfBirth = upd.DateOfBirth
	})
}

func (r memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	return r.update(id, func(u *domain.User) { u.PasswordHash = hash })
}

func (r memUsers) SetProfilePic(_ context.Context, id, ref string) error {
	return r.update(id, func(u *domain.User) { u.ProfilePic = ref })
}

func (r memUsers) Search(_ context.Context, query string, limit int) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Username), strings.ToLower(query)) && len(out) < limit {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

type memPosts struct{ *memStore }

func (r memPosts) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *post
	c.ID = r.nextID("p")
	r.posts[c.ID] = &c
	r.writes++
	out := c
	return &out, nil
}

func (r memPosts) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, domain.ErrPostNotFound
}

func (r memPosts) ListByUser(_ context.Context, userID string) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Post
	for _, p := range r.posts {
		if p.UserID == userID {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r memPosts) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	r.writes++
	return nil
}

type memComments struct{ *memStore }

func (r memComments) Create(_ context.Context, comment *domain.Comment) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *comment
	c.ID = r.nextID("c")
	r.comments[c.ID] = &c
	r.writes++
	out := c
	return &out, nil
}

func (r memComments) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.comments[id]; ok {
		out := *c
		return &out, nil
	}
	return nil, domain.ErrCommentNotFound
}

func (r memComments) ListByPost(_ context.Context, postID string) ([]*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			cc := *c
			out = append(out, &cc)
		}
	}
	return out, nil
}

func (r memComments) UpdateContent(_ context.Context, id, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return domain.ErrCommentNotFound
	}
	c.Content = content
	r.writes++
	return nil
}

func (r memComments) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	r.writes++
	return nil
}

func (r memComments) DeleteByPost(_ context.Context, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.comments {
		if c.PostID == postID {
			delete(r.comments, id)
		}
	}
	return nil
}

type memFollows struct{ *memStore }

func (r memFollows) Create(_ context.Context, f *domain.Follow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]string{f.FollowerID, f.FolloweeID}
	if _, ok := r.follows[key]; ok {
		return domain.ErrAlreadyFollowing
	}
	c := *f
	r.follows[key] = &c
	r.writes++
	return nil
}

func (r memFollows) Delete(_ context.Context, followerID, followeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.follows, [2]string{followerID, followeeID})
	return nil
}

func (r memFollows) count(match func(key [2]string) bool) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for key := range r.follows {
		if match(key) {
			n++
		}
	}
	return n
}

func (r memFollows) CountFollowers(_ context.Context, userID string) (int64, error) {
	return r.count(func(k [2]string) bool { return k[1] == userID }), nil
}

func (r memFollows) CountFollowing(_ context.Context, userID string) (int64, error) {
	return r.count(func(k [2]string) bool { return k[0] == userID }), nil
}

func (r memFollows) FollowingAmong(_ context.Context, followerID string, ids []string) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]bool)
	for _, id := range ids {
		if _, ok := r.follows[[2]string{followerID, id}]; ok {
			out[id] = true
		}
	}
	return out, nil
}

type memLikes struct{ *memStore }

func (r memLikes) Create(_ context.Context, l *domain.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]string{l.PostID, l.UserID}
	if _, ok := r.likes[key]; ok {
		return domain.ErrAlreadyLiked
	}
	c := *l
	r.likes[key] = &c
	r.writes++
	return nil
}

func (r memLikes) Delete(_ context.Context, postID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.likes, [2]string{postID, userID})
	return nil
}

func (r memLikes) CountByPost(_ context.Context, postID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for key := range r.likes {
		if key[0] == postID {
			n++
		}
	}
	return n, nil
}

func (r memLikes) Exists(_ context.Context, postID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.likes[[2]string{postID, userID}]
	return ok, nil
}

func (r memLikes) DeleteByPost(_ context.Context, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.likes {
		if key[0] == postID {
			delete(r.likes, key)
		}
	}
	return nil
}

// fixture wires every service over one memStore with real bcrypt and JWT.
type fixture struct {
	store    *memStore
	tokens   *auth.TokenService
	auth     *AuthService
	profiles *ProfileService
	posts    *PostService
	comments *CommentService
	social   *SocialService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	tokens, err := auth.NewTokenService(auth.TokenConfig{Secret: "test-secret", Issuer: "pictobox", TTL: time.Hour})
	require.NoError(t, err)

	log := zerolog.Nop()
	users := memUsers{store}
	posts := memPosts{store}
	comments := memComments{store}
	follows := memFollows{store}
	likes := memLikes{store}

	return &fixture{
		store:    store,
		tokens:   tokens,
		auth:     NewAuthService(users, auth.NewPasswordHasher(bcrypt.MinCost), tokens, log),
		profiles: NewProfileService(users, posts, follows, tokens, log),
		posts:    NewPostService(posts, comments, likes, users, log),
		comments: NewCommentService(comments, posts, users, log),
		social:   NewSocialService(users, posts, follows, likes, log),
	}
}

// register creates a user and returns the claims its token resolves to.
func (f *fixture) register(t *testing.T, username string) domain.Claims {
	t.Helper()
	res, err := f.auth.Register(context.Background(), ports.RegisterInput{
		Username: username,
		Email:    username + "@x.com",
		Password: "pw123",
	})
	require.NoError(t, err)
	claims, err := f.tokens.Verify(res.Token)
	require.NoError(t, err)
	return claims
}
