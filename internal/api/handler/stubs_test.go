package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pictobox/pictobox-api/internal/api/middleware"
	"github.com/pictobox/pictobox-api/internal/core/domain"
	"github.com/pictobox/pictobox-api/internal/core/ports"
)

var alice = domain.Claims{UserID: "u1", Username: "alice", Email: "alice@x.com"}

// newContext builds an echo.Context for a JSON request. Claims are attached
// when non-nil; params alternate name, value.
func newContext(method, target, body string, claims *domain.Claims, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	if claims != nil {
		c.Set(middleware.ClaimsKey, *claims)
	}
	return c, rec
}

type stubAuthService struct {
	registerFn       func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn          func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	changePasswordFn func(ctx context.Context, claims domain.Claims, current, next string) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, claims domain.Claims, current, next string) error {
	return s.changePasswordFn(ctx, claims, current, next)
}

type stubProfileService struct {
	ports.ProfileService
	getOwnFn    func(ctx context.Context, userID string) (*ports.ProfileView, error)
	getPublicFn func(ctx context.Context, username, viewerID string) (*ports.ProfileView, error)
	updateFn    func(ctx context.Context, claims domain.Claims, upd ports.ProfileUpdate) (*ports.AuthResult, error)
	searchFn    func(ctx context.Context, query, viewerID string) ([]ports.UserSummary, error)
}

func (s *stubProfileService) GetOwnProfile(ctx context.Context, userID string) (*ports.ProfileView, error) {
	return s.getOwnFn(ctx, userID)
}

func (s *stubProfileService) GetPublicProfile(ctx context.Context, username, viewerID string) (*ports.ProfileView, error) {
	return s.getPublicFn(ctx, username, viewerID)
}

func (s *stubProfileService) UpdateProfileData(ctx context.Context, claims domain.Claims, upd ports.ProfileUpdate) (*ports.AuthResult, error) {
	return s.updateFn(ctx, claims, upd)
}

func (s *stubProfileService) SearchUsers(ctx context.Context, query, viewerID string) ([]ports.UserSummary, error) {
	return s.searchFn(ctx, query, viewerID)
}

type stubPostService struct {
	createFn func(ctx context.Context, claims domain.Claims, in ports.CreatePostInput) (*domain.Post, error)
	getFn    func(ctx context.Context, postID, viewerID string) (*ports.PostDetail, error)
	deleteFn func(ctx context.Context, claims domain.Claims, postID string) error
}

func (s *stubPostService) CreatePost(ctx context.Context, claims domain.Claims, in ports.CreatePostInput) (*domain.Post, error) {
	return s.createFn(ctx, claims, in)
}

func (s *stubPostService) GetPost(ctx context.Context, postID, viewerID string) (*ports.PostDetail, error) {
	return s.getFn(ctx, postID, viewerID)
}

func (s *stubPostService) DeletePost(ctx context.Context, claims domain.Claims, postID string) error {
	return s.deleteFn(ctx, claims, postID)
}

type stubCommentService struct {
	ports.CommentService
	addFn    func(ctx context.Context, claims domain.Claims, ref ports.PostRef, content string) (*domain.Comment, error)
	updateFn func(ctx context.Context, claims domain.Claims, ref ports.PostRef, commentID, content string) error
}

func (s *stubCommentService) AddComment(ctx context.Context, claims domain.Claims, ref ports.PostRef, content string) (*domain.Comment, error) {
	return s.addFn(ctx, claims, ref, content)
}

func (s *stubCommentService) UpdateComment(ctx context.Context, claims domain.Claims, ref ports.PostRef, commentID, content string) error {
	return s.updateFn(ctx, claims, ref, commentID, content)
}

type stubSocialService struct {
	ports.SocialService
	followFn func(ctx context.Context, claims domain.Claims, followeeID string) error
}

func (s *stubSocialService) Follow(ctx context.Context, claims domain.Claims, followeeID string) error {
	return s.followFn(ctx, claims, followeeID)
}
