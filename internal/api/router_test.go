package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/pictobox/pictobox-api/internal/core/auth"
	"github.com/pictobox/pictobox-api/internal/core/domain"
	"github.com/pictobox/pictobox-api/internal/core/ports"
)

type fakeAuth struct{ tokens *auth.TokenService }

func (f fakeAuth) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return f.result(&domain.User{ID: "u1", Username: in.Username, Email: in.Email})
}

func (f fakeAuth) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if password != "pw123" {
		return nil, domain.ErrInvalidCredentials
	}
	return f.result(&domain.User{ID: "u1", Username: "alice", Email: email})
}

func (f fakeAuth) ChangePassword(ctx context.Context, claims domain.Claims, current, next string) error {
	return nil
}

func (f fakeAuth) result(u *domain.User) (*ports.AuthResult, error) {
	token, err := f.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: u}, nil
}

type fakeProfiles struct{ ports.ProfileService }

func (fakeProfiles) GetOwnProfile(ctx context.Context, userID string) (*ports.ProfileView, error) {
	return &ports.ProfileView{User: &domain.User{ID: userID, Username: "alice"}}, nil
}

func (fakeProfiles) UpdateProfileData(ctx context.Context, claims domain.Claims, upd ports.ProfileUpdate) (*ports.AuthResult, error) {
	return &ports.AuthResult{Token: "t", User: &domain.User{ID: claims.UserID, Username: upd.Username}}, nil
}

type denyAll struct{}

func (denyAll) Allow(ctx context.Context, key string) (bool, error) { return false, nil }

func newTestRouter(t *testing.T) (http.Handler, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService(auth.TokenConfig{Secret: "router-secret", TTL: time.Hour})
	if err != nil {
		t.Fatalf("token service: %v", err)
	}

	e := NewRouter(Dependencies{
		Auth:     fakeAuth{tokens: tokens},
		Profiles: fakeProfiles{},
		Tokens:   tokens,
		Log:      zerolog.Nop(),
		Registry: prometheus.NewRegistry(),
	})
	return e, tokens
}

func do(h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_LoginThenProfile(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(h, http.MethodPost, "/login", `{"email":"alice@x.com","password":"nope"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", rec.Code)
	}

	rec = do(h, http.MethodPost, "/login", `{"email":"alice@x.com","password":"pw123"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	token := extractToken(t, rec.Body.String())

	if rec := do(h, http.MethodGet, "/profile", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous profile: expected 401, got %d", rec.Code)
	}
	if rec := do(h, http.MethodGet, "/profile", "", "garbage"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", rec.Code)
	}
	if rec := do(h, http.MethodGet, "/profile", "", token); rec.Code != http.StatusOK {
		t.Fatalf("own profile: expected 200, got %d", rec.Code)
	}
}

func TestRouter_RequireSelf(t *testing.T) {
	h, tokens := newTestRouter(t)
	token, err := tokens.Issue(&domain.User{ID: "u1", Username: "alice"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	body := `{"username":"alice","email":"alice@x.com"}`

	if rec := do(h, http.MethodPut, "/profile/bob/profile-data", body, token); rec.Code != http.StatusForbidden {
		t.Fatalf("other profile: expected 403, got %d", rec.Code)
	}
	if rec := do(h, http.MethodPut, "/profile/alice/profile-data", body, token); rec.Code != http.StatusOK {
		t.Fatalf("own profile: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_Throttle(t *testing.T) {
	tokens, err := auth.NewTokenService(auth.TokenConfig{Secret: "router-secret"})
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	e := NewRouter(Dependencies{
		Auth:         fakeAuth{tokens: tokens},
		Tokens:       tokens,
		LoginLimiter: denyAll{},
		Log:          zerolog.Nop(),
		Registry:     prometheus.NewRegistry(),
	})

	rec := do(e, http.MethodPost, "/login", `{"email":"alice@x.com","password":"pw123"}`, "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestRouter_Operations(t *testing.T) {
	h, _ := newTestRouter(t)

	if rec := do(h, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
	if rec := do(h, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("ready: expected 200, got %d", rec.Code)
	}
	rec := do(h, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "pictobox_http_requests_total") {
		t.Fatalf("metrics: unexpected response %d", rec.Code)
	}
	if rec := do(h, http.MethodGet, "/nope", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown route: expected 404, got %d", rec.Code)
	}
}

func extractToken(t *testing.T, body string) string {
	t.Helper()
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil || resp.Token == "" {
		t.Fatalf("no token in %s", body)
	}
	return resp.Token
}
