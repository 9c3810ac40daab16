package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/pictobox/pictobox-api/internal/core/domain"
)

func TestSocialHandler_Follow(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "ok"},
		{name: "self follow", err: domain.ErrSelfFollow, wantErr: domain.ErrSelfFollow},
		{name: "duplicate", err: domain.ErrAlreadyFollowing, wantErr: domain.ErrAlreadyFollowing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubSocialService{
				followFn: func(ctx context.Context, claims domain.Claims, followeeID string) error {
					if followeeID != "u2" {
						t.Fatalf("unexpected followee %q", followeeID)
					}
					return tt.err
				},
			}
			handler := NewSocialHandler(stub)

			c, rec := newContext(http.MethodPost, "/users/u2/follow", "", &alice, "followeeId", "u2")

			err := handler.Follow(c)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr == nil && rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
		})
	}
}
