package auth

import "github.com/pictobox/pictobox-api/internal/core/domain"

// Authorize allows the call only when the verified identity owns the resource.
// There is no role hierarchy: equality of ids is the sole rule.
func Authorize(claims domain.Claims, ownerID string) error {
	if claims.UserID == "" {
		return domain.ErrUnauthenticated
	}
	if ownerID == "" || claims.UserID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}

// AuthorizeHandle guards routes addressed by username: the username claim must
// match the handle in the URL.
func AuthorizeHandle(claims domain.Claims, username string) error {
	if claims.UserID == "" {
		return domain.ErrUnauthenticated
	}
	if username == "" || claims.Username != username {
		return domain.ErrForbidden
	}
	return nil
}
