package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pictobox/pictobox-api/internal/api/middleware"
	"github.com/pictobox/pictobox-api/internal/core/domain"
)

// ctxClaims returns the verified caller. Routes behind middleware.Auth always
// have claims; their absence means the route was wired without it.
func ctxClaims(c echo.Context) (domain.Claims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}

// viewerID is the caller's id on optionally authenticated routes, or "".
func viewerID(c echo.Context) string {
	claims, _ := middleware.ClaimsFrom(c)
	return claims.UserID
}

// bindAndValidate decodes the request body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

type messageResponse struct {
	Message string `json:"message"`
}
