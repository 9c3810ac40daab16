package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pictobox/pictobox-api/internal/core/auth"
	"github.com/pictobox/pictobox-api/internal/core/domain"
	"github.com/pictobox/pictobox-api/internal/metrics"
)

// RequireSelf only lets the request through when the :username route
// parameter names the authenticated caller. It must run after Auth.
func RequireSelf() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := ClaimsFrom(c)

			err := auth.AuthorizeHandle(claims, c.Param("username"))
			switch {
			case err == nil:
				return next(c)
			case errors.Is(err, domain.ErrUnauthenticated):
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			default:
				metrics.AuthorizationDenialsTotal.WithLabelValues("profile").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
		}
	}
}
