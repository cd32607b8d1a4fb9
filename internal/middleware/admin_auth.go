package middleware

import (
	"net/http"

	"github.com/antonv42/textpost/backend/internal/models"
	"github.com/antonv42/textpost/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// AdminAuth restricts a route to administrator accounts. Must run after
// RequireAuth so the session claims are already on the context.
func AdminAuth(userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ClaimsContextKey).(*models.JwtCustomClaims)
			if !ok || claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			user, err := userRepo.GetUserByID(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Admin check failed")
			}
			if !user.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Administrators only")
			}

			return next(c)
		}
	}
}
