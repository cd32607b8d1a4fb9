package handlers

import (
	"github.com/antonv42/textpost/backend/internal/middleware"
	"github.com/antonv42/textpost/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// currentClaims returns the session claims set by the auth middleware,
// or nil for anonymous viewers
func currentClaims(c echo.Context) *models.JwtCustomClaims {
	claims, _ := c.Get(middleware.ClaimsContextKey).(*models.JwtCustomClaims)
	return claims
}

// getUserIDFromContext returns the authenticated user's ID, 0 if anonymous
func getUserIDFromContext(c echo.Context) uint {
	if claims := currentClaims(c); claims != nil {
		return claims.UserID
	}
	return 0
}
