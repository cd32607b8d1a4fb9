package middleware

import (
	"net/http"

	"github.com/antonv42/textpost/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// SessionCookie is the name of the cookie carrying the session JWT
const SessionCookie = "session"

// LoginPath is where unauthenticated requests to protected routes are sent
const LoginPath = "/auth/login/"

// ClaimsContextKey is the echo context key the parsed session claims are
// stored under
const ClaimsContextKey = "user"

func parseSession(c echo.Context, jwtSecret string) (*models.JwtCustomClaims, error) {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Missing session cookie")
	}

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	return claims, nil
}

// RequireAuth checks for a valid session and redirects anonymous
// visitors to the login page.
func RequireAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseSession(c, jwtSecret)
			if err != nil {
				return c.Redirect(http.StatusFound, LoginPath)
			}
			c.Set(ClaimsContextKey, claims)
			return next(c)
		}
	}
}

// OptionalAuth attaches session claims when a valid session cookie is
// present but never blocks the request. Public pages use it to adapt
// their rendering to the viewer.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, err := parseSession(c, jwtSecret); err == nil {
				c.Set(ClaimsContextKey, claims)
			}
			return next(c)
		}
	}
}
