package handlers

import (
	"net/http"
	"time"

	"github.com/antonv42/textpost/backend/internal/middleware"
	"github.com/antonv42/textpost/backend/internal/models"
	"github.com/antonv42/textpost/backend/internal/repositories"
	"github.com/antonv42/textpost/backend/validators"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const sessionLifetime = 72 * time.Hour

// AuthHandler handles signup, login and logout
type AuthHandler struct {
	userRepository repositories.UserRepository
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.GET("/signup/", h.SignupForm)
	g.POST("/signup/", h.Signup)
	g.GET("/login/", h.LoginForm)
	g.POST("/login/", h.Login)
	g.GET("/logout/", h.Logout)
}

// SignupForm renders an empty registration form
func (h *AuthHandler) SignupForm(c echo.Context) error {
	return c.Render(http.StatusOK, "signup.html", echo.Map{
		"Viewer": currentClaims(c),
		"Form":   models.SignupForm{},
	})
}

// Signup registers a new user and opens a session for them
func (h *AuthHandler) Signup(c echo.Context) error {
	var form models.SignupForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusOK, "signup.html", echo.Map{
			"Viewer": currentClaims(c),
			"Form":   form,
			"Errors": validators.FieldErrors(err),
		})
	}

	if _, err := h.userRepository.GetUserByUsername(form.Username); err == nil {
		return c.Render(http.StatusOK, "signup.html", echo.Map{
			"Viewer": currentClaims(c),
			"Form":   form,
			"Errors": []validators.FieldError{{Field: "username", Message: "This username is already taken."}},
		})
	}
	if _, err := h.userRepository.GetUserByEmail(form.Email); err == nil {
		return c.Render(http.StatusOK, "signup.html", echo.Map{
			"Viewer": currentClaims(c),
			"Form":   form,
			"Errors": []validators.FieldError{{Field: "email", Message: "This email is already registered."}},
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username: form.Username,
		Email:    form.Email,
		Password: string(hashedPassword),
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.openSession(c, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to open session after signup")
	}
	return c.Redirect(http.StatusFound, "/")
}

// LoginForm renders an empty login form
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", echo.Map{
		"Viewer": currentClaims(c),
		"Form":   models.LoginForm{},
	})
}

// Login authenticates a user and opens a session for them
func (h *AuthHandler) Login(c echo.Context) error {
	var form models.LoginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusOK, "login.html", echo.Map{
			"Viewer": currentClaims(c),
			"Form":   form,
			"Errors": validators.FieldErrors(err),
		})
	}

	badCredentials := []validators.FieldError{{Message: "Incorrect username or password."}}

	user, err := h.userRepository.GetUserByUsername(form.Username)
	if err != nil {
		return c.Render(http.StatusOK, "login.html", echo.Map{
			"Viewer": currentClaims(c),
			"Form":   form,
			"Errors": badCredentials,
		})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(form.Password)); err != nil {
		return c.Render(http.StatusOK, "login.html", echo.Map{
			"Viewer": currentClaims(c),
			"Form":   form,
			"Errors": badCredentials,
		})
	}

	if err := h.openSession(c, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to open session")
	}
	return c.Redirect(http.StatusFound, "/")
}

// Logout expires the session cookie
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.Redirect(http.StatusFound, "/")
}

// openSession mints a session JWT for the user and sets the cookie
func (h *AuthHandler) openSession(c echo.Context, user *models.User) error {
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    signed,
		Path:     "/",
		Expires:  time.Now().Add(sessionLifetime),
		HttpOnly: true,
	})
	return nil
}
