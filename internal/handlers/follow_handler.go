package handlers

import (
	"errors"
	"net/http"

	"github.com/antonv42/textpost/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// FollowHandler handles follow/unfollow requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow routes, all session-gated
func (h *FollowHandler) RegisterFollowRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	e.GET("/profile/:username/follow/", h.Follow, requireAuth)
	e.GET("/profile/:username/unfollow/", h.Unfollow, requireAuth)
}

// Follow subscribes the current user to the author's posts and redirects
// back to the profile. Following yourself or following twice writes
// nothing and still redirects as if it succeeded.
func (h *FollowHandler) Follow(c echo.Context) error {
	author, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profile := "/profile/" + author.Username + "/"

	userID := getUserIDFromContext(c)
	if userID == author.ID {
		return c.Redirect(http.StatusFound, profile)
	}

	if err := h.followRepository.CreateFollow(userID, author.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Redirect(http.StatusFound, profile)
}

// Unfollow removes the subscription edge and redirects back to the
// profile. Unfollowing someone you never followed is a quiet no-op.
func (h *FollowHandler) Unfollow(c echo.Context) error {
	author, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.followRepository.DeleteFollow(getUserIDFromContext(c), author.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}
