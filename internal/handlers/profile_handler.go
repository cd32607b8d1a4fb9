package handlers

import (
	"errors"
	"net/http"

	"github.com/antonv42/textpost/backend/internal/pagination"
	"github.com/antonv42/textpost/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ProfileHandler handles author profile pages
type ProfileHandler struct {
	userRepository   repositories.UserRepository
	postRepository   repositories.PostRepository
	followRepository repositories.FollowRepository
	pageSize         int
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository, followRepo repositories.FollowRepository, pageSize int) *ProfileHandler {
	return &ProfileHandler{
		userRepository:   userRepo,
		postRepository:   postRepo,
		followRepository: followRepo,
		pageSize:         pageSize,
	}
}

// RegisterProfileRoutes registers profile routes
func (h *ProfileHandler) RegisterProfileRoutes(e *echo.Echo) {
	e.GET("/profile/:username/", h.Profile)
}

// Profile renders an author's paginated posts. For authenticated viewers
// it also reports whether they already follow the author.
func (h *ProfileHandler) Profile(c echo.Context) error {
	author, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	number := pagination.Request(c.QueryParam("page"))
	total, err := h.postRepository.CountPostsByAuthorID(author.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	page := pagination.Paginate(total, h.pageSize, number)

	posts, err := h.postRepository.GetPostsByAuthorID(author.ID, page.Offset(), page.Size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	isFollowing := false
	if viewerID := getUserIDFromContext(c); viewerID != 0 {
		isFollowing, err = h.followRepository.IsFollowing(viewerID, author.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	followers, _ := h.followRepository.GetFollowersCount(author.ID)
	following, _ := h.followRepository.GetFollowingCount(author.ID)

	return c.Render(http.StatusOK, "profile.html", echo.Map{
		"Viewer":      currentClaims(c),
		"Author":      author,
		"Posts":       posts,
		"Page":        page,
		"IsFollowing": isFollowing,
		"Followers":   followers,
		"Following":   following,
	})
}
