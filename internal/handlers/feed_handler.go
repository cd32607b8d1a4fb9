package handlers

import (
	"net/http"

	"github.com/antonv42/textpost/backend/internal/pagination"
	"github.com/antonv42/textpost/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles the public index feed and the followed-authors feed
type FeedHandler struct {
	postRepository   repositories.PostRepository
	followRepository repositories.FollowRepository
	pageSize         int
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository, followRepo repositories.FollowRepository, pageSize int) *FeedHandler {
	return &FeedHandler{
		postRepository:   postRepo,
		followRepository: followRepo,
		pageSize:         pageSize,
	}
}

// RegisterFeedRoutes registers feed routes. The index feed sits behind
// the page cache; the followed feed requires a session.
func (h *FeedHandler) RegisterFeedRoutes(e *echo.Echo, cacheMW, requireAuth echo.MiddlewareFunc) {
	e.GET("/", h.Index, cacheMW)
	e.GET("/follow/", h.FollowIndex, requireAuth)
}

// Index renders the paginated feed of all posts, newest first
func (h *FeedHandler) Index(c echo.Context) error {
	number := pagination.Request(c.QueryParam("page"))

	total, err := h.postRepository.CountPosts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	page := pagination.Paginate(total, h.pageSize, number)

	posts, err := h.postRepository.GetPosts(page.Offset(), page.Size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "index.html", echo.Map{
		"Viewer": currentClaims(c),
		"Posts":  posts,
		"Page":   page,
	})
}

// FollowIndex renders the paginated feed of posts by authors the
// current user follows
func (h *FeedHandler) FollowIndex(c echo.Context) error {
	userID := getUserIDFromContext(c)

	authorIDs, err := h.followRepository.GetFollowedAuthorIDs(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	number := pagination.Request(c.QueryParam("page"))
	total, err := h.postRepository.CountPostsByAuthorIDs(authorIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	page := pagination.Paginate(total, h.pageSize, number)

	posts, err := h.postRepository.GetPostsByAuthorIDs(authorIDs, page.Offset(), page.Size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "follow.html", echo.Map{
		"Viewer": currentClaims(c),
		"Posts":  posts,
		"Page":   page,
	})
}
