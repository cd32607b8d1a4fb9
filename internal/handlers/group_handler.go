package handlers

import (
	"errors"
	"net/http"

	"github.com/antonv42/textpost/backend/internal/pagination"
	"github.com/antonv42/textpost/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// GroupHandler handles group listing pages
type GroupHandler struct {
	groupRepository repositories.GroupRepository
	postRepository  repositories.PostRepository
	pageSize        int
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupRepo repositories.GroupRepository, postRepo repositories.PostRepository, pageSize int) *GroupHandler {
	return &GroupHandler{
		groupRepository: groupRepo,
		postRepository:  postRepo,
		pageSize:        pageSize,
	}
}

// RegisterGroupRoutes registers group routes
func (h *GroupHandler) RegisterGroupRoutes(e *echo.Echo) {
	e.GET("/group/:slug/", h.GroupPosts)
}

// GroupPosts renders the paginated posts of one group, 404 on unknown slug
func (h *GroupHandler) GroupPosts(c echo.Context) error {
	group, err := h.groupRepository.GetGroupBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Group not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	number := pagination.Request(c.QueryParam("page"))
	total, err := h.postRepository.CountPostsByGroupID(group.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	page := pagination.Paginate(total, h.pageSize, number)

	posts, err := h.postRepository.GetPostsByGroupID(group.ID, page.Offset(), page.Size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "group_list.html", echo.Map{
		"Viewer": currentClaims(c),
		"Group":  group,
		"Posts":  posts,
		"Page":   page,
	})
}
