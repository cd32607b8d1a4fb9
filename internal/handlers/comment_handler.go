package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/antonv42/textpost/backend/internal/models"
	"github.com/antonv42/textpost/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CommentHandler handles adding comments to posts
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
	}
}

// RegisterCommentRoutes registers comment routes
func (h *CommentHandler) RegisterCommentRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	e.POST("/posts/:id/comment/", h.AddComment, requireAuth)
}

// AddComment creates a comment on a post and redirects back to the
// detail page. The author and post are taken server-side; an invalid
// form redirects without saving anything.
func (h *CommentHandler) AddComment(c echo.Context) error {
	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	detail := fmt.Sprintf("/posts/%d/", post.ID)

	var form models.CommentForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&form); err != nil {
		return c.Redirect(http.StatusFound, detail)
	}

	comment := &models.Comment{
		Text:     form.Text,
		PubDate:  time.Now(),
		AuthorID: getUserIDFromContext(c),
		PostID:   post.ID,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, detail)
}
