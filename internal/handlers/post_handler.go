package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/antonv42/textpost/backend/internal/models"
	"github.com/antonv42/textpost/backend/internal/repositories"
	"github.com/antonv42/textpost/backend/validators"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PostHandler handles post detail, creation and editing
type PostHandler struct {
	postRepository    repositories.PostRepository
	groupRepository   repositories.GroupRepository
	commentRepository repositories.CommentRepository
	mediaDir          string
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, groupRepo repositories.GroupRepository, commentRepo repositories.CommentRepository, mediaDir string) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		groupRepository:   groupRepo,
		commentRepository: commentRepo,
		mediaDir:          mediaDir,
	}
}

// RegisterPostRoutes registers post routes. Creation and editing require
// a session; the detail page is public.
func (h *PostHandler) RegisterPostRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	e.GET("/posts/:id/", h.Detail)
	e.GET("/create/", h.CreateForm, requireAuth)
	e.POST("/create/", h.Create, requireAuth)
	e.GET("/posts/:id/edit/", h.EditForm, requireAuth)
	e.POST("/posts/:id/edit/", h.Edit, requireAuth)
}

func parsePostID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	return uint(id), nil
}

// Detail renders a single post with its comments and the comment form
func (h *PostHandler) Detail(c echo.Context) error {
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

	comments, err := h.commentRepository.GetCommentsByPostID(post.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "post_detail.html", echo.Map{
		"Viewer":   currentClaims(c),
		"Post":     post,
		"Comments": comments,
		"Form":     models.CommentForm{},
	})
}

// CreateForm renders an empty post form
func (h *PostHandler) CreateForm(c echo.Context) error {
	return h.renderPostForm(c, models.PostForm{}, nil, false, 0)
}

// Create publishes a new post. The author is always the session user;
// any client-supplied author is ignored.
func (h *PostHandler) Create(c echo.Context) error {
	claims := currentClaims(c)

	var form models.PostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderPostForm(c, form, validators.FieldErrors(err), false, 0)
	}

	groupID, ferr := h.resolveGroup(form.Group)
	if ferr != nil {
		return h.renderPostForm(c, form, []validators.FieldError{*ferr}, false, 0)
	}

	image, err := h.saveImage(c)
	if err != nil {
		return h.renderPostForm(c, form, []validators.FieldError{{Field: "image", Message: "Could not store the uploaded image."}}, false, 0)
	}

	post := &models.Post{
		Text:     form.Text,
		PubDate:  time.Now(),
		AuthorID: claims.UserID,
		GroupID:  groupID,
		Image:    image,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, "/profile/"+claims.Username+"/")
}

// EditForm renders the pre-filled form for a post. Non-authors are
// redirected to the read-only detail page.
func (h *PostHandler) EditForm(c echo.Context) error {
	post, redirect, err := h.ownedPost(c)
	if err != nil {
		return err
	}
	if redirect {
		return c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
	}

	form := models.PostForm{Text: post.Text}
	if post.Group != nil {
		form.Group = post.Group.Slug
	}
	return h.renderPostForm(c, form, nil, true, post.ID)
}

// Edit applies changes to a post. Omitting the group clears it; the
// publication date is never touched.
func (h *PostHandler) Edit(c echo.Context) error {
	post, redirect, err := h.ownedPost(c)
	if err != nil {
		return err
	}
	if redirect {
		return c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
	}

	var form models.PostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderPostForm(c, form, validators.FieldErrors(err), true, post.ID)
	}

	groupID, ferr := h.resolveGroup(form.Group)
	if ferr != nil {
		return h.renderPostForm(c, form, []validators.FieldError{*ferr}, true, post.ID)
	}

	image, err := h.saveImage(c)
	if err != nil {
		return h.renderPostForm(c, form, []validators.FieldError{{Field: "image", Message: "Could not store the uploaded image."}}, true, post.ID)
	}

	post.Text = form.Text
	post.GroupID = groupID
	post.Group = nil
	if image != "" {
		post.Image = image
	}
	if err := h.postRepository.UpdatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}

// ownedPost loads the requested post and reports whether the viewer must
// be bounced to the detail page instead of editing it
func (h *PostHandler) ownedPost(c echo.Context) (*models.Post, bool, error) {
	id, err := parsePostID(c)
	if err != nil {
		return nil, false, err
	}

	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return nil, false, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return post, post.AuthorID != getUserIDFromContext(c), nil
}

// resolveGroup maps a submitted group slug to its ID. The empty slug
// means no group.
func (h *PostHandler) resolveGroup(slug string) (*uint, *validators.FieldError) {
	if slug == "" {
		return nil, nil
	}
	group, err := h.groupRepository.GetGroupBySlug(slug)
	if err != nil {
		return nil, &validators.FieldError{Field: "group", Message: "Choose an existing group."}
	}
	return &group.ID, nil
}

// saveImage stores an uploaded image under the media directory and
// returns its relative path. Returns "" when no file was submitted.
func (h *PostHandler) saveImage(c echo.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	return h.storeUpload(file)
}

func (h *PostHandler) storeUpload(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	rel := filepath.Join("posts", uuid.New().String()+filepath.Ext(file.Filename))
	path := filepath.Join(h.mediaDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return rel, nil
}

func (h *PostHandler) renderPostForm(c echo.Context, form models.PostForm, errs []validators.FieldError, isEdit bool, postID uint) error {
	groups, err := h.groupRepository.GetGroups()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Render(http.StatusOK, "create_post.html", echo.Map{
		"Viewer": currentClaims(c),
		"Form":   form,
		"Errors": errs,
		"Groups": groups,
		"IsEdit": isEdit,
		"PostID": postID,
	})
}
