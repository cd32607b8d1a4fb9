package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/antonv42/textpost/backend/internal/middleware"
	"github.com/antonv42/textpost/backend/internal/models"
	"github.com/antonv42/textpost/backend/internal/render"
	"github.com/antonv42/textpost/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	e := echo.New()
	renderer, err := render.New()
	assert.NoError(t, err)
	e.Renderer = renderer
	e.Validator = validators.NewValidator()
	return e
}

func newFormContext(t *testing.T, e *echo.Echo, method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asViewer(c echo.Context, user *models.User) {
	c.Set(middleware.ClaimsContextKey, &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
	})
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok, "expected *echo.HTTPError, got %v", err)
	return he.Code
}
