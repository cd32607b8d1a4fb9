package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/antonv42/textpost/backend/internal/middleware"
	"github.com/antonv42/textpost/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func sessionCookieFrom(rec interface{ Result() *http.Response }) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie
		}
	}
	return nil
}

func TestSignupCreatesUserAndSession(t *testing.T) {
	store := newFakeStore()
	handler := NewAuthHandler(store, "test-secret")
	e := newTestEcho(t)

	c, rec := newFormContext(t, e, http.MethodPost, "/auth/signup/", url.Values{
		"username": {"alice"},
		"email":    {"alice@example.com"},
		"password": {"long-enough-pw"},
	})

	assert.NoError(t, handler.Signup(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	user, err := store.GetUserByUsername("alice")
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("long-enough-pw")))

	cookie := sessionCookieFrom(rec)
	if assert.NotNil(t, cookie) {
		assert.NotEmpty(t, cookie.Value)
	}
}

func TestSignupRejectsShortPassword(t *testing.T) {
	store := newFakeStore()
	handler := NewAuthHandler(store, "test-secret")
	e := newTestEcho(t)

	c, rec := newFormContext(t, e, http.MethodPost, "/auth/signup/", url.Values{
		"username": {"alice"},
		"email":    {"alice@example.com"},
		"password": {"short"},
	})

	assert.NoError(t, handler.Signup(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.users)
}

func TestSignupRejectsTakenUsername(t *testing.T) {
	store := newFakeStore()
	assert.NoError(t, store.CreateUser(&models.User{Username: "alice", Email: "first@example.com"}))
	handler := NewAuthHandler(store, "test-secret")
	e := newTestEcho(t)

	c, rec := newFormContext(t, e, http.MethodPost, "/auth/signup/", url.Values{
		"username": {"alice"},
		"email":    {"second@example.com"},
		"password": {"long-enough-pw"},
	})

	assert.NoError(t, handler.Signup(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "already taken")
	assert.Len(t, store.users, 1)
}

func TestLoginWithCorrectCredentials(t *testing.T) {
	store := newFakeStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("long-enough-pw"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	assert.NoError(t, store.CreateUser(&models.User{
		Username: "alice",
		Email:    "alice@example.com",
		Password: string(hash),
	}))

	handler := NewAuthHandler(store, "test-secret")
	e := newTestEcho(t)

	c, rec := newFormContext(t, e, http.MethodPost, "/auth/login/", url.Values{
		"username": {"alice"},
		"password": {"long-enough-pw"},
	})

	assert.NoError(t, handler.Login(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.NotNil(t, sessionCookieFrom(rec))
}

func TestLoginWithWrongPasswordRedisplays(t *testing.T) {
	store := newFakeStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("long-enough-pw"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	assert.NoError(t, store.CreateUser(&models.User{
		Username: "alice",
		Email:    "alice@example.com",
		Password: string(hash),
	}))

	handler := NewAuthHandler(store, "test-secret")
	e := newTestEcho(t)

	c, rec := newFormContext(t, e, http.MethodPost, "/auth/login/", url.Values{
		"username": {"alice"},
		"password": {"wrong-password"},
	})

	assert.NoError(t, handler.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Incorrect username or password.")
	assert.Nil(t, sessionCookieFrom(rec))
}

func TestLogoutExpiresSession(t *testing.T) {
	handler := NewAuthHandler(newFakeStore(), "test-secret")
	e := newTestEcho(t)

	c, rec := newFormContext(t, e, http.MethodGet, "/auth/logout/", nil)

	assert.NoError(t, handler.Logout(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	cookie := sessionCookieFrom(rec)
	if assert.NotNil(t, cookie) {
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)
	}
}
