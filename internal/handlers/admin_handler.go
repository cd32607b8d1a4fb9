package handlers

import (
	"net/http"

	"github.com/antonv42/textpost/backend/internal/cache"
	"github.com/labstack/echo/v4"
)

// AdminHandler handles administrative maintenance routes
type AdminHandler struct {
	pageCache *cache.PageCache
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(pageCache *cache.PageCache) *AdminHandler {
	return &AdminHandler{pageCache: pageCache}
}

// RegisterAdminRoutes registers admin routes, gated to administrators
func (h *AdminHandler) RegisterAdminRoutes(e *echo.Echo, requireAuth, adminAuth echo.MiddlewareFunc) {
	e.POST("/internal/cache/clear", h.ClearCache, requireAuth, adminAuth)
}

// ClearCache drops every cached page, forcing the next index request to
// re-render from the store
func (h *AdminHandler) ClearCache(c echo.Context) error {
	h.pageCache.Clear()
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
