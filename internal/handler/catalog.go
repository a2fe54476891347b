package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/volunteerin/partner-gateway/internal/platform"
	"github.com/volunteerin/partner-gateway/internal/store"
)

// CatalogHandler proxies the platform's benefit and category catalogs.  The
// routes sit behind the Redis response cache, so most dashboard loads never
// reach the upstream.
type CatalogHandler struct {
	Client *platform.Client
	Store  store.KeyedStore
}

func NewCatalogHandler(client *platform.Client, s store.KeyedStore) *CatalogHandler {
	return &CatalogHandler{Client: client, Store: s}
}

// Benefits lists the selectable volunteer benefits.
func (h *CatalogHandler) Benefits(c echo.Context) error {
	rec, _, err := currentSession(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session"})
	}
	items, err := h.Client.Benefits(c.Request().Context(), rec.AccessToken)
	if err != nil {
		return upstreamError(c, h.Store, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Categories lists event categories, filtered by ?type= (default EVENT).
func (h *CatalogHandler) Categories(c echo.Context) error {
	rec, _, err := currentSession(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session"})
	}
	typ := strings.ToUpper(strings.TrimSpace(c.QueryParam("type")))
	if typ == "" {
		typ = "EVENT"
	}
	items, err := h.Client.Categories(c.Request().Context(), rec.AccessToken, typ)
	if err != nil {
		return upstreamError(c, h.Store, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
