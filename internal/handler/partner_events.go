package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/volunteerin/partner-gateway/internal/model"
	"github.com/volunteerin/partner-gateway/internal/platform"
	"github.com/volunteerin/partner-gateway/internal/store"
)

// EventsHandler exposes the partner's published events and their
// registrants.  All reads proxy straight to the platform with the session's
// bearer token; the gateway adds nothing but pagination hygiene.
type EventsHandler struct {
	Client *platform.Client
	Store  store.KeyedStore
}

func NewEventsHandler(client *platform.Client, s store.KeyedStore) *EventsHandler {
	return &EventsHandler{Client: client, Store: s}
}

func intParam(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return n
	}
	return def
}

// List returns one page of the partner's events.
func (h *EventsHandler) List(c echo.Context) error {
	rec, _, err := currentSession(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session"})
	}
	page, err := h.Client.ListEvents(c.Request().Context(), rec.AccessToken,
		intParam(c, "page", 1), intParam(c, "limit", 10))
	if err != nil {
		return upstreamError(c, h.Store, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Detail returns the full platform record of one event.
func (h *EventsHandler) Detail(c echo.Context) error {
	rec, _, err := currentSession(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session"})
	}
	out, err := h.Client.EventDetail(c.Request().Context(), rec.AccessToken, c.Param("id"))
	if err != nil {
		return upstreamError(c, h.Store, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Registrants lists one page of an event's applicants with the dashboard's
// filter set: page, limit, sort, status, s (search).
func (h *EventsHandler) Registrants(c echo.Context) error {
	rec, _, err := currentSession(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session"})
	}
	rq := platform.RegistrantQuery{
		Page:   intParam(c, "page", 1),
		Limit:  intParam(c, "limit", 10),
		Sort:   c.QueryParam("sort"),
		Status: c.QueryParam("status"),
		Search: c.QueryParam("s"),
	}
	page, err := h.Client.Registrants(c.Request().Context(), rec.AccessToken, c.Param("id"), rq)
	if err != nil {
		return upstreamError(c, h.Store, err)
	}
	return c.JSON(http.StatusOK, page)
}

type reviewReq struct {
	Status string `json:"status"`
}

// Review accepts or rejects one applicant.
func (h *EventsHandler) Review(c echo.Context) error {
	rec, _, err := currentSession(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status != model.RegistrantAccepted && status != model.RegistrantRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be accepted or rejected"})
	}
	if err := h.Client.ReviewRegistrant(c.Request().Context(), rec.AccessToken,
		c.Param("id"), c.Param("rid"), status); err != nil {
		return upstreamError(c, h.Store, err)
	}
	return c.NoContent(http.StatusNoContent)
}
