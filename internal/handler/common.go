package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/volunteerin/partner-gateway/internal/draft"
	"github.com/volunteerin/partner-gateway/internal/middleware"
	"github.com/volunteerin/partner-gateway/internal/platform"
	"github.com/volunteerin/partner-gateway/internal/repository"
	"github.com/volunteerin/partner-gateway/internal/store"
)

// currentSession returns the session record SessionAuth stored in the
// context, plus the raw session id so handlers can update or revoke it.
func currentSession(c echo.Context) (store.SessionRecord, string, error) {
	rec, ok := c.Get(middleware.ContextSession).(store.SessionRecord)
	if !ok {
		return store.SessionRecord{}, "", errors.New("no session in context")
	}
	raw, _ := c.Get(middleware.ContextSessionID).(string)
	return rec, raw, nil
}

// upstreamError translates a platform client failure into the gateway's own
// response. An upstream 401/403 revokes the gateway session so the browser
// is forced back through login instead of replaying a dead token.
func upstreamError(c echo.Context, s store.KeyedStore, err error) error {
	var apiErr *platform.APIError
	if !errors.As(err, &apiErr) {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}
	switch apiErr.Kind() {
	case platform.KindAuth:
		if _, raw, serr := currentSession(c); serr == nil && raw != "" {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = store.DeleteSession(ctx, s, raw)
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session no longer valid, sign in again"})
	case platform.KindTooLarge:
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": apiErr.PreferredMessage()})
	case platform.KindValidation:
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  apiErr.PreferredMessage(),
			"fields": apiErr.Errors,
		})
	case platform.KindTransport:
		return c.JSON(http.StatusBadGateway, echo.Map{"error": apiErr.PreferredMessage()})
	default:
		status := apiErr.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		return c.JSON(status, echo.Map{"error": apiErr.PreferredMessage()})
	}
}

// draftError maps draft manager and repository failures onto HTTP statuses.
func draftError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrDraftNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "draft not found"})
	case errors.Is(err, repository.ErrForbidden), errors.Is(err, draft.ErrNotOwner):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "draft access failed"})
	}
}
