package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volunteerin/partner-gateway/internal/store"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestSessionAuthRejectsMissingAndUnknownTokens(t *testing.T) {
	mem := store.NewMemoryStore()
	mw := SessionAuth(mem)
	e := echo.New()

	// No Authorization header at all.
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, mw(okHandler)(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A bearer value no session was ever minted for.
	req = httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-session")
	rec = httptest.NewRecorder()
	require.NoError(t, mw(okHandler)(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthInjectsRecord(t *testing.T) {
	mem := store.NewMemoryStore()
	id, err := store.NewSessionID()
	require.NoError(t, err)
	rec := store.SessionRecord{UserID: "u-1", Name: "Rina", Role: "PARTNER", AccessToken: "tok"}
	require.NoError(t, store.SaveSession(context.Background(), mem, id, rec, time.Minute))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+id)
	w := httptest.NewRecorder()
	c := e.NewContext(req, w)

	var got store.SessionRecord
	next := func(c echo.Context) error {
		got, _ = c.Get(ContextSession).(store.SessionRecord)
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, SessionAuth(mem)(next)(c))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1", got.UserID)
	assert.Equal(t, "tok", got.AccessToken)
	assert.Equal(t, "u-1", c.Get("user_id"))
	assert.Equal(t, id, c.Get(ContextSessionID))
}

func TestRequireRoleBlocksOtherRoles(t *testing.T) {
	e := echo.New()
	mw := RequireRole("PARTNER")

	req := httptest.NewRequest(http.MethodGet, "/v1/partner/events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", "VOLUNTEER")
	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/partner/events", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set("role", "PARTNER")
	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
