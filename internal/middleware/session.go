package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/volunteerin/partner-gateway/internal/store"
)

// ContextSession is the context key under which SessionAuth stores the
// resolved session record.
const ContextSession = "session"

// ContextSessionID is the context key for the raw session id, kept around so
// logout and token refresh can address the store entry.
const ContextSessionID = "session_id"

// SessionAuth returns an Echo middleware that resolves the Bearer session id
// against the keyed store and injects the session record into the request
// context. The browser holds only this opaque id; the upstream bearer token
// lives inside the stored record. Handlers access the record via
// c.Get(ContextSession) and the user id via c.Get("user_id").
func SessionAuth(s store.KeyedStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			rec, err := store.LoadSession(c.Request().Context(), s, raw)
			if err != nil {
				// Absent, expired and revoked all look the same to the client.
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired session"})
			}

			c.Set(ContextSession, rec)
			c.Set(ContextSessionID, raw)
			c.Set("user_id", rec.UserID)
			c.Set("role", rec.Role)
			return next(c)
		}
	}
}

// RequireRole returns a middleware function that enforces that the
// authenticated user has one of the specified roles. It assumes SessionAuth
// already stored the role in the context. If the user's role is not in the
// allowed set, the request is aborted with a 403 Forbidden response.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := c.Get("role")
			role, ok := v.(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
