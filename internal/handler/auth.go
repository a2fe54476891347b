package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/volunteerin/partner-gateway/internal/config"
	"github.com/volunteerin/partner-gateway/internal/platform"
	"github.com/volunteerin/partner-gateway/internal/store"
)

// AuthHandler bundles dependencies for auth endpoints.  The gateway does not
// hold credentials itself: login and register proxy to the platform's auth
// endpoints, and the returned bearer token is wrapped in a gateway session.
type AuthHandler struct {
	Cfg    config.Config
	Client *platform.Client
	Store  store.KeyedStore
}

func NewAuthHandler(cfg config.Config, client *platform.Client, s store.KeyedStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Client: client, Store: s}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
type authResp struct {
	User    userPart `json:"user"`
	Session string   `json:"session"` // opaque id; the upstream token stays server-side
}

// Register creates a partner account upstream and opens a session.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/password required"})
	}

	res, err := h.Client.Register(c.Request().Context(), req.Name, req.Email, req.Password, "PARTNER")
	if err != nil {
		return upstreamError(c, h.Store, err)
	}
	return h.openSession(c, http.StatusCreated, res)
}

// Login verifies credentials upstream and opens a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	res, err := h.Client.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return upstreamError(c, h.Store, err)
	}
	return h.openSession(c, http.StatusOK, res)
}

func (h *AuthHandler) openSession(c echo.Context, status int, res platform.AuthResult) error {
	id, err := store.NewSessionID()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session create failed"})
	}
	rec := store.SessionRecord{
		UserID:      res.User.ID,
		Name:        res.User.Name,
		Email:       res.User.Email,
		Role:        res.User.Role,
		AccessToken: res.Token,
		CreatedAt:   time.Now().UTC(),
	}
	ttl := time.Duration(h.Cfg.SessionTTLMin) * time.Minute
	if err := store.SaveSession(c.Request().Context(), h.Store, id, rec, ttl); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session save failed"})
	}
	return c.JSON(status, authResp{
		User:    userPart{ID: rec.UserID, Name: rec.Name, Email: rec.Email, Role: rec.Role},
		Session: id, // raw id back to the client, only the hash is stored
	})
}

// Logout revokes the current session.
func (h *AuthHandler) Logout(c echo.Context) error {
	_, raw, err := currentSession(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session"})
	}
	if err := store.DeleteSession(c.Request().Context(), h.Store, raw); err != nil && err != store.ErrNotFound {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the signed-in account as the session recorded it.
func (h *AuthHandler) Me(c echo.Context) error {
	rec, _, err := currentSession(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session"})
	}
	return c.JSON(http.StatusOK, userPart{ID: rec.UserID, Name: rec.Name, Email: rec.Email, Role: rec.Role})
}
