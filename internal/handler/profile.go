package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/volunteerin/partner-gateway/internal/imaging"
	"github.com/volunteerin/partner-gateway/internal/platform"
	"github.com/volunteerin/partner-gateway/internal/store"
)

// profileFields are the text inputs forwarded to the platform as-is.  Blank
// values are dropped so a partial form never blanks an upstream field.
var profileFields = []string{
	"organizationName", "description", "phone",
	"website", "instagram", "address",
}

// logoPreviewTTL bounds the cached downscaled logo.  The preview only
// exists so the dashboard can show the logo immediately after upload
// without re-fetching the upstream profile.
const logoPreviewTTL = 24 * time.Hour

// ProfileHandler manages the partner profile: text fields plus an optional
// logo that is downscaled before leaving the gateway.
type ProfileHandler struct {
	Client *platform.Client
	Store  store.KeyedStore
}

func NewProfileHandler(client *platform.Client, s store.KeyedStore) *ProfileHandler {
	return &ProfileHandler{Client: client, Store: s}
}

// Create handles POST (first-time profile); Update handles PUT.
func (h *ProfileHandler) Create(c echo.Context) error { return h.upsert(c, false) }
func (h *ProfileHandler) Update(c echo.Context) error { return h.upsert(c, true) }

func (h *ProfileHandler) upsert(c echo.Context, update bool) error {
	rec, _, err := currentSession(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session"})
	}

	fields := make(map[string]string, len(profileFields))
	for _, name := range profileFields {
		if v := c.FormValue(name); v != "" {
			fields[name] = v
		}
	}

	var logo []byte
	logoName := ""
	if fh, ferr := c.FormFile("logo"); ferr == nil {
		src, oerr := fh.Open()
		if oerr != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable logo upload"})
		}
		raw, rerr := io.ReadAll(src)
		_ = src.Close()
		if rerr != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable logo upload"})
		}
		logo, err = imaging.Downscale(raw, imaging.MaxLogoDim)
		if errors.Is(err, imaging.ErrNotAnImage) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "logo must be an image"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logo processing failed"})
		}
		logoName = fh.Filename

		// Cache the processed preview so GET /profile/logo serves it
		// without another upstream round trip.
		if serr := h.Store.Set(c.Request().Context(), store.LogoPreviewKey(rec.UserID), logo, logoPreviewTTL); serr != nil {
			c.Logger().Warnf("logo preview cache failed: %v", serr)
		}
	}

	out, err := h.Client.UpsertProfile(c.Request().Context(), rec.AccessToken, fields, logo, logoName, update)
	if err != nil {
		return upstreamError(c, h.Store, err)
	}
	status := http.StatusOK
	if !update {
		status = http.StatusCreated
	}
	return c.JSON(status, out)
}

// Logo serves the cached downscaled preview, if one exists.
func (h *ProfileHandler) Logo(c echo.Context) error {
	rec, _, err := currentSession(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session"})
	}
	bs, err := h.Store.Get(c.Request().Context(), store.LogoPreviewKey(rec.UserID))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no cached logo"})
	}
	return c.Blob(http.StatusOK, "image/jpeg", bs)
}
