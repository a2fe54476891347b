package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/volunteerin/partner-gateway/internal/config"
	"github.com/volunteerin/partner-gateway/internal/handler"
	"github.com/volunteerin/partner-gateway/internal/middleware"
	"github.com/volunteerin/partner-gateway/internal/store"
)

// RegisterPartner registers PARTNER-scoped endpoints under /v1.
// All routes require a live session with the PARTNER role.
func RegisterPartner(e *echo.Echo, p *handler.ProfileHandler, ev *handler.EventsHandler, s store.KeyedStore) {
	g := e.Group(
		"/v1/partner",
		middleware.SessionAuth(s),
		middleware.RequireRole("PARTNER"),
	)

	// ---- Profile ----
	g.POST("/profile", p.Create)
	g.PUT("/profile", p.Update)
	g.GET("/profile/logo", p.Logo)

	// ---- Published events ----
	g.GET("/events", ev.List)
	g.GET("/events/:id", ev.Detail)
	g.GET("/events/:id/registrants", ev.Registrants)
	g.POST("/events/:id/registrants/:rid", ev.Review)
}

// RegisterDrafts registers the draft editing flow.  The submit endpoint
// carries the token-bucket limiter: each submission can fan out to three
// upstream attempts, so retry loops are bounded per user.
func RegisterDrafts(e *echo.Echo, d *handler.DraftHandler, s store.KeyedStore, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group(
		"/v1/drafts",
		middleware.SessionAuth(s),
		middleware.RequireRole("PARTNER"),
	)

	g.POST("", d.Create)
	// The recovery route must precede /:id so Echo does not swallow it.
	g.GET("/recovery", d.Recovery)
	g.GET("/:id", d.Get)
	g.PATCH("/:id/sections/:section", d.UpdateSection)
	g.POST("/:id/banner", d.UploadBanner)
	g.POST("/:id/validate", d.Validate)
	g.POST("/:id/submit", d.Submit, middleware.NewTokenBucket(rlCfg, rdb))
	g.DELETE("/:id", d.Delete)
}
