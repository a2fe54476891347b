package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/volunteerin/partner-gateway/internal/config"
	"github.com/volunteerin/partner-gateway/internal/handler"
	"github.com/volunteerin/partner-gateway/internal/middleware"
	"github.com/volunteerin/partner-gateway/internal/store"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints and the session-scoped account
// routes.  Unauthenticated operations live under /v1/auth; /v1/me and
// /v1/auth/logout require a live session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, s store.KeyedStore) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Logout needs the session it is revoking, so it sits behind SessionAuth.
	g.POST("/logout", a.Logout, middleware.SessionAuth(s))

	auth := e.Group("/v1", middleware.SessionAuth(s))
	auth.GET("/me", a.Me)
}

// RegisterCatalog registers the benefit and category catalog proxies.  Both
// sit behind the Redis response cache: the catalogs change rarely upstream
// and every dashboard load reads them.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, s store.KeyedStore, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group(
		"/v1",
		middleware.SessionAuth(s),
		middleware.NewCatalogCache(cacheCfg, rdb),
	)
	g.GET("/benefits", h.Benefits)
	g.GET("/categories", h.Categories)
}
