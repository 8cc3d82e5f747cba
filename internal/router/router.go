// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/buscaaquibdc/marketplace-api/internal/config"
	"github.com/buscaaquibdc/marketplace-api/internal/handler"
	"github.com/buscaaquibdc/marketplace-api/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication and no
// domain handler: currently the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints. Register, login, refresh
// and logout are open; /api/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/api", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the guest browse endpoints. Listing and detail
// reads go through the Redis response cache; everything sits behind the
// shared rate limiter. The counter endpoints are open so guests count too.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, hl *handler.HighlightHandler, rdb *redis.Client) {
	rl := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)
	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)

	e.GET("/api/ads", p.ListAds, rl, cache)
	e.GET("/api/ads/:id", p.GetAd, rl)
	e.POST("/api/ads/:id/click", p.ClickAd, rl)

	e.GET("/api/destaques", hl.List, rl, cache)
	e.POST("/api/destaques/:id/view", hl.View, rl)
	e.POST("/api/destaques/:id/like", hl.Like, rl)
}
