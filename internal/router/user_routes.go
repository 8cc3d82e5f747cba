package router

import (
	"github.com/labstack/echo/v4"

	"github.com/buscaaquibdc/marketplace-api/internal/handler"
	"github.com/buscaaquibdc/marketplace-api/internal/middleware"
	"github.com/buscaaquibdc/marketplace-api/internal/model"
)

// RegisterUser registers the advertiser-scoped endpoints. All routes
// require a valid JWT with the ADVERTISER or ADMIN role: publishing,
// storefront registration, profile writes, subscription management and
// coupon validation.
func RegisterUser(e *echo.Echo, ads *handler.AdHandler, biz *handler.BusinessHandler,
	prof *handler.ProfileHandler, subs *handler.SubscriptionHandler,
	coupons *handler.CouponHandler, hl *handler.HighlightHandler, jwtSecret string) {

	g := e.Group(
		"/api",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdvertiser, model.RoleAdmin),
	)

	// Static segment registered alongside /api/ads/:id; Echo resolves the
	// static route first.
	g.GET("/ads/free-ad-check", ads.FreeAdCheck)
	g.POST("/ads", ads.Create)
	g.PUT("/ads/:id", ads.Update)
	g.DELETE("/ads/:id", ads.Delete)

	g.POST("/businesses", biz.Register)
	g.PUT("/profile", prof.Update)

	g.POST("/subscription/upgrade", subs.Upgrade)
	g.POST("/subscriptions/activate-free", subs.ActivateFree)
	g.POST("/subscriptions/cancel", subs.Cancel)

	g.POST("/coupons/validate", coupons.Validate)

	g.POST("/destaques", hl.Create)
}
