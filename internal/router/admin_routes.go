package router

import (
	"github.com/labstack/echo/v4"

	"github.com/buscaaquibdc/marketplace-api/internal/handler"
	"github.com/buscaaquibdc/marketplace-api/internal/middleware"
	"github.com/buscaaquibdc/marketplace-api/internal/model"
)

// RegisterAdmin registers the moderation and back-office endpoints. All
// routes require a valid JWT with the ADMIN role: a missing token yields
// 401, a wrong role 403.
func RegisterAdmin(e *echo.Echo, biz *handler.AdminBusinessHandler,
	coupons *handler.AdminCouponHandler, redeem *handler.CouponHandler,
	hl *handler.AdminHighlightHandler, deact *handler.HighlightHandler,
	ads *handler.AdminAdHandler, jwtSecret string) {

	g := e.Group(
		"/api",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.GET("/admin/businesses", biz.List)
	g.PUT("/admin/businesses/:id", biz.Moderate)
	g.DELETE("/admin/businesses/:id", biz.Delete)

	g.GET("/admin/coupons", coupons.List)
	g.POST("/admin/coupons", coupons.Create)
	g.PUT("/admin/coupons/:code", coupons.Update)
	g.DELETE("/admin/coupons/:code", coupons.Delete)
	g.POST("/coupons/redeem", redeem.Redeem)

	g.GET("/admin/highlights", hl.List)
	g.PUT("/admin/highlights/:id", hl.Moderate)
	g.DELETE("/admin/highlights/:id", hl.Delete)
	g.PATCH("/destaques", deact.Deactivate)

	g.GET("/admin/ads", ads.List)
	g.PUT("/admin/ads/:id", ads.Moderate)
}
