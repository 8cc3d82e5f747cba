package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/buscaaquibdc/marketplace-api/internal/entitlement"
	"github.com/buscaaquibdc/marketplace-api/internal/model"
	"github.com/buscaaquibdc/marketplace-api/internal/repository"
)

// AdminCouponHandler covers coupon administration. The coupon code is the
// primary key and is immutable after creation; updates may change the
// discount, validity window, usage limit, plan restriction and active
// flag only.
type AdminCouponHandler struct {
	Coupons *repository.CouponRepo
}

func NewAdminCouponHandler(coupons *repository.CouponRepo) *AdminCouponHandler {
	if coupons == nil {
		panic("nil repository passed to NewAdminCouponHandler")
	}
	return &AdminCouponHandler{Coupons: coupons}
}

type couponView struct {
	Code          string   `json:"code"`
	DiscountType  string   `json:"discount_type"`
	DiscountValue uint64   `json:"discount_value"`
	UsageLimit    uint64   `json:"usage_limit"`
	UsageCount    uint64   `json:"usage_count"`
	ValidUntil    string   `json:"valid_until"`
	PlanIDs       []string `json:"plan_ids"`
	IsActive      bool     `json:"is_active"`
	// Effective is derived at read time, never stored: is_active AND not
	// expired AND not exhausted.
	Effective bool `json:"effective"`
}

func toCouponView(cp *model.Coupon, now time.Time) couponView {
	return couponView{
		Code:          cp.Code,
		DiscountType:  cp.DiscountType,
		DiscountValue: cp.DiscountValue,
		UsageLimit:    cp.UsageLimit,
		UsageCount:    cp.UsageCount,
		ValidUntil:    cp.ValidUntil.UTC().Format(time.RFC3339),
		PlanIDs:       cp.PlanIDs,
		IsActive:      cp.IsActive,
		Effective:     cp.IsActive && now.Before(cp.ValidUntil) && cp.UsageCount < cp.UsageLimit,
	}
}

type couponBody struct {
	Code          string   `json:"code"`
	DiscountType  string   `json:"discount_type"`
	DiscountValue uint64   `json:"discount_value"`
	UsageLimit    uint64   `json:"usage_limit"`
	ValidUntil    string   `json:"valid_until"` // RFC3339
	PlanIDs       []string `json:"plan_ids"`
	IsActive      *bool    `json:"is_active"`
}

func (b *couponBody) validate(requireCode bool) (time.Time, string) {
	b.Code = strings.TrimSpace(b.Code)
	if requireCode && b.Code == "" {
		return time.Time{}, "code is required"
	}
	if b.DiscountType != model.DiscountPercentage && b.DiscountType != model.DiscountFixedAmount {
		return time.Time{}, "discount_type must be percentage or fixed_amount"
	}
	if b.DiscountType == model.DiscountPercentage && b.DiscountValue > 100 {
		return time.Time{}, "percentage discount cannot exceed 100"
	}
	if b.UsageLimit == 0 {
		return time.Time{}, "usage_limit must be positive"
	}
	until, err := time.Parse(time.RFC3339, b.ValidUntil)
	if err != nil {
		return time.Time{}, "valid_until must be RFC3339"
	}
	for _, p := range b.PlanIDs {
		if !entitlement.ValidPlan(p) {
			return time.Time{}, "unknown plan in plan_ids: " + p
		}
	}
	return until.UTC(), ""
}

// List handles GET /api/admin/coupons.
func (h *AdminCouponHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	cps, err := h.Coupons.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "list coupons failed"})
	}
	now := time.Now().UTC()
	out := make([]couponView, 0, len(cps))
	for i := range cps {
		out = append(out, toCouponView(&cps[i], now))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": out})
}

// Create handles POST /api/admin/coupons. A duplicate code returns 409.
func (h *AdminCouponHandler) Create(c echo.Context) error {
	var body couponBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	until, msg := body.validate(true)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": msg})
	}
	active := true
	if body.IsActive != nil {
		active = *body.IsActive
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	cp := model.Coupon{
		Code:          body.Code,
		DiscountType:  body.DiscountType,
		DiscountValue: body.DiscountValue,
		UsageLimit:    body.UsageLimit,
		ValidUntil:    until,
		PlanIDs:       body.PlanIDs,
		IsActive:      active,
	}
	if err := h.Coupons.Create(ctx, &cp); err != nil {
		return repoError(c, err, "coupon")
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": toCouponView(&cp, time.Now().UTC())})
}

// Update handles PUT /api/admin/coupons/:code. The code in the path picks
// the coupon; a code in the body is ignored, never applied.
func (h *AdminCouponHandler) Update(c echo.Context) error {
	code := c.Param("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "code is required"})
	}
	var body couponBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	until, msg := body.validate(false)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": msg})
	}
	active := true
	if body.IsActive != nil {
		active = *body.IsActive
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	if err := h.Coupons.Update(ctx, code, body.DiscountType, body.DiscountValue, body.UsageLimit, until, body.PlanIDs, active); err != nil {
		return repoError(c, err, "coupon")
	}
	cp, err := h.Coupons.GetByCode(ctx, code)
	if err != nil {
		return repoError(c, err, "coupon")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": toCouponView(&cp, time.Now().UTC())})
}

// Delete handles DELETE /api/admin/coupons/:code.
func (h *AdminCouponHandler) Delete(c echo.Context) error {
	code := c.Param("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "code is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	if err := h.Coupons.Delete(ctx, code); err != nil {
		return repoError(c, err, "coupon")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
