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

// CouponHandler covers coupon validation (read-only, idempotent) and
// redemption (atomic increment, never past the usage limit).
type CouponHandler struct {
	Coupons *repository.CouponRepo
}

func NewCouponHandler(coupons *repository.CouponRepo) *CouponHandler {
	if coupons == nil {
		panic("nil repository passed to NewCouponHandler")
	}
	return &CouponHandler{Coupons: coupons}
}

type validateCouponReq struct {
	Code       string  `json:"code"`
	PlanID     string  `json:"planId"`
	PriceCents *uint64 `json:"priceCents"`
}

// Validate handles POST /api/coupons/validate. Codes are case-sensitive;
// validation never mutates the coupon, so the endpoint may be called any
// number of times. When priceCents is supplied the response includes the
// discounted price.
func (h *CouponHandler) Validate(c echo.Context) error {
	var req validateCouponReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	if strings.TrimSpace(req.Code) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "code is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	var coupon *model.Coupon
	cp, err := h.Coupons.GetByCode(ctx, req.Code)
	switch err {
	case nil:
		coupon = &cp
	case repository.ErrNotFound:
		// leave coupon nil; ValidateCoupon reports not_found
	default:
		return repoError(c, err, "coupon")
	}

	res := entitlement.ValidateCoupon(coupon, req.PlanID, time.Now().UTC())
	body := echo.Map{"success": true, "valid": res.Valid}
	if !res.Valid {
		body["reason"] = res.Reason
		return c.JSON(http.StatusOK, body)
	}
	body["coupon"] = echo.Map{
		"code":           coupon.Code,
		"discount_type":  coupon.DiscountType,
		"discount_value": coupon.DiscountValue,
	}
	if req.PriceCents != nil {
		body["finalPriceCents"] = entitlement.ApplyDiscount(coupon, *req.PriceCents)
	}
	return c.JSON(http.StatusOK, body)
}

type redeemCouponReq struct {
	Code   string `json:"code"`
	PlanID string `json:"planId"`
}

// Redeem handles POST /api/coupons/redeem. The usage counter is bumped in
// a single guarded UPDATE, so concurrent redemptions of a nearly exhausted
// coupon can never push usage_count past usage_limit; the loser gets 409.
func (h *CouponHandler) Redeem(c echo.Context) error {
	var req redeemCouponReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	if strings.TrimSpace(req.Code) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "code is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	// Plan restriction is not expressible in the guarded UPDATE, so it is
	// checked first. The usage cap itself stays inside the UPDATE.
	if req.PlanID != "" {
		cp, err := h.Coupons.GetByCode(ctx, req.Code)
		if err != nil {
			return repoError(c, err, "coupon")
		}
		res := entitlement.ValidateCoupon(&cp, req.PlanID, time.Now().UTC())
		if !res.Valid && res.Reason == entitlement.CouponPlanIneligible {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"success": false, "error": "coupon rejected", "reason": res.Reason})
		}
	}

	count, err := h.Coupons.Redeem(ctx, req.Code)
	if err != nil {
		return repoError(c, err, "coupon")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{
		"code":        req.Code,
		"usage_count": count,
	}})
}
