package entitlement

import (
	"time"

	"github.com/buscaaquibdc/marketplace-api/internal/model"
)

// Coupon rejection reasons returned by Validate. The first failing rule
// wins; rules are evaluated in a fixed order.
const (
	CouponNotFound       = "not_found"
	CouponInactive       = "inactive"
	CouponExpired        = "expired"
	CouponLimitReached   = "usage_limit_reached"
	CouponPlanIneligible = "plan_not_eligible"
)

// CouponResult is the outcome of validating a coupon against a plan.
type CouponResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// ValidateCoupon checks a coupon at instant now, optionally against a plan
// id. Rule order, first failure wins: active flag, expiry, usage cap, plan
// restriction. Validation never mutates anything; calling it any number of
// times leaves usage_count untouched.
func ValidateCoupon(c *model.Coupon, planID string, now time.Time) CouponResult {
	if c == nil {
		return CouponResult{Valid: false, Reason: CouponNotFound}
	}
	if !c.IsActive {
		return CouponResult{Valid: false, Reason: CouponInactive}
	}
	if !now.Before(c.ValidUntil) {
		return CouponResult{Valid: false, Reason: CouponExpired}
	}
	if c.UsageCount >= c.UsageLimit {
		return CouponResult{Valid: false, Reason: CouponLimitReached}
	}
	if len(c.PlanIDs) > 0 {
		found := false
		for _, p := range c.PlanIDs {
			if p == planID {
				found = true
				break
			}
		}
		if !found {
			return CouponResult{Valid: false, Reason: CouponPlanIneligible}
		}
	}
	return CouponResult{Valid: true}
}

// ApplyDiscount returns the price in cents after applying the coupon's
// discount. Percentage discounts round down to whole cents; fixed-amount
// discounts clamp at zero, never going negative.
func ApplyDiscount(c *model.Coupon, priceCents uint64) uint64 {
	switch c.DiscountType {
	case model.DiscountPercentage:
		if c.DiscountValue >= 100 {
			return 0
		}
		return priceCents * (100 - c.DiscountValue) / 100
	case model.DiscountFixedAmount:
		if c.DiscountValue >= priceCents {
			return 0
		}
		return priceCents - c.DiscountValue
	}
	return priceCents
}
