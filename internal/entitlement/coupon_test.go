package entitlement

import (
	"reflect"
	"testing"
	"time"

	"github.com/buscaaquibdc/marketplace-api/internal/model"
)

func futureCoupon() *model.Coupon {
	return &model.Coupon{
		Code:          "WELCOME20",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: 20,
		UsageLimit:    1,
		UsageCount:    0,
		ValidUntil:    time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
	}
}

var checkedAt = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func TestValidateCouponRuleOrder(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.Coupon)
		plan   string
		reason string
	}{
		{"inactive wins first", func(c *model.Coupon) {
			c.IsActive = false
			c.ValidUntil = checkedAt.Add(-time.Hour) // also expired; inactive must win
		}, "", CouponInactive},
		{"expired", func(c *model.Coupon) {
			c.ValidUntil = checkedAt.Add(-time.Hour)
			c.UsageCount = c.UsageLimit // also exhausted; expired must win
		}, "", CouponExpired},
		{"usage limit reached", func(c *model.Coupon) {
			c.UsageCount = c.UsageLimit
		}, "", CouponLimitReached},
		{"plan restricted", func(c *model.Coupon) {
			c.PlanIDs = []string{PlanBusinessPlus}
		}, PlanMicroBusiness, CouponPlanIneligible},
	}
	for _, tc := range cases {
		c := futureCoupon()
		tc.mutate(c)
		got := ValidateCoupon(c, tc.plan, checkedAt)
		if got.Valid || got.Reason != tc.reason {
			t.Errorf("%s: got %+v, want reason %q", tc.name, got, tc.reason)
		}
	}
}

func TestValidateCouponNil(t *testing.T) {
	if got := ValidateCoupon(nil, "", checkedAt); got.Valid || got.Reason != CouponNotFound {
		t.Fatalf("nil coupon: got %+v", got)
	}
}

func TestValidateCouponPlanMember(t *testing.T) {
	c := futureCoupon()
	c.PlanIDs = []string{PlanMicroBusiness, PlanBusinessPlus}
	if got := ValidateCoupon(c, PlanBusinessPlus, checkedAt); !got.Valid {
		t.Fatalf("member plan should validate, got %+v", got)
	}
	// Empty restriction list applies to every plan.
	c.PlanIDs = nil
	if got := ValidateCoupon(c, PlanFree, checkedAt); !got.Valid {
		t.Fatalf("unrestricted coupon should validate for any plan, got %+v", got)
	}
}

// Validation is read-only: calling it any number of times never changes the
// coupon, so usage accounting stays exact.
func TestValidateCouponIdempotent(t *testing.T) {
	c := futureCoupon()
	before := *c
	for i := 0; i < 5; i++ {
		ValidateCoupon(c, PlanFree, checkedAt)
	}
	if !reflect.DeepEqual(*c, before) {
		t.Fatalf("validate mutated the coupon: before=%+v after=%+v", before, *c)
	}
}

func TestApplyDiscountWelcome20(t *testing.T) {
	c := futureCoupon()
	if got := ApplyDiscount(c, 10000); got != 8000 {
		t.Fatalf("20%% off 100.00 should be 80.00, got %d cents", got)
	}
}

func TestApplyDiscountFixedClampsAtZero(t *testing.T) {
	c := &model.Coupon{DiscountType: model.DiscountFixedAmount, DiscountValue: 5000}
	if got := ApplyDiscount(c, 3000); got != 0 {
		t.Fatalf("fixed discount must clamp at zero, got %d", got)
	}
	if got := ApplyDiscount(c, 12000); got != 7000 {
		t.Fatalf("expected 7000, got %d", got)
	}
}

func TestApplyDiscountFullPercentage(t *testing.T) {
	c := &model.Coupon{DiscountType: model.DiscountPercentage, DiscountValue: 100}
	if got := ApplyDiscount(c, 9999); got != 0 {
		t.Fatalf("100%% discount should be free, got %d", got)
	}
}

// The WELCOME20 scenario end to end at the rule level: valid once, then
// exhausted after a single redemption.
func TestCouponSingleUseScenario(t *testing.T) {
	c := futureCoupon()
	if got := ValidateCoupon(c, "", checkedAt); !got.Valid {
		t.Fatalf("fresh coupon should validate, got %+v", got)
	}
	c.UsageCount++ // what a successful redemption does
	if c.UsageCount > c.UsageLimit {
		t.Fatalf("usage_count %d exceeded usage_limit %d", c.UsageCount, c.UsageLimit)
	}
	got := ValidateCoupon(c, "", checkedAt)
	if got.Valid || got.Reason != CouponLimitReached {
		t.Fatalf("exhausted coupon should report usage_limit_reached, got %+v", got)
	}
}
