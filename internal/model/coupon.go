package model

import "time"

// Discount types accepted on coupons.
const (
	DiscountPercentage  = "percentage"
	DiscountFixedAmount = "fixed_amount"
)

// Coupon mirrors the `coupons` table. The code column uses a binary
// collation so lookups are case-sensitive, and the code is immutable once
// created: the update path never touches it.
//
// An "effectively active" coupon is always derived at read time:
// is_active AND now < valid_until AND usage_count < usage_limit. There is
// no stored "exhausted" flag.
type Coupon struct {
	Code          string    // coupons.code (PK, case-sensitive)
	DiscountType  string    // coupons.discount_type
	DiscountValue uint64    // coupons.discount_value (percent points or cents)
	UsageLimit    uint64    // coupons.usage_limit
	UsageCount    uint64    // coupons.usage_count
	ValidUntil    time.Time // coupons.valid_until
	PlanIDs       []string  // coupons.plan_ids (comma list; empty = all plans)
	IsActive      bool      // coupons.is_active
	CreatedAt     time.Time // coupons.created_at
	UpdatedAt     time.Time // coupons.updated_at
}
