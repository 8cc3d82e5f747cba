// Package entitlement holds the pure business rules of the marketplace:
// free-ad eligibility windows, plan slot quotas, coupon validity and
// discounts, moderation transitions and highlight visibility. Handlers and
// repositories feed these functions data and apply their decisions; nothing
// in this package touches the network or the database.
package entitlement

// Subscription plan identifiers. The zero-cost FREE plan grants no paid ad
// slots; eligible users publish through the free-ad window instead.
const (
	PlanFree           = "FREE"
	PlanMicroBusiness  = "MICRO_BUSINESS"
	PlanSmallBusiness  = "SMALL_BUSINESS"
	PlanBusinessSimple = "BUSINESS_SIMPLE"
	PlanBusinessPlus   = "BUSINESS_PLUS"
)

// planSlots maps each plan to the number of simultaneously active paid ads
// it allows.
var planSlots = map[string]int{
	PlanFree:           0,
	PlanMicroBusiness:  4,
	PlanSmallBusiness:  5,
	PlanBusinessSimple: 10,
	PlanBusinessPlus:   20,
}

// planPriceCents maps each paid plan to its monthly price in cents of BRL.
var planPriceCents = map[string]uint64{
	PlanMicroBusiness:  2990,
	PlanSmallBusiness:  4990,
	PlanBusinessSimple: 9990,
	PlanBusinessPlus:   19990,
}

// PlanPrice returns the monthly price in cents for a plan; zero for FREE
// and for unknown plans.
func PlanPrice(plan string) uint64 {
	return planPriceCents[plan]
}

// ResolveSlots returns the ad slot quota for a plan. Unknown plans resolve
// to zero so a corrupt plan value can never widen a quota.
func ResolveSlots(plan string) int {
	return planSlots[plan]
}

// IsPaidPlan reports whether upgrading to the plan grants the verified
// badge. Only known non-FREE plans qualify.
func IsPaidPlan(plan string) bool {
	n, ok := planSlots[plan]
	return ok && n > 0
}

// ValidPlan reports whether the plan name is one of the known plans.
func ValidPlan(plan string) bool {
	_, ok := planSlots[plan]
	return ok
}
