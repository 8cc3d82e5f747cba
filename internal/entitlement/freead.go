package entitlement

import "time"

// FreeAdWindow is the cooldown between free ads for one user. Marking an
// ad free is one-way; the next eligible date is always derived from the
// last free ad's creation time, never stored redundantly.
const FreeAdWindow = 90 * 24 * time.Hour

// FreeAdStatus is the result of a free-ad eligibility check.
type FreeAdStatus struct {
	Used          bool       `json:"used"`
	CanCreate     bool       `json:"canCreate"`
	DaysRemaining int        `json:"daysRemaining"`
	AdID          uint64     `json:"adId,omitempty"`
	ExpiryDate    *time.Time `json:"expiryDate"`
}

// CheckFreeAd computes free-ad eligibility at instant now given the
// creation time of the user's most recent active free ad. lastFreeAdAt is
// nil when the user has never published a free ad, in which case they may
// create one immediately.
//
// daysRemaining is the ceiling of the time left in the window expressed in
// days, floored at zero; canCreate is true exactly when daysRemaining is
// zero.
func CheckFreeAd(now time.Time, lastFreeAdAt *time.Time, adID uint64) FreeAdStatus {
	if lastFreeAdAt == nil {
		return FreeAdStatus{Used: false, CanCreate: true, DaysRemaining: 0, ExpiryDate: nil}
	}
	expiry := lastFreeAdAt.Add(FreeAdWindow)
	days := daysUntil(now, expiry)
	return FreeAdStatus{
		Used:          true,
		CanCreate:     days == 0,
		DaysRemaining: days,
		AdID:          adID,
		ExpiryDate:    &expiry,
	}
}

// daysUntil returns ceil((expiry-now)/24h), floored at 0.
func daysUntil(now, expiry time.Time) int {
	d := expiry.Sub(now)
	if d <= 0 {
		return 0
	}
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}
