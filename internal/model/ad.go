package model

import "time"

// Ad statuses. The status field is owned by the advertiser (and expiry),
// while moderation_status is owned by the moderation workflow. An ad is
// publicly visible only when status=active AND moderation_status=approved.
const (
	AdStatusActive   = "active"
	AdStatusPaused   = "paused"
	AdStatusPending  = "pending"
	AdStatusRejected = "rejected"
)

// Ad mirrors the `ads` table.
//
// An ad with IsFreeAd=true counts against the owner's 90-day free-ad
// window; paid ads count against the owner's plan slot quota.
type Ad struct {
	ID               uint64     // ads.id
	UserID           uint64     // ads.user_id
	Title            string     // ads.title
	Description      string     // ads.description
	PriceCents       uint64     // ads.price_cents
	Category         string     // ads.category
	City             string     // ads.city
	State            string     // ads.state
	Images           []string   // ads.images (JSON column)
	Status           string     // ads.status
	ModerationStatus string     // ads.moderation_status
	ModerationReason string     // ads.moderation_reason
	ModeratedBy      *uint64    // ads.moderated_by (nullable admin user id)
	ModeratedAt      *time.Time // ads.moderated_at (nullable)
	IsFreeAd         bool       // ads.is_free_ad
	ViewCount        uint64     // ads.view_count
	ClickCount       uint64     // ads.click_count
	CreatedAt        time.Time  // ads.created_at
	ExpiresAt        *time.Time // ads.expires_at (nullable)
	UpdatedAt        time.Time  // ads.updated_at
}
