package model

import "time"

// Highlight priorities. Display order is priority descending, ties broken
// by recency.
const (
	PriorityNormal   = 0
	PriorityFeatured = 5
	PriorityAdmin    = 10
)

// Media types accepted for highlights.
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// Highlight mirrors the `highlights` table (stories/banners, "destaques").
// A highlight is displayable when moderation_status=approved, is_active
// and now < expires_at. IsActive exists so an approved highlight can be
// manually deactivated without rewriting its moderation history.
type Highlight struct {
	ID               uint64     // highlights.id
	UserID           uint64     // highlights.user_id
	Title            string     // highlights.title
	MediaURL         string     // highlights.media_url
	MediaType        string     // highlights.media_type
	Priority         int        // highlights.priority
	ModerationStatus string     // highlights.moderation_status
	ModerationReason string     // highlights.moderation_reason
	ModeratedBy      *uint64    // highlights.moderated_by (nullable)
	ModeratedAt      *time.Time // highlights.moderated_at (nullable)
	IsActive         bool       // highlights.is_active
	ViewCount        uint64     // highlights.view_count
	LikeCount        uint64     // highlights.like_count
	CreatedAt        time.Time  // highlights.created_at
	ExpiresAt        time.Time  // highlights.expires_at
}
