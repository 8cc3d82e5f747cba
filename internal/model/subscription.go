package model

import "time"

// Subscription statuses as reported by the API. CANCELLED subscriptions
// keep access until period_end (validUntil in responses).
const (
	SubscriptionActive    = "ACTIVE"
	SubscriptionCancelled = "CANCELLED"
	SubscriptionExpired   = "EXPIRED"
	SubscriptionPending   = "PENDING"
)

// Subscription mirrors the `subscriptions` table. GatewayID holds the
// payment gateway's subscription identifier so cancellation can be routed
// to the gateway before the local status flips.
type Subscription struct {
	ID          uint64    // subscriptions.id
	UserID      uint64    // subscriptions.user_id
	Plan        string    // subscriptions.plan
	Status      string    // subscriptions.status
	GatewayID   string    // subscriptions.gateway_id (empty for FREE)
	PeriodStart time.Time // subscriptions.period_start
	PeriodEnd   time.Time // subscriptions.period_end
	CreatedAt   time.Time // subscriptions.created_at
	UpdatedAt   time.Time // subscriptions.updated_at
}
