// Package queue defines message payloads exchanged over the message broker
// and the background consumers that process them.
package queue

// Queue names. Both queues are declared durable and messages are published
// persistent, so decisions and pending profile writes survive broker
// restarts.
const (
	ModerationQueueName  = "moderation.decided"
	ProfileSyncQueueName = "profile.sync"
)

// ModerationDecidedEvent is published after every admin moderation
// decision. Downstream consumers can audit-log or notify without querying
// the primary database.
type ModerationDecidedEvent struct {
	EntityKind  string `json:"entity_kind"` // "ad", "business" or "highlight"
	EntityID    uint64 `json:"entity_id"`
	Status      string `json:"status"` // approved | rejected
	Reason      string `json:"reason,omitempty"`
	ModeratorID uint64 `json:"moderator_id"`
	DecidedAt   string `json:"decided_at"` // RFC3339 UTC
}

// ProfileSyncEvent is the outbox entry for a profile write that could not
// be applied to the database during the request. The consumer replays the
// write until it succeeds; the payload is the full desired state so replay
// is last-write-wins.
type ProfileSyncEvent struct {
	UserID    uint64 `json:"user_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Whatsapp  string `json:"whatsapp"`
	QueuedAt  string `json:"queued_at"` // RFC3339 UTC
	Attempts  int    `json:"attempts"`
}
