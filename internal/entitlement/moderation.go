package entitlement

import (
	"errors"
	"strings"
	"time"
)

// Moderation states shared by ads, businesses and highlights.
const (
	ModerationPending  = "pending"
	ModerationApproved = "approved"
	ModerationRejected = "rejected"
)

// ErrReasonRequired is returned when a rejection carries no reason.
var ErrReasonRequired = errors.New("rejection requires a non-empty reason")

// ErrUnknownStatus is returned for a decision outside the known states.
var ErrUnknownStatus = errors.New("unknown moderation status")

// Decision captures an admin's ruling on a pending entity. Every decision
// records who decided and when; re-deciding is allowed and the latest
// decision wins.
type Decision struct {
	Status      string
	Reason      string
	ModeratorID uint64
	DecidedAt   time.Time
}

// NewDecision validates a requested moderation transition and stamps it.
// Approvals need no payload; rejections require a non-empty reason after
// trimming whitespace. Any target other than approved/rejected is refused.
func NewDecision(status, reason string, moderatorID uint64, now time.Time) (Decision, error) {
	switch status {
	case ModerationApproved:
		return Decision{Status: ModerationApproved, ModeratorID: moderatorID, DecidedAt: now}, nil
	case ModerationRejected:
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return Decision{}, ErrReasonRequired
		}
		return Decision{Status: ModerationRejected, Reason: reason, ModeratorID: moderatorID, DecidedAt: now}, nil
	}
	return Decision{}, ErrUnknownStatus
}
