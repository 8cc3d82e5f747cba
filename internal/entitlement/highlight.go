package entitlement

import (
	"sort"
	"time"

	"github.com/buscaaquibdc/marketplace-api/internal/model"
)

// HighlightActive reports whether a highlight belongs in the public
// rotation at instant now: approved, not manually deactivated and not
// past its expiry.
func HighlightActive(h *model.Highlight, now time.Time) bool {
	return h.ModerationStatus == ModerationApproved && h.IsActive && now.Before(h.ExpiresAt)
}

// SortHighlights orders highlights for display in place: priority
// descending (ADMIN > FEATURED > NORMAL), ties broken by creation time
// descending so newer content surfaces first.
func SortHighlights(hs []model.Highlight) {
	sort.SliceStable(hs, func(i, j int) bool {
		if hs[i].Priority != hs[j].Priority {
			return hs[i].Priority > hs[j].Priority
		}
		return hs[i].CreatedAt.After(hs[j].CreatedAt)
	})
}

// FilterActive returns the highlights active at instant now, already in
// display order. The input slice is not modified.
func FilterActive(hs []model.Highlight, now time.Time) []model.Highlight {
	out := make([]model.Highlight, 0, len(hs))
	for i := range hs {
		if HighlightActive(&hs[i], now) {
			out = append(out, hs[i])
		}
	}
	SortHighlights(out)
	return out
}
