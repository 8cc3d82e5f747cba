package entitlement

import (
	"testing"
	"time"

	"github.com/buscaaquibdc/marketplace-api/internal/model"
)

var hNow = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func highlight(id uint64, prio int, createdAgo time.Duration) model.Highlight {
	return model.Highlight{
		ID:               id,
		Priority:         prio,
		ModerationStatus: ModerationApproved,
		IsActive:         true,
		CreatedAt:        hNow.Add(-createdAgo),
		ExpiresAt:        hNow.Add(24 * time.Hour),
	}
}

func TestHighlightActive(t *testing.T) {
	h := highlight(1, model.PriorityNormal, time.Hour)
	if !HighlightActive(&h, hNow) {
		t.Fatal("approved, unexpired highlight should be active")
	}
	expired := h
	expired.ExpiresAt = hNow.Add(-time.Minute)
	if HighlightActive(&expired, hNow) {
		t.Fatal("expired highlight must be inactive")
	}
	pending := h
	pending.ModerationStatus = ModerationPending
	if HighlightActive(&pending, hNow) {
		t.Fatal("pending highlight must be inactive")
	}
	deactivated := h
	deactivated.IsActive = false
	if HighlightActive(&deactivated, hNow) {
		t.Fatal("manually deactivated highlight must be inactive")
	}
}

func TestSortHighlightsPriorityThenRecency(t *testing.T) {
	hs := []model.Highlight{
		highlight(1, model.PriorityNormal, 1*time.Hour),
		highlight(2, model.PriorityAdmin, 5*time.Hour),
		highlight(3, model.PriorityFeatured, 2*time.Hour),
		highlight(4, model.PriorityFeatured, 1*time.Hour), // newer than 3
	}
	SortHighlights(hs)
	want := []uint64{2, 4, 3, 1}
	for i, id := range want {
		if hs[i].ID != id {
			t.Fatalf("position %d: got id %d, want %d (order %v)", i, hs[i].ID, id, want)
		}
	}
}

func TestFilterActive(t *testing.T) {
	expired := highlight(9, model.PriorityAdmin, time.Hour)
	expired.ExpiresAt = hNow.Add(-time.Second)
	hs := []model.Highlight{
		expired,
		highlight(1, model.PriorityNormal, time.Hour),
		highlight(2, model.PriorityFeatured, time.Hour),
	}
	got := FilterActive(hs, hNow)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Fatalf("unexpected active set %+v", got)
	}
	if len(hs) != 3 {
		t.Fatal("input slice must not be modified")
	}
}
