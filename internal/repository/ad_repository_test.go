package repository

import (
	"context"
	"database/sql/driver"
	"strings"
	"testing"
	"time"

	"github.com/buscaaquibdc/marketplace-api/internal/model"
)

var adCols = []string{
	"id", "user_id", "title", "description", "price_cents", "category", "city", "state", "images",
	"status", "moderation_status", "moderation_reason", "moderated_by", "moderated_at",
	"is_free_ad", "view_count", "click_count", "created_at", "expires_at", "updated_at",
}

func TestLatestActiveFreeAdWithoutHistory(t *testing.T) {
	db, _ := newStubDB()
	defer db.Close()

	_, _, err := NewAdRepo(db).LatestActiveFreeAd(context.Background(), 42)
	if err != ErrNotFound {
		t.Fatalf("LatestActiveFreeAd with no free ads = %v, want ErrNotFound", err)
	}
}

func TestGetVisibleHidesNonPublicAds(t *testing.T) {
	db, conn := newStubDB()
	defer db.Close()

	_, err := NewAdRepo(db).GetVisible(context.Background(), 7)
	if err != ErrNotFound {
		t.Fatalf("GetVisible on a hidden ad = %v, want ErrNotFound", err)
	}

	if len(conn.queries) != 1 {
		t.Fatalf("queries recorded = %d, want 1", len(conn.queries))
	}
	q := conn.queries[0]
	for _, clause := range []string{"status=?", "moderation_status=?", "expires_at IS NULL OR expires_at > UTC_TIMESTAMP()"} {
		if !strings.Contains(q, clause) {
			t.Fatalf("visibility query missing %q:\n%s", clause, q)
		}
	}
}

func TestGetVisibleReturnsApprovedAd(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	db, _ := newStubDB(stubResult{
		match: "moderation_status=?",
		cols:  adCols,
		rows: [][]driver.Value{{
			int64(7), int64(3), "Fusca 1978", "Motor novo", int64(1500000), "veiculos",
			"Balneário Camboriú", "SC", nil,
			model.AdStatusActive, "approved", nil, nil, nil,
			false, int64(12), int64(4), now, nil, now,
		}},
	})
	defer db.Close()

	a, err := NewAdRepo(db).GetVisible(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetVisible: %v", err)
	}
	if a.ID != 7 || a.Title != "Fusca 1978" || a.Status != model.AdStatusActive {
		t.Fatalf("unexpected ad: %+v", a)
	}
	if a.ExpiresAt != nil {
		t.Fatalf("ExpiresAt = %v, want nil", a.ExpiresAt)
	}
}
