package entitlement

import (
	"testing"
	"time"
)

func TestCheckFreeAdNeverUsed(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st := CheckFreeAd(now, nil, 0)
	if st.Used {
		t.Fatalf("expected used=false, got %+v", st)
	}
	if !st.CanCreate || st.DaysRemaining != 0 {
		t.Fatalf("expected immediate eligibility, got %+v", st)
	}
	if st.ExpiryDate != nil {
		t.Fatalf("expected nil expiry for unused window, got %v", st.ExpiryDate)
	}
}

func TestCheckFreeAdTenDaysAgo(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	last := now.Add(-10 * 24 * time.Hour)
	st := CheckFreeAd(now, &last, 42)
	if !st.Used || st.CanCreate {
		t.Fatalf("expected blocked window, got %+v", st)
	}
	if st.DaysRemaining != 80 {
		t.Fatalf("expected 80 days remaining, got %d", st.DaysRemaining)
	}
	if st.AdID != 42 {
		t.Fatalf("expected adId=42, got %d", st.AdID)
	}
	wantExpiry := last.Add(FreeAdWindow)
	if st.ExpiryDate == nil || !st.ExpiryDate.Equal(wantExpiry) {
		t.Fatalf("expected expiry %v, got %v", wantExpiry, st.ExpiryDate)
	}
}

func TestCheckFreeAdNinetyOneDaysAgo(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	last := now.Add(-91 * 24 * time.Hour)
	st := CheckFreeAd(now, &last, 7)
	if !st.CanCreate || st.DaysRemaining != 0 {
		t.Fatalf("expected eligibility after window, got %+v", st)
	}
	if !st.Used {
		t.Fatalf("a past free ad must still report used=true: %+v", st)
	}
}

func TestCheckFreeAdWindowBoundary(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Exactly at the boundary the window is over.
	last := now.Add(-FreeAdWindow)
	if st := CheckFreeAd(now, &last, 1); !st.CanCreate || st.DaysRemaining != 0 {
		t.Fatalf("expected eligibility at exact boundary, got %+v", st)
	}

	// One second short of the boundary still counts as a full day left.
	last = now.Add(-FreeAdWindow + time.Second)
	if st := CheckFreeAd(now, &last, 1); st.CanCreate || st.DaysRemaining != 1 {
		t.Fatalf("expected 1 day remaining just inside the window, got %+v", st)
	}
}

func TestCheckFreeAdBlockedWhileDaysRemain(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for days := 1; days < 90; days += 13 {
		last := now.Add(-time.Duration(days) * 24 * time.Hour)
		st := CheckFreeAd(now, &last, 1)
		if st.Used && st.DaysRemaining > 0 && st.CanCreate {
			t.Fatalf("canCreate must be false while daysRemaining=%d (last %d days ago)", st.DaysRemaining, days)
		}
		if want := 90 - days; st.DaysRemaining != want {
			t.Fatalf("last=%d days ago: expected %d days remaining, got %d", days, want, st.DaysRemaining)
		}
	}
}
