package entitlement

import (
	"testing"
	"time"
)

var decidedAt = time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

func TestNewDecisionApprove(t *testing.T) {
	d, err := NewDecision(ModerationApproved, "", 3, decidedAt)
	if err != nil {
		t.Fatalf("approve should not require a reason: %v", err)
	}
	if d.Status != ModerationApproved || d.ModeratorID != 3 || !d.DecidedAt.Equal(decidedAt) {
		t.Fatalf("unexpected decision %+v", d)
	}
}

func TestNewDecisionRejectRequiresReason(t *testing.T) {
	if _, err := NewDecision(ModerationRejected, "", 3, decidedAt); err != ErrReasonRequired {
		t.Fatalf("empty reason must fail, got %v", err)
	}
	if _, err := NewDecision(ModerationRejected, "   ", 3, decidedAt); err != ErrReasonRequired {
		t.Fatalf("whitespace reason must fail, got %v", err)
	}
	d, err := NewDecision(ModerationRejected, " conteudo improprio ", 3, decidedAt)
	if err != nil {
		t.Fatalf("reject with reason failed: %v", err)
	}
	if d.Reason != "conteudo improprio" {
		t.Fatalf("reason should be trimmed, got %q", d.Reason)
	}
}

func TestNewDecisionUnknownStatus(t *testing.T) {
	for _, s := range []string{ModerationPending, "deleted", ""} {
		if _, err := NewDecision(s, "x", 1, decidedAt); err != ErrUnknownStatus {
			t.Fatalf("status %q should be refused, got %v", s, err)
		}
	}
}

// Re-deciding is allowed: a rejection followed by an approval leaves the
// approval as the final state (last write wins).
func TestDecisionsLastWriteWins(t *testing.T) {
	first, err := NewDecision(ModerationRejected, "bad photos", 1, decidedAt)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewDecision(ModerationApproved, "", 2, decidedAt.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	stored := first
	if stored.Status != ModerationRejected {
		t.Fatalf("expected rejection first, got %+v", stored)
	}
	stored = second
	if stored.Status != ModerationApproved || stored.ModeratorID != 2 {
		t.Fatalf("expected approval to win, got %+v", stored)
	}
}
