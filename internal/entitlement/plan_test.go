package entitlement

import "testing"

func TestResolveSlots(t *testing.T) {
	cases := map[string]int{
		PlanFree:           0,
		PlanMicroBusiness:  4,
		PlanSmallBusiness:  5,
		PlanBusinessSimple: 10,
		PlanBusinessPlus:   20,
		"NOT_A_PLAN":       0,
		"":                 0,
	}
	// Resolution is a pure lookup; order and repetition must not matter.
	for i := 0; i < 3; i++ {
		for plan, want := range cases {
			if got := ResolveSlots(plan); got != want {
				t.Fatalf("ResolveSlots(%q) = %d, want %d", plan, got, want)
			}
		}
	}
}

func TestIsPaidPlan(t *testing.T) {
	if IsPaidPlan(PlanFree) {
		t.Fatal("FREE is not a paid plan")
	}
	if IsPaidPlan("NOT_A_PLAN") {
		t.Fatal("unknown plans must not grant verification")
	}
	for _, p := range []string{PlanMicroBusiness, PlanSmallBusiness, PlanBusinessSimple, PlanBusinessPlus} {
		if !IsPaidPlan(p) {
			t.Fatalf("%s should be a paid plan", p)
		}
	}
}

func TestValidPlan(t *testing.T) {
	if !ValidPlan(PlanFree) || !ValidPlan(PlanBusinessPlus) {
		t.Fatal("known plans must validate")
	}
	if ValidPlan("premium") {
		t.Fatal("unknown plan must not validate")
	}
}
