package handler

import (
	"testing"
	"time"

	"github.com/buscaaquibdc/marketplace-api/internal/model"
)

func TestCreateAdReqValidate(t *testing.T) {
	ok := createAdReq{Title: " bike ", Description: "good bike", Category: "automotivo"}
	if msg := ok.validate(); msg != "" {
		t.Fatalf("valid request rejected: %s", msg)
	}
	if ok.Title != "bike" {
		t.Fatalf("title not trimmed: %q", ok.Title)
	}
	bad := createAdReq{Description: "d", Category: "c"}
	if msg := bad.validate(); msg == "" {
		t.Fatal("missing title accepted")
	}
}

func TestRegisterBusinessReqValidate(t *testing.T) {
	req := registerBusinessReq{
		BusinessName: "Padaria do Zé",
		ContactName:  "Zé",
		Email:        " ZE@EXAMPLE.COM ",
		Categories:   []string{"Alimentacao", "alimentacao", "servicos"},
	}
	if msg := req.validate(); msg != "" {
		t.Fatalf("valid request rejected: %s", msg)
	}
	if req.Email != "ze@example.com" {
		t.Fatalf("email not normalised: %q", req.Email)
	}
	if len(req.Categories) != 2 {
		t.Fatalf("duplicate category not collapsed: %v", req.Categories)
	}

	bad := registerBusinessReq{
		BusinessName: "X", ContactName: "Y", Email: "x@y.z",
		Categories: []string{"spaceships"},
	}
	if msg := bad.validate(); msg == "" {
		t.Fatal("unknown category accepted")
	}
}

func TestCouponBodyValidate(t *testing.T) {
	until := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	body := couponBody{
		Code:          "WELCOME20",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: 20,
		UsageLimit:    1,
		ValidUntil:    until,
		PlanIDs:       []string{"MICRO_BUSINESS"},
	}
	if _, msg := body.validate(true); msg != "" {
		t.Fatalf("valid body rejected: %s", msg)
	}

	over := body
	over.DiscountValue = 150
	if _, msg := over.validate(true); msg == "" {
		t.Fatal("percentage over 100 accepted")
	}

	badPlan := body
	badPlan.PlanIDs = []string{"GOLD"}
	if _, msg := badPlan.validate(true); msg == "" {
		t.Fatal("unknown plan accepted")
	}

	noDate := body
	noDate.ValidUntil = "tomorrow"
	if _, msg := noDate.validate(true); msg == "" {
		t.Fatal("malformed valid_until accepted")
	}
}
