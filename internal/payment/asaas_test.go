package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateSubscription(t *testing.T) {
	var gotPath, gotToken string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		gotToken = r.Header.Get("access_token")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "sub_123", "status": "ACTIVE"})
	}))
	defer srv.Close()

	c := NewAsaasClient(srv.URL, "key-1")
	sub, err := c.CreateSubscription(context.Background(), "cus_9", "BUSINESS_PLUS", 9990)
	if err != nil {
		t.Fatal(err)
	}
	if sub.ID != "sub_123" || sub.Status != "ACTIVE" {
		t.Fatalf("unexpected subscription %+v", sub)
	}
	if gotPath != "POST /subscriptions" {
		t.Fatalf("unexpected request %q", gotPath)
	}
	if gotToken != "key-1" {
		t.Fatalf("expected access_token header, got %q", gotToken)
	}
	if gotBody["value"] != 99.9 {
		t.Fatalf("expected value 99.9, got %v", gotBody["value"])
	}
}

func TestCancelSubscriptionUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"code":"invalid"}]}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewAsaasClient(srv.URL, "key-1")
	if err := c.CancelSubscription(context.Background(), "sub_x"); err == nil {
		t.Fatal("expected error on upstream 400")
	}
}

func TestOfflineMode(t *testing.T) {
	c := NewAsaasClient("http://unused", "")
	if !c.Offline() {
		t.Fatal("empty key should mean offline")
	}
	sub, err := c.CreateSubscription(context.Background(), "cus_1", "MICRO_BUSINESS", 1990)
	if err != nil {
		t.Fatal(err)
	}
	if sub.ID == "" || sub.Status != "ACTIVE" {
		t.Fatalf("offline create should synthesize an active subscription, got %+v", sub)
	}
	if err := c.CancelSubscription(context.Background(), sub.ID); err != nil {
		t.Fatal(err)
	}
}
