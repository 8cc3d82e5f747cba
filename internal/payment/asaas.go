// Package payment wraps the Asaas payment gateway REST API. Only the two
// operations the marketplace needs are implemented: creating a recurring
// subscription on upgrade and cancelling one. The gateway is an opaque
// external service; webhook processing and hosted checkout stay on its
// side.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AsaasClient calls the Asaas REST API. A zero APIKey puts the client in
// offline mode: operations succeed locally with a synthetic gateway id so
// development environments work without credentials.
type AsaasClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// NewAsaasClient builds a client with a bounded request timeout.
func NewAsaasClient(baseURL, apiKey string) *AsaasClient {
	return &AsaasClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// GatewaySubscription is the subset of the Asaas subscription object the
// marketplace consumes.
type GatewaySubscription struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Offline reports whether the client has no credentials and fakes
// gateway calls.
func (c *AsaasClient) Offline() bool { return c.APIKey == "" }

// CreateSubscription registers a monthly recurring charge for a customer
// and returns the gateway subscription.
func (c *AsaasClient) CreateSubscription(ctx context.Context, customerRef, plan string, valueCents uint64) (GatewaySubscription, error) {
	if c.Offline() {
		return GatewaySubscription{ID: fmt.Sprintf("offline-%s-%s", plan, customerRef), Status: "ACTIVE"}, nil
	}
	body := map[string]any{
		"customer":          customerRef,
		"billingType":       "UNDEFINED", // customer picks on the hosted checkout
		"cycle":             "MONTHLY",
		"value":             float64(valueCents) / 100,
		"externalReference": plan,
	}
	var out GatewaySubscription
	if err := c.do(ctx, http.MethodPost, "/subscriptions", body, &out); err != nil {
		return GatewaySubscription{}, err
	}
	return out, nil
}

// CancelSubscription cancels a gateway subscription by id.
func (c *AsaasClient) CancelSubscription(ctx context.Context, gatewayID string) error {
	if c.Offline() {
		return nil
	}
	return c.do(ctx, http.MethodDelete, "/subscriptions/"+gatewayID, nil, nil)
}

func (c *AsaasClient) do(ctx context.Context, method, path string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("access_token", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("asaas: %s %s failed with status %d: %s", method, path, resp.StatusCode, msg)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
