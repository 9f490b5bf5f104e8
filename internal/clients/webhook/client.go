// Package webhook posts invoice events to an externally configured endpoint.
// Delivery is best effort with retries; a missing URL disables the client.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/kmansoor/sims-backend/internal/entity"
	"github.com/kmansoor/sims-backend/pkg/transport"
)

type Client struct {
	url  string
	http *retryablehttp.Client
}

func NewClient(url string) *Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 3
	c.RetryWaitMin = time.Second
	c.RetryWaitMax = 10 * time.Second
	c.Logger = nil
	c.HTTPClient.Timeout = 10 * time.Second
	c.HTTPClient.Transport = transport.NewRequestIDRoundTripper(http.DefaultTransport)

	return &Client{
		url:  url,
		http: c,
	}
}

type invoicePayload struct {
	Event      string `json:"event"`
	InvoiceID  string `json:"invoiceId"`
	Number     int64  `json:"number"`
	CustomerID string `json:"customerId"`
	Total      string `json:"total"`
	Currency   string `json:"currency"`
	Status     string `json:"status"`
}

// NotifyInvoiceCreated delivers an invoice.created event. Totals are rendered
// with two fractional digits, the presentation contract for currency amounts.
func (c *Client) NotifyInvoiceCreated(ctx context.Context, inv entity.Invoice) error {
	if c.url == "" {
		return nil
	}

	payload := invoicePayload{
		Event:      "invoice.created",
		InvoiceID:  inv.ID.String(),
		Number:     inv.Number,
		CustomerID: inv.CustomerID.String(),
		Total:      inv.Total.StringFixed(2),
		Currency:   "AED",
		Status:     inv.Status.String(),
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
