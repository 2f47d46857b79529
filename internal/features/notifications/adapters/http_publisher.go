package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"shipment-reconciler/internal/features/notifications/domain"
)

// HTTPPublisher POSTs each notification as JSON to a fixed endpoint.
type HTTPPublisher struct {
	client *http.Client
	url    string
}

// NewHTTPPublisher creates an HTTPPublisher. client is expected to come from
// httpclient.NewClient so calls are logged.
func NewHTTPPublisher(client *http.Client, url string) *HTTPPublisher {
	return &HTTPPublisher{client: client, url: url}
}

// Publish sends n. Any non-2xx response is an error.
func (p *HTTPPublisher) Publish(ctx context.Context, n domain.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event", n.Event)
	req.Header.Set("X-Recipient-ID", n.RecipientID)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
