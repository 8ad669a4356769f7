// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package slack delivers composed messages to a Slack incoming webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/deadliner/pkg/types"
)

// defaultTimeout bounds one delivery request.
const defaultTimeout = 15 * time.Second

// Client posts messages to one webhook URL. Delivery is a single blocking
// request with no internal retry; a failure is returned to the caller,
// which decides whether to rerun the pipeline.
type Client struct {
	webhookURL string
	httpClient *http.Client
}

// NewClient returns a client for the given webhook URL. A nil httpClient
// selects a default with a 15 s timeout.
func NewClient(webhookURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{webhookURL: webhookURL, httpClient: httpClient}
}

// Send posts the message as JSON. Any transport error or non-2xx response
// is an error carrying the response body for diagnosis.
func (c *Client) Send(ctx context.Context, msg types.Message) error {
	if c.webhookURL == "" {
		return fmt.Errorf("webhook URL not configured")
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	return nil
}
