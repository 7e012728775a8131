// Package resend delivers transactional email through the Resend HTTP API.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.resend.com"

// Client sends email via Resend.
type Client struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client talking to the production Resend API.
func NewClient(apiKey, from string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		from:       from,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "resend"),
	}
}

// NewClientWithURL creates a Client with a custom base URL (for testing).
func NewClientWithURL(baseURL, apiKey, from string, logger *slog.Logger) *Client {
	c := NewClient(apiKey, from, logger)
	c.baseURL = baseURL
	return c
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type sendResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Send delivers one email. The error carries enough context for the caller's
// log line; delivery is not retried beyond the single 5xx retry below, the
// scheduler's next run picks unsent reminders up again.
func (c *Client) Send(ctx context.Context, to, subject, html, text string) error {
	payload, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		return fmt.Errorf("resend: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("resend: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(payload)), nil
	}

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		c.log.ErrorContext(ctx, "resend request failed", slog.String("error", err.Error()))
		return fmt.Errorf("resend: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("resend: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		if jsonErr := json.Unmarshal(body, &errResp); jsonErr == nil && errResp.Message != "" {
			c.log.ErrorContext(ctx, "resend rejected email",
				slog.Int("status", resp.StatusCode),
				slog.String("name", errResp.Name),
				slog.String("message", errResp.Message),
			)
			return fmt.Errorf("resend: status %d: %s", resp.StatusCode, errResp.Message)
		}
		c.log.ErrorContext(ctx, "resend rejected email", slog.Int("status", resp.StatusCode))
		return fmt.Errorf("resend: unexpected status %d", resp.StatusCode)
	}

	var sent sendResponse
	if err := json.Unmarshal(body, &sent); err != nil {
		return fmt.Errorf("resend: decode response: %w", err)
	}

	c.log.DebugContext(ctx, "resend email sent", slog.String("email_id", sent.ID))
	return nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		return resp, err
	}

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-time.After(500 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return c.httpClient.Do(req)
}
