// Package push is a client for a OneSignal-compatible push notification API.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotConfigured is returned when the app id or API key is missing.
var ErrNotConfigured = errors.New("push notifications not configured")

const (
	DefaultEndpoint = "https://api.onesignal.com/notifications"
	DefaultSegment  = "Total Subscriptions"
	userAgent       = "liturgia/1.0"
)

// APIError is a dispatch the provider refused.
type APIError struct {
	Status   int
	Messages []string
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("push API returned status %d", e.Status)
	}
	return fmt.Sprintf("push API returned status %d: %s", e.Status, strings.Join(e.Messages, "; "))
}

// Message is what subscribers see. Heading and Content are shown in
// Portuguese; the English fallback repeats them.
type Message struct {
	Heading  string
	Content  string
	URL      string
	Segments []string
}

// Result is an accepted dispatch.
type Result struct {
	ID             string   `json:"id"`
	Recipients     int      `json:"recipients"`
	IdempotencyKey string   `json:"idempotency_key"`
	Warnings       []string `json:"warnings,omitempty"`
}

// Client sends notifications. Safe for concurrent use.
type Client struct {
	appID      string
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// New creates a client. An empty endpoint selects DefaultEndpoint.
func New(appID, apiKey, endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		appID:    appID,
		apiKey:   apiKey,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Configured reports whether Send can reach the provider.
func (c *Client) Configured() bool {
	return c != nil && c.appID != "" && c.apiKey != ""
}

type request struct {
	AppID            string            `json:"app_id"`
	IncludedSegments []string          `json:"included_segments"`
	Headings         map[string]string `json:"headings"`
	Contents         map[string]string `json:"contents"`
	URL              string            `json:"url,omitempty"`
	IdempotencyKey   string            `json:"idempotency_key"`
}

type response struct {
	ID         string          `json:"id"`
	Recipients int             `json:"recipients"`
	Errors     json.RawMessage `json:"errors"`
}

// Send dispatches msg to its segments (DefaultSegment when none).
func (c *Client) Send(ctx context.Context, msg Message) (*Result, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(msg.Content) == "" {
		return nil, errors.New("push message content is required")
	}

	segments := msg.Segments
	if len(segments) == 0 {
		segments = []string{DefaultSegment}
	}

	key := uuid.NewString()
	body, err := json.Marshal(request{
		AppID:            c.appID,
		IncludedSegments: segments,
		Headings:         map[string]string{"en": msg.Heading, "pt": msg.Heading},
		Contents:         map[string]string{"en": msg.Content, "pt": msg.Content},
		URL:              msg.URL,
		IdempotencyKey:   key,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding push request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Key "+c.apiKey)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending push request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading push response: %w", err)
	}

	var parsed response
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil && resp.StatusCode < 300 {
			return nil, fmt.Errorf("decoding push response: %w", err)
		}
	}
	messages := errorMessages(parsed.Errors)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Messages: messages}
	}
	if parsed.ID == "" {
		// The provider answers 200 without an id when nobody was targeted.
		return nil, &APIError{Status: resp.StatusCode, Messages: messages}
	}

	return &Result{
		ID:             parsed.ID,
		Recipients:     parsed.Recipients,
		IdempotencyKey: key,
		Warnings:       messages,
	}, nil
}

// errorMessages flattens the "errors" field, which is either a list of
// strings or an object of lists keyed by problem.
func errorMessages(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys
	}

	return []string{string(raw)}
}
