package push

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendSuccess(t *testing.T) {
	var got request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Key rest-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"b98881cc","recipients":42}`))
	}))
	defer srv.Close()

	c := New("app-1", "rest-key", srv.URL)
	res, err := c.Send(context.Background(), Message{
		Heading: "Liturgia de hoje",
		Content: "Lc 24, 1-12",
		URL:     "https://liturgia.example.org/liturgia/2025-04-20",
	})
	require.NoError(t, err)

	assert.Equal(t, "b98881cc", res.ID)
	assert.Equal(t, 42, res.Recipients)
	assert.NotEmpty(t, res.IdempotencyKey)
	assert.Empty(t, res.Warnings)

	assert.Equal(t, "app-1", got.AppID)
	assert.Equal(t, []string{DefaultSegment}, got.IncludedSegments)
	assert.Equal(t, "Liturgia de hoje", got.Headings["pt"])
	assert.Equal(t, "Lc 24, 1-12", got.Contents["en"])
	assert.Equal(t, res.IdempotencyKey, got.IdempotencyKey)
}

func TestSendErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		messages []string
	}{
		{
			name:     "bad request with list",
			status:   http.StatusBadRequest,
			body:     `{"errors":["Message Notifications must have English language content"]}`,
			messages: []string{"Message Notifications must have English language content"},
		},
		{
			name:     "ok without id",
			status:   http.StatusOK,
			body:     `{"id":"","errors":["All included players are not subscribed"]}`,
			messages: []string{"All included players are not subscribed"},
		},
		{
			name:     "object errors",
			status:   http.StatusBadRequest,
			body:     `{"errors":{"invalid_player_ids":["x"],"invalid_aliases":{}}}`,
			messages: []string{"invalid_aliases", "invalid_player_ids"},
		},
		{
			name:   "server error without body",
			status: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New("app", "key", srv.URL).Send(context.Background(), Message{Content: "x"})
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr), "got %v", err)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.messages, apiErr.Messages)
		})
	}
}

func TestSendWarnings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"abc","errors":{"invalid_player_ids":["1"]}}`))
	}))
	defer srv.Close()

	res, err := New("app", "key", srv.URL).Send(context.Background(), Message{Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"invalid_player_ids"}, res.Warnings)
}

func TestSendNotConfigured(t *testing.T) {
	_, err := New("", "", "").Send(context.Background(), Message{Content: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	var nilClient *Client
	assert.False(t, nilClient.Configured())
}

func TestSendRequiresContent(t *testing.T) {
	_, err := New("app", "key", "").Send(context.Background(), Message{Heading: "only heading"})
	assert.Error(t, err)
}

func TestSendCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New("app", "key", srv.URL).Send(ctx, Message{Content: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
