package realtime

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBroadcast(t *testing.T) {
	h := NewHub(zap.NewNop())
	a := &client{id: "a", send: make(chan []byte, 1)}
	b := &client{id: "b", send: make(chan []byte, 1)}
	h.add(a)
	h.add(b)
	require.Equal(t, 2, h.Count())

	h.Broadcast(map[string]string{"type": "notification.sent"})

	for _, c := range []*client{a, b} {
		var got map[string]string
		require.NoError(t, json.Unmarshal(<-c.send, &got))
		assert.Equal(t, "notification.sent", got["type"])
	}

	h.remove(a)
	assert.Equal(t, 1, h.Count())
}

func TestBroadcastDropsForSlowClient(t *testing.T) {
	h := NewHub(zap.NewNop())
	c := &client{id: "slow", send: make(chan []byte, 1)}
	h.add(c)

	h.Broadcast("first")
	h.Broadcast("second")

	assert.Equal(t, `"first"`, string(<-c.send))
	assert.Len(t, c.send, 0)
}

func TestBroadcastUnencodable(t *testing.T) {
	h := NewHub(zap.NewNop())
	c := &client{id: "x", send: make(chan []byte, 1)}
	h.add(c)

	h.Broadcast(func() {})
	assert.Len(t, c.send, 0)
}

func TestUpgradeRejectsPlainHTTP(t *testing.T) {
	app := fiber.New()
	app.Get("/ws", Upgrade, func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest("GET", "/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
