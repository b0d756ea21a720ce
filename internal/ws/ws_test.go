package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_Decode(t *testing.T) {
	msg, err := NewMessage(TypeSetDirection, map[string]string{"direction": "up"})
	require.NoError(t, err)

	var req struct {
		Direction string `json:"direction"`
	}
	require.NoError(t, msg.Decode(&req))
	assert.Equal(t, "up", req.Direction)

	req.Direction = "kept"
	require.NoError(t, Message{Type: TypeStartGame}.Decode(&req))
	assert.Equal(t, "kept", req.Direction, "absent payload leaves the target untouched")
}

func TestNewErrorMessage(t *testing.T) {
	msg := NewErrorMessage("room not found")
	assert.Equal(t, TypeError, msg.Type)

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"error","data":{"message":"room not found"}}`, string(data))
}

func TestClient_SendRawDropsWhenFull(t *testing.T) {
	c := &Client{ID: "c1", Send: make(chan []byte, 1)}
	c.SendRaw([]byte("a"))
	c.SendRaw([]byte("b"))

	assert.Len(t, c.Send, 1)
	assert.Equal(t, []byte("a"), <-c.Send)
}

func TestHub_RoutesAndDisconnects(t *testing.T) {
	h := NewHub()
	got := make(chan string, 1)
	gone := make(chan string, 1)
	h.OnMessage = func(cm *ClientMessage) { got <- string(cm.Data) }
	h.OnDisconnect = func(c *Client) { gone <- c.ID }
	go h.Run()

	c := &Client{ID: h.NextClientID(), Hub: h, Send: make(chan []byte, 1)}
	h.Register <- c
	h.Incoming <- &ClientMessage{Client: c, Data: []byte("hello")}

	select {
	case data := <-got:
		assert.Equal(t, "hello", data)
	case <-time.After(time.Second):
		t.Fatal("message not routed")
	}
	assert.Equal(t, 1, h.ClientCount())

	h.Unregister <- c
	select {
	case id := <-gone:
		assert.Equal(t, c.ID, id)
	case <-time.After(time.Second):
		t.Fatal("disconnect not reported")
	}
	_, open := <-c.Send
	assert.False(t, open, "send channel is closed on disconnect")
	assert.Zero(t, h.ClientCount())
}

func TestHub_NextClientIDUnique(t *testing.T) {
	h := NewHub()
	assert.Equal(t, "client-1", h.NextClientID())
	assert.Equal(t, "client-2", h.NextClientID())
}
