package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkspot_backend/internal/services"
	"inkspot_backend/internal/services/dto"
)

func addTestClient(m *Manager, userID string) *Client {
	c := &Client{
		UserID:  userID,
		send:    make(chan OutboundMessage, 8),
		manager: m,
	}
	if m.clients[userID] == nil {
		m.clients[userID] = make(map[*Client]struct{})
	}
	m.clients[userID][c] = struct{}{}
	return c
}

func drain(c *Client) []OutboundMessage {
	var out []OutboundMessage
	for {
		select {
		case msg := <-c.send:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestPushToUserDeliversToAllConnections(t *testing.T) {
	m := NewManager()
	first := addTestClient(m, "user-1")
	second := addTestClient(m, "user-1")
	other := addTestClient(m, "user-2")

	m.PushToUser("user-1", services.EventChatUpdated, map[string]string{"chat_id": "c1"})

	assert.Len(t, drain(first), 1)
	assert.Len(t, drain(second), 1)
	assert.Empty(t, drain(other))
}

func TestPushToUserUnknownUserIsNoop(t *testing.T) {
	m := NewManager()
	m.PushToUser("nobody", services.EventChatUpdated, nil)
}

func TestNewMessageOnlyReachesOpenChat(t *testing.T) {
	m := NewManager()
	reading := addTestClient(m, "user-1")
	reading.setOpenChat("chat-42")
	idle := addTestClient(m, "user-1")

	msg := &dto.MessageResponse{ID: "m1", ChatID: "chat-42", Content: "hi"}
	m.PushToUser("user-1", services.EventNewMessage, msg)

	got := drain(reading)
	require.Len(t, got, 1)
	assert.Equal(t, services.EventNewMessage, got[0].Event)
	assert.Empty(t, drain(idle))

	// Сообщение из другого диалога не доставляется никому
	m.PushToUser("user-1", services.EventNewMessage, &dto.MessageResponse{ID: "m2", ChatID: "chat-7"})
	assert.Empty(t, drain(reading))
	assert.Empty(t, drain(idle))
}

func TestOpenChatReplacesPrevious(t *testing.T) {
	c := &Client{send: make(chan OutboundMessage, 1)}

	open := func(chatID string) {
		data, _ := json.Marshal(map[string]string{"chat_id": chatID})
		c.handleMessage(IncomingMessage{Action: "open_chat", Data: data})
	}

	open("chat-1")
	assert.True(t, c.hasOpenChat("chat-1"))

	open("chat-2")
	assert.False(t, c.hasOpenChat("chat-1"))
	assert.True(t, c.hasOpenChat("chat-2"))

	c.handleMessage(IncomingMessage{Action: "close_chat"})
	assert.False(t, c.hasOpenChat("chat-2"))
}

func TestOpenChatIgnoresInvalidPayload(t *testing.T) {
	c := &Client{send: make(chan OutboundMessage, 1)}
	c.setOpenChat("chat-1")

	c.handleMessage(IncomingMessage{Action: "open_chat", Data: json.RawMessage(`{"chat_id":""}`)})
	assert.True(t, c.hasOpenChat("chat-1"))

	c.handleMessage(IncomingMessage{Action: "open_chat", Data: json.RawMessage(`not json`)})
	assert.True(t, c.hasOpenChat("chat-1"))
}
