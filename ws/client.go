package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"inkspot_backend/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// IncomingMessage - команды клиента. Поддерживаются open_chat
// (подписка на сообщения диалога) и close_chat.
type IncomingMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type Client struct {
	UserID  string
	conn    *websocket.Conn
	send    chan OutboundMessage
	manager *Manager

	// Открытый диалог этого соединения. Не более одного:
	// open_chat нового диалога снимает подписку с предыдущего.
	openChatMu sync.RWMutex
	openChatID string
}

func (c *Client) hasOpenChat(chatID string) bool {
	if chatID == "" {
		return false
	}
	c.openChatMu.RLock()
	defer c.openChatMu.RUnlock()
	return c.openChatID == chatID
}

func (c *Client) setOpenChat(chatID string) {
	c.openChatMu.Lock()
	c.openChatID = chatID
	c.openChatMu.Unlock()
}

func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WithError(err).Debug("ws read error", "user_id", c.UserID)
			}
			return
		}

		var msg IncomingMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			logger.WithError(err).Debug("ws invalid message", "user_id", c.UserID)
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg IncomingMessage) {
	switch msg.Action {
	case "open_chat":
		var payload struct {
			ChatID string `json:"chat_id"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.ChatID == "" {
			logger.Debug("ws invalid open_chat payload", "user_id", c.UserID)
			return
		}
		c.setOpenChat(payload.ChatID)

	case "close_chat":
		c.setOpenChat("")

	default:
		logger.Debug("ws unhandled action", "action", msg.Action, "user_id", c.UserID)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				logger.WithError(err).Debug("ws write error", "user_id", c.UserID)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
