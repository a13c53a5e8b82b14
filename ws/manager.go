package ws

import (
	"sync"

	"inkspot_backend/internal/logger"
	"inkspot_backend/internal/services"
	"inkspot_backend/internal/services/dto"
)

// OutboundMessage - конверт всех исходящих событий.
type OutboundMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Manager ведет реестр подключенных клиентов. Один пользователь
// может держать несколько соединений (несколько вкладок).
type Manager struct {
	clients    map[string]map[*Client]struct{} // userID -> соединения
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			if m.clients[client.UserID] == nil {
				m.clients[client.UserID] = make(map[*Client]struct{})
			}
			m.clients[client.UserID][client] = struct{}{}
			m.mu.Unlock()
			logger.Debug("ws client registered", "user_id", client.UserID)

		case client := <-m.unregister:
			m.mu.Lock()
			if conns, ok := m.clients[client.UserID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.send)
					if len(conns) == 0 {
						delete(m.clients, client.UserID)
					}
				}
			}
			m.mu.Unlock()
			logger.Debug("ws client unregistered", "user_id", client.UserID)
		}
	}
}

// PushToUser реализует services.Pusher.
//
// События сообщений доставляются только соединениям с открытым
// соответствующим диалогом: клиентское приложение держит подписку
// максимум на один открытый чат, остальные узнают о новом сообщении
// через chat_updated.
func (m *Manager) PushToUser(userID string, event string, payload interface{}) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	conns, ok := m.clients[userID]
	if !ok {
		return
	}

	msg := OutboundMessage{Event: event, Data: payload}
	for client := range conns {
		if event == services.EventNewMessage && !client.hasOpenChat(chatIDOf(payload)) {
			continue
		}
		select {
		case client.send <- msg:
		default:
			// Канал заполнен - соединение мертво, отцепляем
			go func(c *Client) { m.unregister <- c }(client)
		}
	}
}

func chatIDOf(payload interface{}) string {
	if msg, ok := payload.(*dto.MessageResponse); ok {
		return msg.ChatID
	}
	return ""
}

var _ services.Pusher = (*Manager)(nil)
