package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"inkspot_backend/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: ограничить origin списком доменов фронтенда
	},
}

type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// ServeWS апгрейдит соединение. Маршрут защищен AuthMiddleware,
// userID берется из контекста.
func (h *Handler) ServeWS(c *gin.Context) {
	userIDVal, exists := c.Get("userID")
	userID, _ := userIDVal.(string)
	if !exists || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WithError(err).Warn("ws upgrade failed", "user_id", userID)
		return
	}

	client := &Client{
		UserID:  userID,
		conn:    conn,
		send:    make(chan OutboundMessage, 256),
		manager: h.manager,
	}

	h.manager.register <- client

	go client.readPump()
	go client.writePump()
}
