package chat

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message - сообщение диалога. Порядок чтения определяется явной
// сортировкой по CreatedAt, а не порядком записи.
type Message struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	ChatID     string    `gorm:"type:uuid;index;not null" json:"chat_id"`
	SenderID   string    `gorm:"type:uuid;not null" json:"sender_id"`
	SenderName string    `gorm:"not null" json:"sender_name"`
	Content    string    `gorm:"type:text" json:"content"` // опционально при наличии картинки
	ImageURL   string    `json:"image_url,omitempty"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
