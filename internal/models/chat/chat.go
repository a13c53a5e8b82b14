package chat

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Chat - диалог ровно между двумя участниками.
// PairKey - нормализованный ключ пары (отсортированные id через ":"),
// уникальный индекс по нему закрывает гонку двух одновременных первых
// сообщений, создающих дубликат диалога.
type Chat struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	PairKey string `gorm:"uniqueIndex;not null" json:"-"`

	Participants     datatypes.JSONSlice[string]           `gorm:"type:jsonb;not null" json:"participants"`
	ParticipantNames datatypes.JSONType[map[string]string] `gorm:"type:jsonb" json:"participant_names"`

	LastMessage     string    `json:"last_message"`
	LastMessageAt   time.Time `gorm:"index" json:"last_message_at"`
	LastMessageFrom string    `json:"last_message_from"`

	// ReadBy сбрасывается до [senderID] каждым новым сообщением:
	// второй участник тем самым становится непрочитавшим
	ReadBy datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"read_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Messages []Message `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Chat) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// PairKeyFor строит нормализованный ключ пары участников
func PairKeyFor(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, ":")
}

// HasParticipant сообщает, состоит ли пользователь в диалоге
func (c *Chat) HasParticipant(userID string) bool {
	for _, id := range c.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// IsReadBy сообщает, видел ли пользователь последнее сообщение
func (c *Chat) IsReadBy(userID string) bool {
	for _, id := range c.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}

// IsUnreadFor - диалог идет в бейдж непрочитанного, если последнее
// сообщение не от пользователя и он его еще не видел
func (c *Chat) IsUnreadFor(userID string) bool {
	return c.LastMessageFrom != "" && c.LastMessageFrom != userID && !c.IsReadBy(userID)
}
