package repositories

import (
	"errors"

	modelchat "inkspot_backend/internal/models/chat"

	"gorm.io/gorm"
)

var ErrChatNotFound = errors.New("chat not found")

type ChatRepository interface {
	CreateChat(db *gorm.DB, chat *modelchat.Chat) error
	FindChatByID(db *gorm.DB, id string) (*modelchat.Chat, error)
	FindChatByPairKey(db *gorm.DB, pairKey string) (*modelchat.Chat, error)
	// FindChatsForUser - диалоги пользователя, свежие первыми
	FindChatsForUser(db *gorm.DB, userID string) ([]modelchat.Chat, error)
	SaveChat(db *gorm.DB, chat *modelchat.Chat) error
	// DeleteChat удаляет диалог вместе со всеми сообщениями
	DeleteChat(db *gorm.DB, id string) error

	CreateMessage(db *gorm.DB, message *modelchat.Message) error
	// FindMessages - сообщения диалога по возрастанию created_at
	FindMessages(db *gorm.DB, chatID string) ([]modelchat.Message, error)
}

type chatRepository struct{}

func NewChatRepository() ChatRepository {
	return &chatRepository{}
}

func (r *chatRepository) CreateChat(db *gorm.DB, chat *modelchat.Chat) error {
	return db.Create(chat).Error
}

func (r *chatRepository) FindChatByID(db *gorm.DB, id string) (*modelchat.Chat, error) {
	var chat modelchat.Chat
	err := db.First(&chat, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) FindChatByPairKey(db *gorm.DB, pairKey string) (*modelchat.Chat, error) {
	var chat modelchat.Chat
	err := db.First(&chat, "pair_key = ?", pairKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) FindChatsForUser(db *gorm.DB, userID string) ([]modelchat.Chat, error) {
	var chats []modelchat.Chat
	err := jsonArrayContains(db, "participants", userID).
		Order("last_message_at DESC").
		Find(&chats).Error
	return chats, err
}

func (r *chatRepository) SaveChat(db *gorm.DB, chat *modelchat.Chat) error {
	return db.Save(chat).Error
}

func (r *chatRepository) DeleteChat(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chat_id = ?", id).Delete(&modelchat.Message{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&modelchat.Chat{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrChatNotFound
		}
		return nil
	})
}

func (r *chatRepository) CreateMessage(db *gorm.DB, message *modelchat.Message) error {
	return db.Create(message).Error
}

func (r *chatRepository) FindMessages(db *gorm.DB, chatID string) ([]modelchat.Message, error) {
	var messages []modelchat.Message
	err := db.Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}
