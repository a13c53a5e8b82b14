package dto

import "time"

// ======================
// Request DTOs
// ======================

type CreateChatRequest struct {
	RecipientID string `json:"recipient_id" validate:"required,uuid4"`
}

type SendMessageRequest struct {
	Content  string `json:"content" validate:"omitempty,max=4000"`
	ImageURL string `json:"image_url" validate:"omitempty,max=500"`
}

// ======================
// Response DTOs
// ======================

type ChatResponse struct {
	ID               string            `json:"id"`
	Participants     []string          `json:"participants"`
	ParticipantNames map[string]string `json:"participant_names"`
	LastMessage      string            `json:"last_message,omitempty"`
	LastMessageAt    *time.Time        `json:"last_message_at,omitempty"`
	LastMessageFrom  string            `json:"last_message_from,omitempty"`
	Unread           bool              `json:"unread"`
	CreatedAt        time.Time         `json:"created_at"`
}

type ChatListResponse struct {
	Chats       []*ChatResponse `json:"chats"`
	UnreadCount int             `json:"unread_count"`
}

type MessageResponse struct {
	ID         string    `json:"id"`
	ChatID     string    `json:"chat_id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content,omitempty"`
	ImageURL   string    `json:"image_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type MessageListResponse struct {
	Messages []*MessageResponse `json:"messages"`
}
