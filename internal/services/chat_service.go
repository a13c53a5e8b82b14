package services

import (
	"errors"
	"slices"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"inkspot_backend/internal/logger"
	modelchat "inkspot_backend/internal/models/chat"
	"inkspot_backend/internal/repositories"
	"inkspot_backend/internal/services/dto"
	"inkspot_backend/pkg/apperrors"
)

const (
	EventChatUpdated = "chat_updated"
	EventNewMessage  = "new_message"

	// Превью в списке диалогов, когда последнее сообщение - картинка
	imageMessagePreview = "📷 Image"
)

type ChatService interface {
	// CreateOrGetChat возвращает существующий диалог пары или создает новый
	CreateOrGetChat(db *gorm.DB, userID string, req *dto.CreateChatRequest) (*dto.ChatResponse, error)
	GetChat(db *gorm.DB, userID, chatID string) (*dto.ChatResponse, error)
	ListChats(db *gorm.DB, userID string) (*dto.ChatListResponse, error)
	DeleteChat(db *gorm.DB, userID, chatID string) error

	SendMessage(db *gorm.DB, userID, chatID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	GetMessages(db *gorm.DB, userID, chatID string) (*dto.MessageListResponse, error)
	MarkRead(db *gorm.DB, userID, chatID string) error
	UnreadChatCount(db *gorm.DB, userID string) (int, error)
}

type chatService struct {
	chatRepo repositories.ChatRepository
	userRepo repositories.UserRepository
	pusher   Pusher
}

func NewChatService(chatRepo repositories.ChatRepository, userRepo repositories.UserRepository, pusher Pusher) ChatService {
	return &chatService{
		chatRepo: chatRepo,
		userRepo: userRepo,
		pusher:   pusher,
	}
}

func (s *chatService) CreateOrGetChat(db *gorm.DB, userID string, req *dto.CreateChatRequest) (*dto.ChatResponse, error) {
	if userID == req.RecipientID {
		return nil, apperrors.ErrInvalidOperation("chat", "cannot start a chat with yourself")
	}

	pairKey := modelchat.PairKeyFor(userID, req.RecipientID)

	existing, err := s.chatRepo.FindChatByPairKey(db, pairKey)
	if err == nil {
		return buildChatResponse(existing, userID), nil
	}
	if !errors.Is(err, repositories.ErrChatNotFound) {
		return nil, apperrors.InternalError(err)
	}

	users, err := s.userRepo.FindByIDs(db, []string{userID, req.RecipientID})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(users) != 2 {
		return nil, apperrors.ErrNotFound(repositories.ErrUserNotFound)
	}

	names := make(map[string]string, 2)
	for i := range users {
		names[users[i].ID] = users[i].FullName
	}

	chat := &modelchat.Chat{
		PairKey:          pairKey,
		Participants:     []string{userID, req.RecipientID},
		ParticipantNames: datatypes.NewJSONType(names),
		ReadBy:           []string{userID, req.RecipientID},
	}

	if err := s.chatRepo.CreateChat(db, chat); err != nil {
		// Гонка двух параллельных созданий: уникальный индекс по pair_key
		// пропустит только одно, проигравший перечитывает
		existing, findErr := s.chatRepo.FindChatByPairKey(db, pairKey)
		if findErr == nil {
			return buildChatResponse(existing, userID), nil
		}
		return nil, apperrors.InternalError(err)
	}

	logger.Info("chat created", "chat_id", chat.ID, "pair_key", pairKey)
	return buildChatResponse(chat, userID), nil
}

func (s *chatService) GetChat(db *gorm.DB, userID, chatID string) (*dto.ChatResponse, error) {
	chat, err := s.findParticipating(db, userID, chatID)
	if err != nil {
		return nil, err
	}
	return buildChatResponse(chat, userID), nil
}

func (s *chatService) ListChats(db *gorm.DB, userID string) (*dto.ChatListResponse, error) {
	chats, err := s.chatRepo.FindChatsForUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ChatListResponse{
		Chats: make([]*dto.ChatResponse, 0, len(chats)),
	}
	for i := range chats {
		cr := buildChatResponse(&chats[i], userID)
		if cr.Unread {
			resp.UnreadCount++
		}
		resp.Chats = append(resp.Chats, cr)
	}
	return resp, nil
}

func (s *chatService) DeleteChat(db *gorm.DB, userID, chatID string) error {
	chat, err := s.findParticipating(db, userID, chatID)
	if err != nil {
		return err
	}

	if err := s.chatRepo.DeleteChat(db, chat.ID); err != nil {
		return apperrors.InternalError(err)
	}

	logger.Info("chat deleted", "chat_id", chatID, "user_id", userID)
	s.notifyParticipants(chat, EventChatUpdated, map[string]string{"chat_id": chatID, "deleted": "true"})
	return nil
}

func (s *chatService) SendMessage(db *gorm.DB, userID, chatID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if req.Content == "" && req.ImageURL == "" {
		return nil, apperrors.NewBadRequestError("message must have text or an image")
	}

	chat, err := s.findParticipating(db, userID, chatID)
	if err != nil {
		return nil, err
	}

	names := chat.ParticipantNames.Data()

	message := &modelchat.Message{
		ChatID:     chat.ID,
		SenderID:   userID,
		SenderName: names[userID],
		Content:    req.Content,
		ImageURL:   req.ImageURL,
	}
	if err := s.chatRepo.CreateMessage(db, message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Превью и счетчик непрочитанного: прочитал пока только отправитель
	preview := req.Content
	if preview == "" {
		preview = imageMessagePreview
	}
	chat.LastMessage = preview
	chat.LastMessageAt = time.Now()
	chat.LastMessageFrom = userID
	chat.ReadBy = []string{userID}

	if err := s.chatRepo.SaveChat(db, chat); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := buildMessageResponse(message)
	s.notifyParticipants(chat, EventNewMessage, resp)
	s.notifyParticipants(chat, EventChatUpdated, map[string]string{"chat_id": chat.ID})
	return resp, nil
}

func (s *chatService) GetMessages(db *gorm.DB, userID, chatID string) (*dto.MessageListResponse, error) {
	chat, err := s.findParticipating(db, userID, chatID)
	if err != nil {
		return nil, err
	}

	messages, err := s.chatRepo.FindMessages(db, chat.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.MessageListResponse{
		Messages: make([]*dto.MessageResponse, 0, len(messages)),
	}
	for i := range messages {
		resp.Messages = append(resp.Messages, buildMessageResponse(&messages[i]))
	}
	return resp, nil
}

func (s *chatService) MarkRead(db *gorm.DB, userID, chatID string) error {
	chat, err := s.findParticipating(db, userID, chatID)
	if err != nil {
		return err
	}

	// Идемпотентно: повторное прочтение ничего не меняет
	if chat.IsReadBy(userID) {
		return nil
	}
	chat.ReadBy = append(chat.ReadBy, userID)

	if err := s.chatRepo.SaveChat(db, chat); err != nil {
		return apperrors.InternalError(err)
	}

	s.notifyParticipants(chat, EventChatUpdated, map[string]string{"chat_id": chat.ID})
	return nil
}

func (s *chatService) UnreadChatCount(db *gorm.DB, userID string) (int, error) {
	chats, err := s.chatRepo.FindChatsForUser(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}

	count := 0
	for i := range chats {
		if chats[i].IsUnreadFor(userID) {
			count++
		}
	}
	return count, nil
}

func (s *chatService) findParticipating(db *gorm.DB, userID, chatID string) (*modelchat.Chat, error) {
	chat, err := s.chatRepo.FindChatByID(db, chatID)
	if err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !chat.HasParticipant(userID) {
		return nil, apperrors.ErrNotFound(repositories.ErrChatNotFound)
	}
	return chat, nil
}

func (s *chatService) notifyParticipants(chat *modelchat.Chat, event string, payload interface{}) {
	if s.pusher == nil {
		return
	}
	for _, id := range chat.Participants {
		s.pusher.PushToUser(id, event, payload)
	}
}

func buildChatResponse(chat *modelchat.Chat, viewerID string) *dto.ChatResponse {
	resp := &dto.ChatResponse{
		ID:               chat.ID,
		Participants:     slices.Clone(chat.Participants),
		ParticipantNames: chat.ParticipantNames.Data(),
		LastMessage:      chat.LastMessage,
		LastMessageFrom:  chat.LastMessageFrom,
		Unread:           chat.IsUnreadFor(viewerID),
		CreatedAt:        chat.CreatedAt,
	}
	if !chat.LastMessageAt.IsZero() {
		at := chat.LastMessageAt
		resp.LastMessageAt = &at
	}
	return resp
}

func buildMessageResponse(message *modelchat.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:         message.ID,
		ChatID:     message.ChatID,
		SenderID:   message.SenderID,
		SenderName: message.SenderName,
		Content:    message.Content,
		ImageURL:   message.ImageURL,
		CreatedAt:  message.CreatedAt,
	}
}
