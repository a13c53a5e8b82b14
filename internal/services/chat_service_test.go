package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"inkspot_backend/internal/models"
	"inkspot_backend/internal/repositories"
	"inkspot_backend/internal/services/dto"
)

func newChatFixture(t *testing.T) (*gorm.DB, ChatService, *models.User, *models.User) {
	t.Helper()

	db := setupTestDB(t)
	client := createTestUser(t, db, models.UserRoleClient, "Client", "client@test.local")
	artist := createTestUser(t, db, models.UserRoleArtist, "Artist", "artist@test.local")

	svc := NewChatService(
		repositories.NewChatRepository(),
		repositories.NewUserRepository(),
		&recordingPusher{},
	)
	return db, svc, client, artist
}

func TestCreateOrGetChat_Deduplicates(t *testing.T) {
	db, svc, client, artist := newChatFixture(t)

	first, err := svc.CreateOrGetChat(db, client.ID, &dto.CreateChatRequest{RecipientID: artist.ID})
	require.NoError(t, err)

	// Повторное создание с любой стороны возвращает тот же диалог
	second, err := svc.CreateOrGetChat(db, artist.ID, &dto.CreateChatRequest{RecipientID: client.ID})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	list, err := svc.ListChats(db, client.ID)
	require.NoError(t, err)
	assert.Len(t, list.Chats, 1)
}

func TestCreateChat_WithSelfRejected(t *testing.T) {
	db, svc, client, _ := newChatFixture(t)

	_, err := svc.CreateOrGetChat(db, client.ID, &dto.CreateChatRequest{RecipientID: client.ID})
	assert.Error(t, err)
}

func TestSendMessage_UpdatesPreviewAndReadBy(t *testing.T) {
	db, svc, client, artist := newChatFixture(t)

	chat, err := svc.CreateOrGetChat(db, client.ID, &dto.CreateChatRequest{RecipientID: artist.ID})
	require.NoError(t, err)

	msg, err := svc.SendMessage(db, client.ID, chat.ID, &dto.SendMessageRequest{Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "Client", msg.SenderName)

	// Для получателя диалог непрочитан, для отправителя нет
	updated, err := svc.GetChat(db, artist.ID, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", updated.LastMessage)
	assert.True(t, updated.Unread)

	own, err := svc.GetChat(db, client.ID, chat.ID)
	require.NoError(t, err)
	assert.False(t, own.Unread)
}

func TestSendMessage_ImagePreview(t *testing.T) {
	db, svc, client, artist := newChatFixture(t)

	chat, err := svc.CreateOrGetChat(db, client.ID, &dto.CreateChatRequest{RecipientID: artist.ID})
	require.NoError(t, err)

	_, err = svc.SendMessage(db, client.ID, chat.ID, &dto.SendMessageRequest{ImageURL: "/files/chat/a.jpg"})
	require.NoError(t, err)

	updated, err := svc.GetChat(db, artist.ID, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, "📷 Image", updated.LastMessage)
}

func TestSendMessage_EmptyRejected(t *testing.T) {
	db, svc, client, artist := newChatFixture(t)

	chat, err := svc.CreateOrGetChat(db, client.ID, &dto.CreateChatRequest{RecipientID: artist.ID})
	require.NoError(t, err)

	_, err = svc.SendMessage(db, client.ID, chat.ID, &dto.SendMessageRequest{})
	assert.Error(t, err)
}

func TestSendMessage_NonParticipantRejected(t *testing.T) {
	db, svc, client, artist := newChatFixture(t)
	stranger := createTestUser(t, db, models.UserRoleClient, "Stranger", "stranger@test.local")

	chat, err := svc.CreateOrGetChat(db, client.ID, &dto.CreateChatRequest{RecipientID: artist.ID})
	require.NoError(t, err)

	_, err = svc.SendMessage(db, stranger.ID, chat.ID, &dto.SendMessageRequest{Content: "hi"})
	assert.Error(t, err)
}

func TestMarkRead_Idempotent(t *testing.T) {
	db, svc, client, artist := newChatFixture(t)

	chat, err := svc.CreateOrGetChat(db, client.ID, &dto.CreateChatRequest{RecipientID: artist.ID})
	require.NoError(t, err)

	_, err = svc.SendMessage(db, client.ID, chat.ID, &dto.SendMessageRequest{Content: "hello"})
	require.NoError(t, err)

	count, err := svc.UnreadChatCount(db, artist.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, svc.MarkRead(db, artist.ID, chat.ID))
	require.NoError(t, svc.MarkRead(db, artist.ID, chat.ID))

	count, err = svc.UnreadChatCount(db, artist.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestDeleteChat_RemovesMessages(t *testing.T) {
	db, svc, client, artist := newChatFixture(t)

	chat, err := svc.CreateOrGetChat(db, client.ID, &dto.CreateChatRequest{RecipientID: artist.ID})
	require.NoError(t, err)

	_, err = svc.SendMessage(db, client.ID, chat.ID, &dto.SendMessageRequest{Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteChat(db, artist.ID, chat.ID))

	_, err = svc.GetMessages(db, client.ID, chat.ID)
	assert.Error(t, err)

	list, err := svc.ListChats(db, client.ID)
	require.NoError(t, err)
	assert.Empty(t, list.Chats)
}
