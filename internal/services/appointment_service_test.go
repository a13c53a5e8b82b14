package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"inkspot_backend/internal/models"
	"inkspot_backend/internal/repositories"
	"inkspot_backend/internal/services/dto"
	"inkspot_backend/pkg/apperrors"
)

func newAppointmentFixture(t *testing.T) (*gorm.DB, AppointmentService, *models.User, *models.User, *recordingPusher) {
	t.Helper()

	db := setupTestDB(t)
	client := createTestUser(t, db, models.UserRoleClient, "Client", "client@test.local")
	artist := createTestUser(t, db, models.UserRoleArtist, "Artist", "artist@test.local")

	pusher := &recordingPusher{}
	svc := NewAppointmentService(
		repositories.NewAppointmentRepository(),
		repositories.NewUserRepository(),
		pusher,
		nil,
	)
	return db, svc, client, artist, pusher
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func createRequest(artistID string) *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		ArtistID:     artistID,
		Date:         futureDate(),
		Time:         "12:00",
		Description:  "sleeve concept",
		BodyArea:     "Forearm",
		ContactName:  "Client",
		ContactPhone: "+77001234567",
		ContactEmail: "client@test.local",
	}
}

func TestAppointmentCreate(t *testing.T) {
	db, svc, client, artist, pusher := newAppointmentFixture(t)

	resp, err := svc.Create(db, client.ID, createRequest(artist.ID))
	require.NoError(t, err)

	assert.Equal(t, models.AppointmentStatusPending, resp.Status)
	assert.False(t, resp.Viewed)
	assert.Nil(t, resp.Price)
	assert.Equal(t, artist.FullName, resp.ArtistName)

	// Событие уходит обеим сторонам
	assert.Len(t, pusher.eventsFor(client.ID), 1)
	assert.Len(t, pusher.eventsFor(artist.ID), 1)
}

func TestAppointmentCreate_PastDateRejected(t *testing.T) {
	db, svc, client, artist, _ := newAppointmentFixture(t)

	req := createRequest(artist.ID)
	req.Date = time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	_, err := svc.Create(db, client.ID, req)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestAppointmentCreate_WithNonArtistRejected(t *testing.T) {
	db, svc, client, _, _ := newAppointmentFixture(t)
	otherClient := createTestUser(t, db, models.UserRoleClient, "Other", "other@test.local")

	_, err := svc.Create(db, client.ID, createRequest(otherClient.ID))
	assert.Error(t, err)
}

func TestPriceNegotiationFlow(t *testing.T) {
	db, svc, client, artist, _ := newAppointmentFixture(t)

	created, err := svc.Create(db, client.ID, createRequest(artist.ID))
	require.NoError(t, err)

	// Артист предлагает цену
	proposed, err := svc.ProposePrice(db, artist.ID, created.ID, &dto.ProposePriceRequest{Price: 150.00})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusPriceProposed, proposed.Status)
	require.NotNil(t, proposed.Price)
	assert.Equal(t, 150.00, *proposed.Price)
	assert.False(t, proposed.Viewed, "смена статуса сбрасывает viewed")

	// Клиент принимает
	confirmed, err := svc.RespondToPrice(db, client.ID, created.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusConfirmed, confirmed.Status)
}

func TestPriceDeclined(t *testing.T) {
	db, svc, client, artist, _ := newAppointmentFixture(t)

	created, err := svc.Create(db, client.ID, createRequest(artist.ID))
	require.NoError(t, err)

	_, err = svc.ProposePrice(db, artist.ID, created.ID, &dto.ProposePriceRequest{Price: 500})
	require.NoError(t, err)

	declined, err := svc.RespondToPrice(db, client.ID, created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusCancelled, declined.Status)
}

func TestIllegalTransitionRejected(t *testing.T) {
	db, svc, client, artist, _ := newAppointmentFixture(t)

	created, err := svc.Create(db, client.ID, createRequest(artist.ID))
	require.NoError(t, err)

	// Принять цену нельзя, пока она не предложена
	_, err = svc.RespondToPrice(db, client.ID, created.ID, true)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestOwnershipEnforced(t *testing.T) {
	db, svc, client, artist, _ := newAppointmentFixture(t)
	stranger := createTestUser(t, db, models.UserRoleArtist, "Stranger", "stranger@test.local")

	created, err := svc.Create(db, client.ID, createRequest(artist.ID))
	require.NoError(t, err)

	// Чужой артист не видит и не меняет заявку
	_, err = svc.ProposePrice(db, stranger.ID, created.ID, &dto.ProposePriceRequest{Price: 100})
	assert.Error(t, err)

	_, err = svc.Get(db, stranger.ID, created.ID)
	assert.Error(t, err)

	// Артист не может отменять за клиента
	_, err = svc.Cancel(db, artist.ID, created.ID)
	assert.Error(t, err)
}

func TestHideAppointment(t *testing.T) {
	db, svc, client, artist, _ := newAppointmentFixture(t)

	created, err := svc.Create(db, client.ID, createRequest(artist.ID))
	require.NoError(t, err)

	// Активную заявку скрыть нельзя
	err = svc.Hide(db, client.ID, created.ID)
	require.Error(t, err)

	_, err = svc.Reject(db, artist.ID, created.ID)
	require.NoError(t, err)

	// Повторное скрытие идемпотентно
	require.NoError(t, svc.Hide(db, client.ID, created.ID))
	require.NoError(t, svc.Hide(db, client.ID, created.ID))

	// Скрывший не видит заявку в списке, вторая сторона видит
	clientList, err := svc.ListForUser(db, client.ID, models.UserRoleClient)
	require.NoError(t, err)
	assert.Empty(t, clientList.Appointments)

	artistList, err := svc.ListForUser(db, artist.ID, models.UserRoleArtist)
	require.NoError(t, err)
	assert.Len(t, artistList.Appointments, 1)
}

func TestUnreadCountAndMarkViewed(t *testing.T) {
	db, svc, client, artist, _ := newAppointmentFixture(t)

	_, err := svc.Create(db, client.ID, createRequest(artist.ID))
	require.NoError(t, err)

	req := createRequest(artist.ID)
	req.Time = "14:00"
	_, err = svc.Create(db, client.ID, req)
	require.NoError(t, err)

	count, err := svc.UnreadCount(db, artist.ID, models.UserRoleArtist)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count.Count)

	require.NoError(t, svc.MarkAllViewed(db, artist.ID, models.UserRoleArtist))

	count, err = svc.UnreadCount(db, artist.ID, models.UserRoleArtist)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count.Count)
}
