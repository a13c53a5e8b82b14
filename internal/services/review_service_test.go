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

func newReviewFixture(t *testing.T) (*gorm.DB, ReviewService, *models.User, *models.User) {
	t.Helper()

	db := setupTestDB(t)
	client := createTestUser(t, db, models.UserRoleClient, "Client", "client@test.local")
	artist := createTestUser(t, db, models.UserRoleArtist, "Artist", "artist@test.local")

	svc := NewReviewService(
		repositories.NewReviewRepository(),
		repositories.NewUserRepository(),
	)
	return db, svc, client, artist
}

func artistAggregate(t *testing.T, db *gorm.DB, artistID string) (float64, int64) {
	t.Helper()
	var artist models.User
	require.NoError(t, db.First(&artist, "id = ?", artistID).Error)
	return artist.AverageRating, artist.RatingCount
}

func TestSubmitReview_UpdatesAggregate(t *testing.T) {
	db, svc, client, artist := newReviewFixture(t)
	second := createTestUser(t, db, models.UserRoleClient, "Second", "second@test.local")

	_, err := svc.SubmitReview(db, client.ID, artist.ID, &dto.SubmitReviewRequest{Rating: 5, Comment: "great"})
	require.NoError(t, err)

	avg, count := artistAggregate(t, db, artist.ID)
	assert.Equal(t, 5.0, avg)
	assert.EqualValues(t, 1, count)

	_, err = svc.SubmitReview(db, second.ID, artist.ID, &dto.SubmitReviewRequest{Rating: 2})
	require.NoError(t, err)

	avg, count = artistAggregate(t, db, artist.ID)
	assert.InDelta(t, 3.5, avg, 0.001)
	assert.EqualValues(t, 2, count)
}

func TestSubmitReview_UpsertPerPair(t *testing.T) {
	db, svc, client, artist := newReviewFixture(t)

	first, err := svc.SubmitReview(db, client.ID, artist.ID, &dto.SubmitReviewRequest{Rating: 2, Comment: "meh"})
	require.NoError(t, err)

	// Повторный отзыв той же пары обновляет запись, не плодит дубль
	updated, err := svc.SubmitReview(db, client.ID, artist.ID, &dto.SubmitReviewRequest{Rating: 5, Comment: "better now"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)

	list, err := svc.GetArtistReviews(db, artist.ID)
	require.NoError(t, err)
	require.Len(t, list.Reviews, 1)
	assert.Equal(t, 5, list.Reviews[0].Rating)

	avg, count := artistAggregate(t, db, artist.ID)
	assert.Equal(t, 5.0, avg)
	assert.EqualValues(t, 1, count)
}

func TestSubmitReview_SelfAndNonArtistRejected(t *testing.T) {
	db, svc, client, _ := newReviewFixture(t)
	otherClient := createTestUser(t, db, models.UserRoleClient, "Other", "other@test.local")

	_, err := svc.SubmitReview(db, client.ID, client.ID, &dto.SubmitReviewRequest{Rating: 5})
	assert.Error(t, err)

	_, err = svc.SubmitReview(db, client.ID, otherClient.ID, &dto.SubmitReviewRequest{Rating: 5})
	assert.Error(t, err)
}

func TestDeleteReview_ResetsAggregateWhenEmpty(t *testing.T) {
	db, svc, client, artist := newReviewFixture(t)

	created, err := svc.SubmitReview(db, client.ID, artist.ID, &dto.SubmitReviewRequest{Rating: 4})
	require.NoError(t, err)

	// Чужой отзыв удалить нельзя
	stranger := createTestUser(t, db, models.UserRoleClient, "Stranger", "stranger@test.local")
	assert.Error(t, svc.DeleteReview(db, stranger.ID, created.ID))

	require.NoError(t, svc.DeleteReview(db, client.ID, created.ID))

	avg, count := artistAggregate(t, db, artist.ID)
	assert.Equal(t, 0.0, avg)
	assert.EqualValues(t, 0, count)
}

func TestRecalculateArtistRating_HealsDrift(t *testing.T) {
	db, svc, client, artist := newReviewFixture(t)

	_, err := svc.SubmitReview(db, client.ID, artist.ID, &dto.SubmitReviewRequest{Rating: 4})
	require.NoError(t, err)

	// Симулируем дрейф агрегата
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", artist.ID).
		Updates(map[string]interface{}{"average_rating": 1.0, "rating_count": 99}).Error)

	require.NoError(t, svc.RecalculateArtistRating(db, artist.ID))

	avg, count := artistAggregate(t, db, artist.ID)
	assert.Equal(t, 4.0, avg)
	assert.EqualValues(t, 1, count)
}

func TestGetMyReview(t *testing.T) {
	db, svc, client, artist := newReviewFixture(t)

	_, err := svc.GetMyReview(db, client.ID, artist.ID)
	require.Error(t, err)

	_, err = svc.SubmitReview(db, client.ID, artist.ID, &dto.SubmitReviewRequest{Rating: 4, Comment: "solid work"})
	require.NoError(t, err)

	mine, err := svc.GetMyReview(db, client.ID, artist.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, mine.Rating)
	assert.Equal(t, "solid work", mine.Comment)
}
