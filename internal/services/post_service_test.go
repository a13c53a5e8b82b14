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

func newPostFixture(t *testing.T) (*gorm.DB, PostService, *models.User, *models.User) {
	t.Helper()

	db := setupTestDB(t)
	client := createTestUser(t, db, models.UserRoleClient, "Client", "client@test.local")
	artist := createTestUser(t, db, models.UserRoleArtist, "Artist", "artist@test.local")

	svc := NewPostService(
		repositories.NewPostRepository(),
		repositories.NewUserRepository(),
	)
	return db, svc, client, artist
}

func TestCreatePost_OnlyArtists(t *testing.T) {
	db, svc, client, artist := newPostFixture(t)

	post, err := svc.Create(db, artist.ID, &dto.CreatePostRequest{
		ImageURL: "/files/artwork/a.jpg",
		Title:    "New flash",
	})
	require.NoError(t, err)
	assert.Equal(t, artist.FullName, post.ArtistName)
	assert.Equal(t, artist.StudioName, post.StudioName)

	_, err = svc.Create(db, client.ID, &dto.CreatePostRequest{ImageURL: "/files/artwork/b.jpg"})
	assert.Error(t, err)
}

func TestToggleLike(t *testing.T) {
	db, svc, client, artist := newPostFixture(t)

	post, err := svc.Create(db, artist.ID, &dto.CreatePostRequest{ImageURL: "/files/artwork/a.jpg"})
	require.NoError(t, err)

	liked, err := svc.ToggleLike(db, client.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked.Liked)
	assert.Equal(t, 1, liked.LikeCount)

	// Повторный лайк снимает лайк
	unliked, err := svc.ToggleLike(db, client.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, unliked.Liked)
	assert.Equal(t, 0, unliked.LikeCount)
}

func TestAddComment(t *testing.T) {
	db, svc, client, artist := newPostFixture(t)

	post, err := svc.Create(db, artist.ID, &dto.CreatePostRequest{ImageURL: "/files/artwork/a.jpg"})
	require.NoError(t, err)

	updated, err := svc.AddComment(db, client.ID, post.ID, &dto.AddCommentRequest{Text: "love it"})
	require.NoError(t, err)
	require.Len(t, updated.Comments, 1)
	assert.Equal(t, "Client", updated.Comments[0].UserName)
	assert.Equal(t, "love it", updated.Comments[0].Text)
}

func TestFollowedFeed(t *testing.T) {
	db, svc, client, artist := newPostFixture(t)
	other := createTestUser(t, db, models.UserRoleArtist, "Other", "other-artist@test.local")

	_, err := svc.Create(db, artist.ID, &dto.CreatePostRequest{ImageURL: "/files/artwork/a.jpg"})
	require.NoError(t, err)
	_, err = svc.Create(db, other.ID, &dto.CreatePostRequest{ImageURL: "/files/artwork/b.jpg"})
	require.NoError(t, err)

	userSvc := NewUserService(repositories.NewUserRepository())
	require.NoError(t, userSvc.FollowArtist(db, client.ID, artist.ID))

	feed, err := svc.FollowedFeed(db, client.ID)
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, artist.ID, feed.Posts[0].ArtistID)

	// Общая лента видит обоих
	all, err := svc.Feed(db, client.ID, 1, 20)
	require.NoError(t, err)
	assert.Len(t, all.Posts, 2)
}

func TestDeletePost_OnlyAuthor(t *testing.T) {
	db, svc, _, artist := newPostFixture(t)
	other := createTestUser(t, db, models.UserRoleArtist, "Other", "other-artist@test.local")

	post, err := svc.Create(db, artist.ID, &dto.CreatePostRequest{ImageURL: "/files/artwork/a.jpg"})
	require.NoError(t, err)

	assert.Error(t, svc.Delete(db, other.ID, post.ID))
	require.NoError(t, svc.Delete(db, artist.ID, post.ID))

	_, err = svc.Get(db, artist.ID, post.ID)
	assert.Error(t, err)
}
