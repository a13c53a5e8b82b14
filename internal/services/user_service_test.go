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

func newUserFixture(t *testing.T) (*gorm.DB, UserService, *models.User, *models.User) {
	t.Helper()

	db := setupTestDB(t)
	client := createTestUser(t, db, models.UserRoleClient, "Client", "client@test.local")
	artist := createTestUser(t, db, models.UserRoleArtist, "Artist", "artist@test.local")

	return db, NewUserService(repositories.NewUserRepository()), client, artist
}

func TestFollowArtist_SetSemantics(t *testing.T) {
	db, svc, client, artist := newUserFixture(t)

	require.NoError(t, svc.FollowArtist(db, client.ID, artist.ID))
	// Повторная подписка не создает дубль
	require.NoError(t, svc.FollowArtist(db, client.ID, artist.ID))

	followed, err := svc.GetFollowedArtists(db, client.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{artist.ID}, followed.ArtistIDs)
	require.Len(t, followed.Artists, 1)
	assert.Equal(t, artist.ID, followed.Artists[0].ID)
}

func TestFollowArtist_Rejections(t *testing.T) {
	db, svc, client, _ := newUserFixture(t)
	otherClient := createTestUser(t, db, models.UserRoleClient, "Other", "other@test.local")

	assert.Error(t, svc.FollowArtist(db, client.ID, client.ID))
	assert.Error(t, svc.FollowArtist(db, client.ID, otherClient.ID))
}

func TestUnfollowArtist(t *testing.T) {
	db, svc, client, artist := newUserFixture(t)

	require.NoError(t, svc.FollowArtist(db, client.ID, artist.ID))
	require.NoError(t, svc.UnfollowArtist(db, client.ID, artist.ID))
	// Отписка от того, на кого не подписан - no-op
	require.NoError(t, svc.UnfollowArtist(db, client.ID, artist.ID))

	followed, err := svc.GetFollowedArtists(db, client.ID)
	require.NoError(t, err)
	assert.Empty(t, followed.Artists)
}

func TestSearchArtists(t *testing.T) {
	db, svc, _, artist := newUserFixture(t)
	second := createTestUser(t, db, models.UserRoleArtist, "Aibek", "aibek@test.local")
	second.City = "Astana"
	second.Styles = []string{"realism"}
	require.NoError(t, db.Save(second).Error)

	byCity, err := svc.SearchArtists(db, &dto.ArtistSearchCriteria{City: "Astana"})
	require.NoError(t, err)
	require.Len(t, byCity.Artists, 1)
	assert.Equal(t, second.ID, byCity.Artists[0].ID)

	byStyle, err := svc.SearchArtists(db, &dto.ArtistSearchCriteria{Style: "blackwork"})
	require.NoError(t, err)
	require.Len(t, byStyle.Artists, 1)
	assert.Equal(t, artist.ID, byStyle.Artists[0].ID)

	byName, err := svc.SearchArtists(db, &dto.ArtistSearchCriteria{Query: "Aib"})
	require.NoError(t, err)
	require.Len(t, byName.Artists, 1)

	all, err := svc.SearchArtists(db, &dto.ArtistSearchCriteria{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.Total)
}

func TestPublicProfileHidesContacts(t *testing.T) {
	db, svc, _, artist := newUserFixture(t)

	public, err := svc.GetPublicProfile(db, artist.ID)
	require.NoError(t, err)
	assert.Empty(t, public.Email)

	own, err := svc.GetProfile(db, artist.ID)
	require.NoError(t, err)
	assert.Equal(t, "artist@test.local", own.Email)
}

func TestUpdateProfile_StudioFieldsArtistOnly(t *testing.T) {
	db, svc, client, artist := newUserFixture(t)

	studio := "Ink Temple"
	updatedArtist, err := svc.UpdateProfile(db, artist.ID, &dto.UpdateProfileRequest{StudioName: &studio})
	require.NoError(t, err)
	assert.Equal(t, "Ink Temple", updatedArtist.StudioName)

	// Для клиента студийные поля игнорируются
	updatedClient, err := svc.UpdateProfile(db, client.ID, &dto.UpdateProfileRequest{StudioName: &studio})
	require.NoError(t, err)
	assert.Empty(t, updatedClient.StudioName)
}
