package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkspot_backend/internal/models"
	"inkspot_backend/internal/repositories"
	"inkspot_backend/internal/services/dto"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repositories.NewUserRepository(), repositories.NewRefreshTokenRepository())

	registered, err := svc.Register(db, &dto.RegisterRequest{
		Email:    "artist@test.local",
		Password: "secret-password",
		Name:     "Artist",
		Role:     models.UserRoleArtist,
		City:     "Almaty",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)
	assert.Equal(t, models.UserRoleArtist, registered.User.Role)

	// Повторная регистрация на тот же email
	_, err = svc.Register(db, &dto.RegisterRequest{
		Email:    "artist@test.local",
		Password: "another-password",
		Name:     "Twin",
		Role:     models.UserRoleClient,
	})
	assert.Error(t, err)

	logged, err := svc.Login(db, &dto.LoginRequest{Email: "artist@test.local", Password: "secret-password"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, logged.User.ID)

	_, err = svc.Login(db, &dto.LoginRequest{Email: "artist@test.local", Password: "wrong"})
	assert.Error(t, err)
}

func TestRefreshRotation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repositories.NewUserRepository(), repositories.NewRefreshTokenRepository())

	registered, err := svc.Register(db, &dto.RegisterRequest{
		Email:    "client@test.local",
		Password: "secret-password",
		Name:     "Client",
		Role:     models.UserRoleClient,
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(db, &dto.RefreshTokenRequest{RefreshToken: registered.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// Старый токен отозван ротацией
	_, err = svc.Refresh(db, &dto.RefreshTokenRequest{RefreshToken: registered.RefreshToken})
	assert.Error(t, err)
}

func TestLogout(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repositories.NewUserRepository(), repositories.NewRefreshTokenRepository())

	registered, err := svc.Register(db, &dto.RegisterRequest{
		Email:    "client@test.local",
		Password: "secret-password",
		Name:     "Client",
		Role:     models.UserRoleClient,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(db, &dto.LogoutRequest{RefreshToken: registered.RefreshToken}))

	_, err = svc.Refresh(db, &dto.RefreshTokenRequest{RefreshToken: registered.RefreshToken})
	assert.Error(t, err)

	// Logout с несуществующим токеном не ошибка
	require.NoError(t, svc.Logout(db, &dto.LogoutRequest{RefreshToken: "unknown"}))
}
