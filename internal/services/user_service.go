package services

import (
	"errors"
	"slices"

	"gorm.io/gorm"

	"inkspot_backend/internal/models"
	"inkspot_backend/internal/repositories"
	"inkspot_backend/internal/services/dto"
	"inkspot_backend/pkg/apperrors"
)

type UserService interface {
	GetProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error)
	// GetPublicProfile не включает email и телефон
	GetPublicProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	SearchArtists(db *gorm.DB, criteria *dto.ArtistSearchCriteria) (*dto.ArtistListResponse, error)

	FollowArtist(db *gorm.DB, clientID, artistID string) error
	UnfollowArtist(db *gorm.DB, clientID, artistID string) error
	GetFollowedArtists(db *gorm.DB, clientID string) (*dto.FollowedArtistsResponse, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error) {
	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}
	return buildProfileResponse(user, true), nil
}

func (s *userService) GetPublicProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error) {
	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}
	return buildProfileResponse(user, false), nil
}

func (s *userService) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.FullName = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.AvatarURL != nil {
		user.ProfileImage = *req.AvatarURL
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	// Поля студии имеют смысл только для артиста
	if user.Role == models.UserRoleArtist {
		if req.StudioName != nil {
			user.StudioName = *req.StudioName
		}
		if req.City != nil {
			user.City = *req.City
		}
		if req.Styles != nil {
			user.Styles = req.Styles
		}
	}

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildProfileResponse(user, true), nil
}

func (s *userService) SearchArtists(db *gorm.DB, criteria *dto.ArtistSearchCriteria) (*dto.ArtistListResponse, error) {
	page := criteria.Page
	if page < 1 {
		page = 1
	}
	size := criteria.PageSize
	if size < 1 {
		size = 20
	}

	artists, total, err := s.userRepo.FindArtists(db, repositories.ArtistSearchCriteria{
		City:  criteria.City,
		Style: criteria.Style,
		Query: criteria.Query,
		Page:  page,
		Size:  size,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ArtistListResponse{
		Artists:  make([]*dto.ProfileResponse, 0, len(artists)),
		Total:    total,
		Page:     page,
		PageSize: size,
	}
	for i := range artists {
		resp.Artists = append(resp.Artists, buildProfileResponse(&artists[i], false))
	}
	return resp, nil
}

func (s *userService) FollowArtist(db *gorm.DB, clientID, artistID string) error {
	if clientID == artistID {
		return apperrors.ErrInvalidOperation("user", "cannot follow yourself")
	}

	artist, err := s.findUser(db, artistID)
	if err != nil {
		return err
	}
	if artist.Role != models.UserRoleArtist {
		return apperrors.ErrInvalidOperation("user", "can only follow artists")
	}

	client, err := s.findUser(db, clientID)
	if err != nil {
		return err
	}

	// Повторная подписка - no-op, множество не допускает дублей
	if slices.Contains(client.FollowedArtists, artistID) {
		return nil
	}
	client.FollowedArtists = append(client.FollowedArtists, artistID)

	if err := s.userRepo.Update(db, client); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *userService) UnfollowArtist(db *gorm.DB, clientID, artistID string) error {
	client, err := s.findUser(db, clientID)
	if err != nil {
		return err
	}

	idx := slices.Index(client.FollowedArtists, artistID)
	if idx < 0 {
		return nil
	}
	client.FollowedArtists = slices.Delete(client.FollowedArtists, idx, idx+1)

	if err := s.userRepo.Update(db, client); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *userService) GetFollowedArtists(db *gorm.DB, clientID string) (*dto.FollowedArtistsResponse, error) {
	client, err := s.findUser(db, clientID)
	if err != nil {
		return nil, err
	}

	resp := &dto.FollowedArtistsResponse{
		ArtistIDs: client.FollowedArtists,
		Artists:   make([]*dto.ProfileResponse, 0, len(client.FollowedArtists)),
	}
	if len(client.FollowedArtists) == 0 {
		return resp, nil
	}

	artists, err := s.userRepo.FindByIDs(db, client.FollowedArtists)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	for i := range artists {
		resp.Artists = append(resp.Artists, buildProfileResponse(&artists[i], false))
	}
	return resp, nil
}

func (s *userService) findUser(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func buildProfileResponse(user *models.User, includePrivate bool) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{
		ID:            user.ID,
		Name:          user.FullName,
		Role:          string(user.Role),
		AvatarURL:     user.ProfileImage,
		StudioName:    user.StudioName,
		City:          user.City,
		Bio:           user.Bio,
		Styles:        user.Styles,
		AverageRating: user.AverageRating,
		RatingCount:   int(user.RatingCount),
		CreatedAt:     user.CreatedAt,
	}
	if includePrivate {
		resp.Email = user.Email
		resp.Phone = user.Phone
	}
	return resp
}
