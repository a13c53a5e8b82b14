package repositories

import (
	"errors"

	"inkspot_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailAlreadyTaken = errors.New("email already taken")
)

// ArtistSearchCriteria - фильтры каталога артистов
type ArtistSearchCriteria struct {
	City  string
	Style string
	Query string // по имени или названию студии
	Page  int
	Size  int
}

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByIDs(db *gorm.DB, ids []string) ([]models.User, error)
	Update(db *gorm.DB, user *models.User) error
	FindArtists(db *gorm.DB, criteria ArtistSearchCriteria) ([]models.User, int64, error)
	UpdateRatingAggregate(db *gorm.DB, artistID string, average float64, count int64) error
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	var existing models.User
	err := db.Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return ErrEmailAlreadyTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(user).Error
}

func (r *userRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDs(db *gorm.DB, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []models.User
	err := db.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *userRepository) Update(db *gorm.DB, user *models.User) error {
	return db.Save(user).Error
}

func (r *userRepository) FindArtists(db *gorm.DB, criteria ArtistSearchCriteria) ([]models.User, int64, error) {
	query := db.Model(&models.User{}).Where("role = ?", models.UserRoleArtist)

	if criteria.City != "" {
		query = query.Where("city = ?", criteria.City)
	}
	if criteria.Style != "" {
		query = jsonArrayContains(query, "styles", criteria.Style)
	}
	if criteria.Query != "" {
		like := "%" + criteria.Query + "%"
		query = query.Where("full_name LIKE ? OR studio_name LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	size := criteria.Size
	if size < 1 || size > 100 {
		size = 20
	}

	var artists []models.User
	err := query.
		Order("average_rating DESC, rating_count DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&artists).Error
	return artists, total, err
}

func (r *userRepository) UpdateRatingAggregate(db *gorm.DB, artistID string, average float64, count int64) error {
	return db.Model(&models.User{}).
		Where("id = ? AND role = ?", artistID, models.UserRoleArtist).
		Updates(map[string]interface{}{
			"average_rating": average,
			"rating_count":   count,
		}).Error
}
