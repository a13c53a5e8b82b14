package repositories

import (
	"errors"

	"inkspot_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("post not found")

type PostRepository interface {
	Create(db *gorm.DB, post *models.Post) error
	FindByID(db *gorm.DB, id string) (*models.Post, error)
	Save(db *gorm.DB, post *models.Post) error
	Delete(db *gorm.DB, id string) error
	// FindAll - лента, новые первыми
	FindAll(db *gorm.DB, page, size int) ([]models.Post, int64, error)
	FindByArtist(db *gorm.DB, artistID string) ([]models.Post, error)
	FindByArtists(db *gorm.DB, artistIDs []string) ([]models.Post, error)
}

type postRepository struct{}

func NewPostRepository() PostRepository {
	return &postRepository{}
}

func (r *postRepository) Create(db *gorm.DB, post *models.Post) error {
	return db.Create(post).Error
}

func (r *postRepository) FindByID(db *gorm.DB, id string) (*models.Post, error) {
	var post models.Post
	err := db.First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Save(db *gorm.DB, post *models.Post) error {
	return db.Save(post).Error
}

func (r *postRepository) Delete(db *gorm.DB, id string) error {
	res := db.Delete(&models.Post{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *postRepository) FindAll(db *gorm.DB, page, size int) ([]models.Post, int64, error) {
	var total int64
	if err := db.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	var posts []models.Post
	err := db.Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&posts).Error
	return posts, total, err
}

func (r *postRepository) FindByArtist(db *gorm.DB, artistID string) ([]models.Post, error) {
	var posts []models.Post
	err := db.Where("artist_id = ?", artistID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) FindByArtists(db *gorm.DB, artistIDs []string) ([]models.Post, error) {
	if len(artistIDs) == 0 {
		return nil, nil
	}
	var posts []models.Post
	err := db.Where("artist_id IN ?", artistIDs).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}
