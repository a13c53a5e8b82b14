package repositories

import (
	"errors"

	"inkspot_backend/internal/models"

	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

// RatingAggregate - вычисленный агрегат рейтинга артиста
type RatingAggregate struct {
	Average float64
	Count   int64
}

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	Save(db *gorm.DB, review *models.Review) error
	Delete(db *gorm.DB, id string) error
	FindByID(db *gorm.DB, id string) (*models.Review, error)
	FindByArtist(db *gorm.DB, artistID string) ([]models.Review, error)
	FindByArtistAndClient(db *gorm.DB, artistID, clientID string) (*models.Review, error)
	// CalculateArtistRating пересчитывает агрегат из строк отзывов;
	// 0/0 когда отзывов нет
	CalculateArtistRating(db *gorm.DB, artistID string) (RatingAggregate, error)
	FindArtistIDsWithReviews(db *gorm.DB) ([]string, error)
}

type reviewRepository struct{}

func NewReviewRepository() ReviewRepository {
	return &reviewRepository{}
}

func (r *reviewRepository) Create(db *gorm.DB, review *models.Review) error {
	return db.Create(review).Error
}

func (r *reviewRepository) Save(db *gorm.DB, review *models.Review) error {
	return db.Save(review).Error
}

func (r *reviewRepository) Delete(db *gorm.DB, id string) error {
	res := db.Delete(&models.Review{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) FindByID(db *gorm.DB, id string) (*models.Review, error) {
	var review models.Review
	err := db.First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByArtist(db *gorm.DB, artistID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Preload("Client").
		Where("artist_id = ?", artistID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) FindByArtistAndClient(db *gorm.DB, artistID, clientID string) (*models.Review, error) {
	var review models.Review
	err := db.Where("artist_id = ? AND client_id = ?", artistID, clientID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) CalculateArtistRating(db *gorm.DB, artistID string) (RatingAggregate, error) {
	var agg struct {
		Average *float64
		Count   int64
	}
	err := db.Model(&models.Review{}).
		Select("AVG(rating) AS average, COUNT(*) AS count").
		Where("artist_id = ?", artistID).
		Scan(&agg).Error
	if err != nil {
		return RatingAggregate{}, err
	}

	result := RatingAggregate{Count: agg.Count}
	if agg.Average != nil {
		result.Average = *agg.Average
	}
	return result, nil
}

func (r *reviewRepository) FindArtistIDsWithReviews(db *gorm.DB) ([]string, error) {
	var ids []string
	err := db.Model(&models.Review{}).
		Distinct("artist_id").
		Pluck("artist_id", &ids).Error
	return ids, err
}
