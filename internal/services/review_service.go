package services

import (
	"errors"

	"gorm.io/gorm"

	"inkspot_backend/internal/logger"
	"inkspot_backend/internal/models"
	"inkspot_backend/internal/repositories"
	"inkspot_backend/internal/services/dto"
	"inkspot_backend/pkg/apperrors"
)

type ReviewService interface {
	// SubmitReview создает отзыв или обновляет существующий отзыв
	// этой пары клиент-артист. Запись отзыва и пересчет агрегата
	// рейтинга идут в одной транзакции.
	SubmitReview(db *gorm.DB, clientID, artistID string, req *dto.SubmitReviewRequest) (*dto.ReviewResponse, error)
	DeleteReview(db *gorm.DB, clientID, reviewID string) error
	GetArtistReviews(db *gorm.DB, artistID string) (*dto.ReviewListResponse, error)
	GetMyReview(db *gorm.DB, clientID, artistID string) (*dto.ReviewResponse, error)

	// RecalculateArtistRating пересчитывает агрегат из строк отзывов.
	// Используется фоновым воркером для залечивания расхождений.
	RecalculateArtistRating(db *gorm.DB, artistID string) error
	ArtistIDsWithReviews(db *gorm.DB) ([]string, error)
}

type reviewService struct {
	reviewRepo repositories.ReviewRepository
	userRepo   repositories.UserRepository
}

func NewReviewService(reviewRepo repositories.ReviewRepository, userRepo repositories.UserRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
	}
}

func (s *reviewService) SubmitReview(db *gorm.DB, clientID, artistID string, req *dto.SubmitReviewRequest) (*dto.ReviewResponse, error) {
	if clientID == artistID {
		return nil, apperrors.ErrInvalidOperation("review", "cannot review yourself")
	}

	artist, err := s.userRepo.FindByID(db, artistID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if artist.Role != models.UserRoleArtist {
		return nil, apperrors.ErrInvalidOperation("review", "reviews can only be left for artists")
	}

	var review *models.Review

	err = db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.reviewRepo.FindByArtistAndClient(tx, artistID, clientID)
		switch {
		case err == nil:
			// Повторный отзыв той же пары - обновление, не дубль
			existing.Rating = req.Rating
			existing.Comment = req.Comment
			if err := s.reviewRepo.Save(tx, existing); err != nil {
				return err
			}
			review = existing
		case errors.Is(err, repositories.ErrReviewNotFound):
			review = &models.Review{
				ArtistID: artistID,
				ClientID: clientID,
				Rating:   req.Rating,
				Comment:  req.Comment,
			}
			if err := s.reviewRepo.Create(tx, review); err != nil {
				return err
			}
		default:
			return err
		}

		return s.updateAggregate(tx, artistID)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("review submitted", "artist_id", artistID, "client_id", clientID, "rating", req.Rating)
	return buildReviewResponse(review), nil
}

func (s *reviewService) DeleteReview(db *gorm.DB, clientID, reviewID string) error {
	review, err := s.reviewRepo.FindByID(db, reviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if review.ClientID != clientID {
		return apperrors.NewForbiddenError("only the author can delete a review")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.Delete(tx, review.ID); err != nil {
			return err
		}
		return s.updateAggregate(tx, review.ArtistID)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *reviewService) GetArtistReviews(db *gorm.DB, artistID string) (*dto.ReviewListResponse, error) {
	artist, err := s.userRepo.FindByID(db, artistID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	reviews, err := s.reviewRepo.FindByArtist(db, artistID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ReviewListResponse{
		Reviews:       make([]*dto.ReviewResponse, 0, len(reviews)),
		AverageRating: artist.AverageRating,
		RatingCount:   int(artist.RatingCount),
	}
	for i := range reviews {
		resp.Reviews = append(resp.Reviews, buildReviewResponse(&reviews[i]))
	}
	return resp, nil
}

// GetMyReview возвращает отзыв текущего клиента об артисте.
// Фронт использует его для предзаполнения формы отзыва.
func (s *reviewService) GetMyReview(db *gorm.DB, clientID, artistID string) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindByArtistAndClient(db, artistID, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return buildReviewResponse(review), nil
}

func (s *reviewService) RecalculateArtistRating(db *gorm.DB, artistID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return s.updateAggregate(tx, artistID)
	})
}

func (s *reviewService) ArtistIDsWithReviews(db *gorm.DB) ([]string, error) {
	return s.reviewRepo.FindArtistIDsWithReviews(db)
}

func (s *reviewService) updateAggregate(tx *gorm.DB, artistID string) error {
	agg, err := s.reviewRepo.CalculateArtistRating(tx, artistID)
	if err != nil {
		return err
	}
	return s.userRepo.UpdateRatingAggregate(tx, artistID, agg.Average, agg.Count)
}

func buildReviewResponse(review *models.Review) *dto.ReviewResponse {
	resp := &dto.ReviewResponse{
		ID:        review.ID,
		ArtistID:  review.ArtistID,
		ClientID:  review.ClientID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
	if review.Client != nil {
		resp.ClientName = review.Client.FullName
	}
	return resp
}
