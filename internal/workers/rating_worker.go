package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"inkspot_backend/internal/logger"
	"inkspot_backend/internal/services"
)

// RatingWorker периодически пересчитывает агрегаты рейтинга артистов
// из строк отзывов. Агрегат поддерживается транзакционно при каждой
// записи отзыва; воркер залечивает дрейф после ручных правок БД
// или сбоев.
type RatingWorker struct {
	db            *gorm.DB
	reviewService services.ReviewService
	interval      time.Duration
}

func NewRatingWorker(db *gorm.DB, reviewService services.ReviewService, interval time.Duration) *RatingWorker {
	return &RatingWorker{
		db:            db,
		reviewService: reviewService,
		interval:      interval,
	}
}

func (w *RatingWorker) Start(ctx context.Context) {
	go w.reconcileLoop(ctx)
}

func (w *RatingWorker) reconcileLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("rating worker stopped")
			return
		case <-ticker.C:
			w.reconcileAll()
		}
	}
}

func (w *RatingWorker) reconcileAll() {
	artistIDs, err := w.reviewService.ArtistIDsWithReviews(w.db)
	if err != nil {
		logger.WorkerLog("rating", "list artists", err)
		return
	}

	for _, artistID := range artistIDs {
		if err := w.reviewService.RecalculateArtistRating(w.db, artistID); err != nil {
			logger.WorkerLog("rating", "reconcile "+artistID, err)
		}
	}

	if len(artistIDs) > 0 {
		logger.Debug("rating aggregates reconciled", "artists", len(artistIDs))
	}
}
