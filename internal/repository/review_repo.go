package repository

import (
	"context"

	"github.com/sirikit/companion-booking/internal/models"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, tx *gorm.DB, review *models.Review) error
	FindByBookingID(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Review, error)
	FindByCompanion(ctx context.Context, companionID uint, page, limit int) ([]models.Review, int64, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Review, error)
	AggregateForCompanion(ctx context.Context, tx *gorm.DB, companionID uint) (average float64, count int64, err error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, tx *gorm.DB, review *models.Review) error {
	return tx.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) FindByBookingID(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Review, error) {
	var review models.Review
	if err := tx.WithContext(ctx).Where("booking_id = ?", bookingID).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByCompanion(ctx context.Context, companionID uint, page, limit int) ([]models.Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Review{}).Where("companion_id = ?", companionID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *reviewRepository) FindByUser(ctx context.Context, userID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// AggregateForCompanion recomputes the mean rating from the full review set.
// Full recompute per write avoids running-average drift; see the review
// service, which calls this inside the insert transaction.
func (r *reviewRepository) AggregateForCompanion(ctx context.Context, tx *gorm.DB, companionID uint) (float64, int64, error) {
	var agg struct {
		Average float64
		Count   int64
	}
	err := tx.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("companion_id = ?", companionID).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, err
	}
	return agg.Average, agg.Count, nil
}
