package repository

import (
	"context"

	"github.com/sirikit/companion-booking/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompanionRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Companion, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Companion, error)
	FindByUserID(ctx context.Context, userID uint) (*models.Companion, error)
	Save(ctx context.Context, tx *gorm.DB, companion *models.Companion) error
	IncrementCounters(ctx context.Context, tx *gorm.DB, id uint) error
	UpdateRating(ctx context.Context, tx *gorm.DB, id uint, average float64, count int64) error
}

type companionRepository struct {
	db *gorm.DB
}

func NewCompanionRepository(db *gorm.DB) CompanionRepository {
	return &companionRepository{db: db}
}

func (r *companionRepository) FindByID(ctx context.Context, id uint) (*models.Companion, error) {
	var companion models.Companion
	if err := r.db.WithContext(ctx).First(&companion, id).Error; err != nil {
		return nil, err
	}
	return &companion, nil
}

// FindByIDForUpdate locks the companion row. All slot-conflict checks and
// counter mutations happen behind this lock.
func (r *companionRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Companion, error) {
	var companion models.Companion
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&companion, id).Error; err != nil {
		return nil, err
	}
	return &companion, nil
}

func (r *companionRepository) FindByUserID(ctx context.Context, userID uint) (*models.Companion, error) {
	var companion models.Companion
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&companion).Error; err != nil {
		return nil, err
	}
	return &companion, nil
}

func (r *companionRepository) Save(ctx context.Context, tx *gorm.DB, companion *models.Companion) error {
	return tx.WithContext(ctx).Save(companion).Error
}

// IncrementCounters bumps total and completed booking counters on check-out.
func (r *companionRepository) IncrementCounters(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).
		Model(&models.Companion{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_bookings":     gorm.Expr("total_bookings + 1"),
			"completed_bookings": gorm.Expr("completed_bookings + 1"),
		}).Error
}

func (r *companionRepository) UpdateRating(ctx context.Context, tx *gorm.DB, id uint, average float64, count int64) error {
	return tx.WithContext(ctx).
		Model(&models.Companion{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating_average": average,
			"rating_count":   count,
		}).Error
}
