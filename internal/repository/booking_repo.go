package repository

import (
	"context"
	"time"

	"github.com/sirikit/companion-booking/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	FindConflicting(ctx context.Context, tx *gorm.DB, companionID uint, date time.Time, start, end string) (*models.Booking, error)
	FindByUser(ctx context.Context, userID uint, status *models.BookingStatus, page, limit int) ([]models.Booking, int64, error)
	FindByCompanion(ctx context.Context, companionID uint, status *models.BookingStatus, page, limit int) ([]models.Booking, int64, error)
	Save(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUpdate acquires a row-level lock on the booking within the
// given transaction.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindConflicting returns an active (pending or confirmed) booking for the
// companion on the given date whose window collides with [start, end).
// Zero-padded HH:MM strings compare correctly as text. Must run under the
// companion row lock so check-and-insert is serialized per companion.
func (r *bookingRepository) FindConflicting(ctx context.Context, tx *gorm.DB, companionID uint, date time.Time, start, end string) (*models.Booking, error) {
	var booking models.Booking
	err := tx.WithContext(ctx).
		Where("companion_id = ? AND date = ? AND status IN ?",
			companionID, date, []models.BookingStatus{models.StatusPending, models.StatusConfirmed}).
		Where("(start_time <= ? AND end_time > ?) OR (start_time <= ? AND end_time >= ?) OR (start_time >= ? AND end_time <= ?)",
			start, start, end, end, start, end).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByUser(ctx context.Context, userID uint, status *models.BookingStatus, page, limit int) ([]models.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Booking{}).Where("user_id = ?", userID)
	return r.paginate(q, status, page, limit)
}

func (r *bookingRepository) FindByCompanion(ctx context.Context, companionID uint, status *models.BookingStatus, page, limit int) ([]models.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Booking{}).Where("companion_id = ?", companionID)
	return r.paginate(q, status, page, limit)
}

func (r *bookingRepository) paginate(q *gorm.DB, status *models.BookingStatus, page, limit int) ([]models.Booking, int64, error) {
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []models.Booking
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *bookingRepository) Save(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Save(booking).Error
}
