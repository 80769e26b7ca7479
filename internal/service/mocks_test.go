package service

import (
	"context"
	"time"

	"github.com/sirikit/companion-booking/internal/models"
	"github.com/sirikit/companion-booking/internal/processor"
	"gorm.io/gorm"
)

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	createFn          func(ctx context.Context, tx *gorm.DB, b *models.Booking) error
	findByIDFn        func(ctx context.Context, id uint) (*models.Booking, error)
	findConflictingFn func(ctx context.Context, tx *gorm.DB, companionID uint, date time.Time, start, end string) (*models.Booking, error)
	findByUserFn      func(ctx context.Context, userID uint, status *models.BookingStatus, page, limit int) ([]models.Booking, int64, error)
	findByCompanionFn func(ctx context.Context, companionID uint, status *models.BookingStatus, page, limit int) ([]models.Booking, int64, error)
	saveFn            func(ctx context.Context, tx *gorm.DB, b *models.Booking) error
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, b)
	}
	return nil
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockBookingRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockBookingRepo) FindConflicting(ctx context.Context, tx *gorm.DB, companionID uint, date time.Time, start, end string) (*models.Booking, error) {
	if m.findConflictingFn != nil {
		return m.findConflictingFn(ctx, tx, companionID, date, start, end)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingRepo) FindByUser(ctx context.Context, userID uint, status *models.BookingStatus, page, limit int) ([]models.Booking, int64, error) {
	return m.findByUserFn(ctx, userID, status, page, limit)
}

func (m *mockBookingRepo) FindByCompanion(ctx context.Context, companionID uint, status *models.BookingStatus, page, limit int) ([]models.Booking, int64, error) {
	return m.findByCompanionFn(ctx, companionID, status, page, limit)
}

func (m *mockBookingRepo) Save(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, tx, b)
	}
	return nil
}

func (m *mockBookingRepo) GetDB() *gorm.DB { return nil }

// --- Mock CompanionRepository ---

type mockCompanionRepo struct {
	findByIDFn     func(ctx context.Context, id uint) (*models.Companion, error)
	findByUserIDFn func(ctx context.Context, userID uint) (*models.Companion, error)
}

func (m *mockCompanionRepo) FindByID(ctx context.Context, id uint) (*models.Companion, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockCompanionRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Companion, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockCompanionRepo) FindByUserID(ctx context.Context, userID uint) (*models.Companion, error) {
	if m.findByUserIDFn != nil {
		return m.findByUserIDFn(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanionRepo) Save(ctx context.Context, tx *gorm.DB, c *models.Companion) error {
	return nil
}

func (m *mockCompanionRepo) IncrementCounters(ctx context.Context, tx *gorm.DB, id uint) error {
	return nil
}

func (m *mockCompanionRepo) UpdateRating(ctx context.Context, tx *gorm.DB, id uint, average float64, count int64) error {
	return nil
}

// --- Mock UserRepository ---

type mockUserRepo struct {
	findByIDFn func(ctx context.Context, id uint) (*models.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockUserRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockUserRepo) UpdateWalletBalance(ctx context.Context, tx *gorm.DB, id uint, balance float64) error {
	return nil
}

// --- Mock PaymentRepository ---

type mockPaymentRepo struct {
	created    []*models.Payment
	findByUser func(ctx context.Context, userID uint, page, limit int) ([]models.Payment, int64, error)
}

func (m *mockPaymentRepo) Create(ctx context.Context, tx *gorm.DB, p *models.Payment) error {
	m.created = append(m.created, p)
	return nil
}

func (m *mockPaymentRepo) FindByUser(ctx context.Context, userID uint, page, limit int) ([]models.Payment, int64, error) {
	return m.findByUser(ctx, userID, page, limit)
}

// --- Stub Processor ---

type stubProcessor struct {
	status processor.Status
	err    error
	intent *processor.Intent
}

func (s *stubProcessor) CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]interface{}) (*processor.Intent, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.intent != nil {
		return s.intent, nil
	}
	return &processor.Intent{Reference: "chrg_test", Amount: amount, Currency: currency}, nil
}

func (s *stubProcessor) RetrieveStatus(ctx context.Context, reference string) (processor.Status, error) {
	return s.status, s.err
}
