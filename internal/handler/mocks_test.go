package handler

import (
	"context"

	"github.com/sirikit/companion-booking/internal/auth"
	"github.com/sirikit/companion-booking/internal/models"
	"github.com/sirikit/companion-booking/internal/processor"
	"github.com/sirikit/companion-booking/internal/service"
)

// --- Mock BookingService ---

type mockBookingService struct {
	createFn        func(ctx context.Context, actor auth.Identity, in service.CreateBookingInput) (*models.Booking, error)
	getFn           func(ctx context.Context, actor auth.Identity, id uint) (*models.Booking, error)
	listUserFn      func(ctx context.Context, actor auth.Identity, status *models.BookingStatus, page, limit int) ([]models.Booking, int64, error)
	listCompanionFn func(ctx context.Context, actor auth.Identity, status *models.BookingStatus, page, limit int) ([]models.Booking, int64, error)
	updateStatusFn  func(ctx context.Context, actor auth.Identity, id uint, to models.BookingStatus, reason string) (*models.Booking, error)
	checkInFn       func(ctx context.Context, actor auth.Identity, id uint, lat, lng *float64) (*models.Booking, error)
	checkOutFn      func(ctx context.Context, actor auth.Identity, id uint, lat, lng *float64) (*models.Booking, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, actor auth.Identity, in service.CreateBookingInput) (*models.Booking, error) {
	return m.createFn(ctx, actor, in)
}
func (m *mockBookingService) GetBooking(ctx context.Context, actor auth.Identity, id uint) (*models.Booking, error) {
	return m.getFn(ctx, actor, id)
}
func (m *mockBookingService) ListUserBookings(ctx context.Context, actor auth.Identity, status *models.BookingStatus, page, limit int) ([]models.Booking, int64, error) {
	return m.listUserFn(ctx, actor, status, page, limit)
}
func (m *mockBookingService) ListCompanionBookings(ctx context.Context, actor auth.Identity, status *models.BookingStatus, page, limit int) ([]models.Booking, int64, error) {
	return m.listCompanionFn(ctx, actor, status, page, limit)
}
func (m *mockBookingService) UpdateStatus(ctx context.Context, actor auth.Identity, id uint, to models.BookingStatus, reason string) (*models.Booking, error) {
	return m.updateStatusFn(ctx, actor, id, to, reason)
}
func (m *mockBookingService) CheckIn(ctx context.Context, actor auth.Identity, id uint, lat, lng *float64) (*models.Booking, error) {
	return m.checkInFn(ctx, actor, id, lat, lng)
}
func (m *mockBookingService) CheckOut(ctx context.Context, actor auth.Identity, id uint, lat, lng *float64) (*models.Booking, error) {
	return m.checkOutFn(ctx, actor, id, lat, lng)
}

// --- Mock PaymentService ---

type mockPaymentService struct {
	createIntentFn func(ctx context.Context, actor auth.Identity, bookingID uint) (*processor.Intent, error)
	payWalletFn    func(ctx context.Context, actor auth.Identity, bookingID uint) (*models.Payment, error)
	confirmFn      func(ctx context.Context, actor auth.Identity, bookingID uint, reference string) (*models.Payment, error)
	topupFn        func(ctx context.Context, actor auth.Identity, amount float64, reference string) (*models.Payment, *models.User, error)
	getWalletFn    func(ctx context.Context, actor auth.Identity) (*models.User, error)
	historyFn      func(ctx context.Context, actor auth.Identity, page, limit int) ([]models.Payment, int64, error)
}

func (m *mockPaymentService) CreateIntent(ctx context.Context, actor auth.Identity, bookingID uint) (*processor.Intent, error) {
	return m.createIntentFn(ctx, actor, bookingID)
}
func (m *mockPaymentService) PayWithWallet(ctx context.Context, actor auth.Identity, bookingID uint) (*models.Payment, error) {
	return m.payWalletFn(ctx, actor, bookingID)
}
func (m *mockPaymentService) ConfirmPayment(ctx context.Context, actor auth.Identity, bookingID uint, reference string) (*models.Payment, error) {
	return m.confirmFn(ctx, actor, bookingID, reference)
}
func (m *mockPaymentService) TopUpWallet(ctx context.Context, actor auth.Identity, amount float64, reference string) (*models.Payment, *models.User, error) {
	return m.topupFn(ctx, actor, amount, reference)
}
func (m *mockPaymentService) GetWallet(ctx context.Context, actor auth.Identity) (*models.User, error) {
	return m.getWalletFn(ctx, actor)
}
func (m *mockPaymentService) History(ctx context.Context, actor auth.Identity, page, limit int) ([]models.Payment, int64, error) {
	return m.historyFn(ctx, actor, page, limit)
}

// --- Mock ReviewService ---

type mockReviewService struct {
	createFn          func(ctx context.Context, actor auth.Identity, in service.CreateReviewInput) (*models.Review, error)
	listByCompanionFn func(ctx context.Context, companionID uint, page, limit int) ([]models.Review, int64, error)
	listByUserFn      func(ctx context.Context, actor auth.Identity) ([]models.Review, error)
}

func (m *mockReviewService) CreateReview(ctx context.Context, actor auth.Identity, in service.CreateReviewInput) (*models.Review, error) {
	return m.createFn(ctx, actor, in)
}
func (m *mockReviewService) ListByCompanion(ctx context.Context, companionID uint, page, limit int) ([]models.Review, int64, error) {
	return m.listByCompanionFn(ctx, companionID, page, limit)
}
func (m *mockReviewService) ListByUser(ctx context.Context, actor auth.Identity) ([]models.Review, error) {
	return m.listByUserFn(ctx, actor)
}
