package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirikit/companion-booking/internal/auth"
	"github.com/sirikit/companion-booking/internal/metrics"
	"github.com/sirikit/companion-booking/internal/models"
	"github.com/sirikit/companion-booking/internal/repository"
	"github.com/sirikit/companion-booking/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound      = errors.New("booking not found")
	ErrCompanionUnavailable = errors.New("companion not found or not available")
	ErrInvalidDuration      = errors.New("duration must be at least 0.5 hours")
	ErrInvalidTimeRange     = errors.New("end time must be after start time")
	ErrSlotTaken            = errors.New("time slot already booked")
	ErrForbidden            = errors.New("access denied")
	ErrIllegalTransition    = errors.New("illegal booking status transition")
)

// CreateBookingInput is the validated request the handler hands down.
type CreateBookingInput struct {
	CompanionID     uint
	Activity        string
	Date            time.Time
	StartTime       string // HH:MM
	EndTime         string // HH:MM
	Duration        float64
	LocationAddress string
	LocationCity    string
	LocationLat     *float64
	LocationLng     *float64
	SpecialRequests string
}

type BookingService interface {
	CreateBooking(ctx context.Context, actor auth.Identity, in CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, actor auth.Identity, id uint) (*models.Booking, error)
	ListUserBookings(ctx context.Context, actor auth.Identity, status *models.BookingStatus, page, limit int) ([]models.Booking, int64, error)
	ListCompanionBookings(ctx context.Context, actor auth.Identity, status *models.BookingStatus, page, limit int) ([]models.Booking, int64, error)
	UpdateStatus(ctx context.Context, actor auth.Identity, id uint, to models.BookingStatus, reason string) (*models.Booking, error)
	CheckIn(ctx context.Context, actor auth.Identity, id uint, lat, lng *float64) (*models.Booking, error)
	CheckOut(ctx context.Context, actor auth.Identity, id uint, lat, lng *float64) (*models.Booking, error)
}

type bookingService struct {
	bookingRepo   repository.BookingRepository
	companionRepo repository.CompanionRepository
	publisher     *rabbitmq.Publisher
}

func NewBookingService(bookingRepo repository.BookingRepository, companionRepo repository.CompanionRepository, publisher *rabbitmq.Publisher) BookingService {
	return &bookingService{
		bookingRepo:   bookingRepo,
		companionRepo: companionRepo,
		publisher:     publisher,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, actor auth.Identity, in CreateBookingInput) (*models.Booking, error) {
	if in.Duration < 0.5 {
		return nil, ErrInvalidDuration
	}
	if in.EndTime <= in.StartTime {
		// windows wrapping past midnight are not supported
		return nil, ErrInvalidTimeRange
	}

	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the companion row — serializes conflict check + insert
		// for this companion
		companion, err := s.companionRepo.FindByIDForUpdate(ctx, tx, in.CompanionID)
		if err != nil {
			return ErrCompanionUnavailable
		}
		if !companion.IsAvailable {
			return ErrCompanionUnavailable
		}

		// 2. Slot conflict: any overlap with an active booking on that date
		_, err = s.bookingRepo.FindConflicting(ctx, tx, in.CompanionID, in.Date, in.StartTime, in.EndTime)
		if err == nil {
			return ErrSlotTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 3. Pricing snapshot: activity override rate or flat hourly rate
		rate := companion.RateFor(in.Activity)
		booking := &models.Booking{
			UserID:          actor.UserID,
			CompanionID:     in.CompanionID,
			Activity:        in.Activity,
			Date:            in.Date,
			StartTime:       in.StartTime,
			EndTime:         in.EndTime,
			Duration:        in.Duration,
			Status:          models.StatusPending,
			LocationAddress: in.LocationAddress,
			LocationCity:    in.LocationCity,
			LocationLat:     in.LocationLat,
			LocationLng:     in.LocationLng,
			PriceRate:       rate,
			PriceTotal:      rate * in.Duration,
			PriceCurrency:   companion.Currency,
			PaymentStatus:   models.PaymentPending,
			SpecialRequests: in.SpecialRequests,
		}

		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BookingsCreated.Inc()
	s.publish("booking.created", result)
	return result, nil
}

func (s *bookingService) GetBooking(ctx context.Context, actor auth.Identity, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if !actor.CanView(booking, s.ownCompanion(ctx, actor)) {
		return nil, ErrForbidden
	}
	return booking, nil
}

func (s *bookingService) ListUserBookings(ctx context.Context, actor auth.Identity, status *models.BookingStatus, page, limit int) ([]models.Booking, int64, error) {
	return s.bookingRepo.FindByUser(ctx, actor.UserID, status, page, limit)
}

func (s *bookingService) ListCompanionBookings(ctx context.Context, actor auth.Identity, status *models.BookingStatus, page, limit int) ([]models.Booking, int64, error) {
	companion, err := s.companionRepo.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, 0, ErrCompanionUnavailable
	}
	return s.bookingRepo.FindByCompanion(ctx, companion.ID, status, page, limit)
}

// UpdateStatus drives companion accept/reject and either party's cancel.
// Confirmation through payment settlement goes through the settlement
// service instead.
func (s *bookingService) UpdateStatus(ctx context.Context, actor auth.Identity, id uint, to models.BookingStatus, reason string) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return ErrBookingNotFound
		}

		companion := s.ownCompanion(ctx, actor)

		switch to {
		case models.StatusConfirmed, models.StatusRejected:
			// companion acceptance / decline only
			if !actor.IsCompanionOwner(booking, companion) {
				return ErrForbidden
			}
		case models.StatusCancelled:
			if !actor.CanCancel(booking, companion) {
				return ErrForbidden
			}
		default:
			return ErrIllegalTransition
		}

		if !models.CanTransition(booking.Status, to) {
			return ErrIllegalTransition
		}

		booking.Status = to
		if to == models.StatusCancelled {
			now := time.Now()
			booking.CancelReason = reason
			booking.CancelledBy = actor.CancelActor(booking, companion)
			booking.CancelledAt = &now
		}

		if err := s.bookingRepo.Save(ctx, tx, booking); err != nil {
			return err
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("booking."+string(to), result)
	return result, nil
}

func (s *bookingService) CheckIn(ctx context.Context, actor auth.Identity, id uint, lat, lng *float64) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return ErrBookingNotFound
		}
		if !actor.IsRequester(booking) && !actor.IsCompanionOwner(booking, s.ownCompanion(ctx, actor)) {
			return ErrForbidden
		}
		if booking.Status != models.StatusConfirmed {
			return ErrIllegalTransition
		}

		now := time.Now()
		booking.CheckInAt = &now
		booking.CheckInLat = lat
		booking.CheckInLng = lng

		if err := s.bookingRepo.Save(ctx, tx, booking); err != nil {
			return err
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CheckOut completes a confirmed booking and bumps the companion's
// total/completed counters. The status guard makes repeat calls fail with
// ErrIllegalTransition, so the increment happens at most once per booking.
func (s *bookingService) CheckOut(ctx context.Context, actor auth.Identity, id uint, lat, lng *float64) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return ErrBookingNotFound
		}
		if !actor.IsRequester(booking) && !actor.IsCompanionOwner(booking, s.ownCompanion(ctx, actor)) {
			return ErrForbidden
		}
		if !models.CanTransition(booking.Status, models.StatusCompleted) {
			return ErrIllegalTransition
		}

		now := time.Now()
		booking.CheckOutAt = &now
		booking.CheckOutLat = lat
		booking.CheckOutLng = lng
		booking.Status = models.StatusCompleted

		if err := s.bookingRepo.Save(ctx, tx, booking); err != nil {
			return err
		}

		if _, err := s.companionRepo.FindByIDForUpdate(ctx, tx, booking.CompanionID); err != nil {
			return err
		}
		if err := s.companionRepo.IncrementCounters(ctx, tx, booking.CompanionID); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BookingsCompleted.Inc()
	s.publish("booking.completed", result)
	return result, nil
}

// ownCompanion resolves the actor's companion profile, nil when they have
// none. Used purely for capability checks.
func (s *bookingService) ownCompanion(ctx context.Context, actor auth.Identity) *models.Companion {
	companion, err := s.companionRepo.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil
	}
	return companion
}

func (s *bookingService) publish(routingKey string, booking *models.Booking) {
	if s.publisher != nil {
		_ = s.publisher.Publish(routingKey, booking)
	}
}
