package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirikit/companion-booking/internal/auth"
	"github.com/sirikit/companion-booking/internal/metrics"
	"github.com/sirikit/companion-booking/internal/models"
	"github.com/sirikit/companion-booking/internal/processor"
	"github.com/sirikit/companion-booking/internal/repository"
	"github.com/sirikit/companion-booking/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	ErrPaymentFailed     = errors.New("payment was not successful")
	ErrAlreadyPaid       = errors.New("booking is already paid")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

// PaymentService is the settlement engine: it moves funds and couples the
// outcome to the booking's payment sub-state. A failed settlement always
// leaves a failed Payment audit row and never touches balances or booking
// status.
type PaymentService interface {
	CreateIntent(ctx context.Context, actor auth.Identity, bookingID uint) (*processor.Intent, error)
	PayWithWallet(ctx context.Context, actor auth.Identity, bookingID uint) (*models.Payment, error)
	ConfirmPayment(ctx context.Context, actor auth.Identity, bookingID uint, reference string) (*models.Payment, error)
	TopUpWallet(ctx context.Context, actor auth.Identity, amount float64, reference string) (*models.Payment, *models.User, error)
	GetWallet(ctx context.Context, actor auth.Identity) (*models.User, error)
	History(ctx context.Context, actor auth.Identity, page, limit int) ([]models.Payment, int64, error)
}

type paymentService struct {
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
	paymentRepo repository.PaymentRepository
	processor   processor.Processor
	publisher   *rabbitmq.Publisher
}

func NewPaymentService(bookingRepo repository.BookingRepository, userRepo repository.UserRepository, paymentRepo repository.PaymentRepository, proc processor.Processor, publisher *rabbitmq.Publisher) PaymentService {
	return &paymentService{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		processor:   proc,
		publisher:   publisher,
	}
}

func (s *paymentService) CreateIntent(ctx context.Context, actor auth.Identity, bookingID uint) (*processor.Intent, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if !actor.IsRequester(booking) {
		return nil, ErrForbidden
	}

	return s.processor.CreateIntent(ctx, booking.PriceTotal, booking.PriceCurrency, map[string]interface{}{
		"booking_id": booking.ID,
		"user_id":    actor.UserID,
	})
}

// PayWithWallet settles a booking from the payer's stored balance. The
// sufficiency check and debit run behind a FOR UPDATE lock on the user row,
// so two concurrent payments can never both pass against one balance.
func (s *paymentService) PayWithWallet(ctx context.Context, actor auth.Identity, bookingID uint) (*models.Payment, error) {
	start := time.Now()
	var result *models.Payment
	var total float64
	currency := "USD"

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		total, currency = booking.PriceTotal, booking.PriceCurrency
		if !actor.IsRequester(booking) {
			return ErrForbidden
		}
		if booking.PaymentStatus == models.PaymentCompleted {
			return ErrAlreadyPaid
		}
		if !models.CanTransition(booking.Status, models.StatusConfirmed) {
			return ErrIllegalTransition
		}

		user, err := s.userRepo.FindByIDForUpdate(ctx, tx, actor.UserID)
		if err != nil {
			return ErrUserNotFound
		}
		if user.WalletBalance < booking.PriceTotal {
			return ErrInsufficientFunds
		}

		if err := s.userRepo.UpdateWalletBalance(ctx, tx, user.ID, user.WalletBalance-booking.PriceTotal); err != nil {
			return err
		}

		payment := &models.Payment{
			UserID:        actor.UserID,
			BookingID:     &booking.ID,
			Type:          models.PaymentTypeBooking,
			Amount:        booking.PriceTotal,
			Currency:      booking.PriceCurrency,
			Method:        models.MethodWallet,
			Status:        models.PaymentCompleted,
			TransactionID: walletTransactionID(),
		}
		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return err
		}

		now := time.Now()
		booking.PaymentMethod = models.MethodWallet
		booking.PaymentStatus = models.PaymentCompleted
		booking.PaymentTransactionID = payment.TransactionID
		booking.PaidAt = &now
		booking.Status = models.StatusConfirmed
		if err := s.bookingRepo.Save(ctx, tx, booking); err != nil {
			return err
		}

		result = payment
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			// audit row outside the aborted transaction; the balance and
			// booking stay untouched
			s.auditFailure(ctx, actor.UserID, &bookingID, models.PaymentTypeBooking, models.MethodWallet, total, currency, "")
		}
		if walletSettlementFailed(err) {
			metrics.PaymentsSettled.WithLabelValues(string(models.MethodWallet), "failed").Inc()
		}
		return nil, err
	}

	metrics.PaymentsSettled.WithLabelValues(string(models.MethodWallet), "completed").Inc()
	metrics.SettlementDuration.Observe(time.Since(start).Seconds())
	s.publish("payment.completed", result)
	return result, nil
}

// ConfirmPayment settles a booking against an externally completed charge.
// The gateway is consulted once; anything but a succeeded status (including
// a timed-out call) is a failed settlement.
func (s *paymentService) ConfirmPayment(ctx context.Context, actor auth.Identity, bookingID uint, reference string) (*models.Payment, error) {
	start := time.Now()

	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if !actor.IsRequester(booking) {
		return nil, ErrForbidden
	}
	if booking.PaymentStatus == models.PaymentCompleted {
		return nil, ErrAlreadyPaid
	}

	status, procErr := s.processor.RetrieveStatus(ctx, reference)
	if procErr != nil || status != processor.StatusSucceeded {
		s.auditFailure(ctx, actor.UserID, &bookingID, models.PaymentTypeBooking, models.MethodProcessor, booking.PriceTotal, booking.PriceCurrency, reference)
		metrics.PaymentsSettled.WithLabelValues(string(models.MethodProcessor), "failed").Inc()
		return nil, ErrPaymentFailed
	}

	var result *models.Payment
	err = s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if booking.PaymentStatus == models.PaymentCompleted {
			return ErrAlreadyPaid
		}
		if !models.CanTransition(booking.Status, models.StatusConfirmed) {
			return ErrIllegalTransition
		}

		payment := &models.Payment{
			UserID:        actor.UserID,
			BookingID:     &booking.ID,
			Type:          models.PaymentTypeBooking,
			Amount:        booking.PriceTotal,
			Currency:      booking.PriceCurrency,
			Method:        models.MethodProcessor,
			Status:        models.PaymentCompleted,
			TransactionID: reference,
			ChargeRef:     reference,
		}
		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return err
		}

		now := time.Now()
		booking.PaymentMethod = models.MethodProcessor
		booking.PaymentStatus = models.PaymentCompleted
		booking.PaymentTransactionID = reference
		booking.PaidAt = &now
		booking.Status = models.StatusConfirmed
		if err := s.bookingRepo.Save(ctx, tx, booking); err != nil {
			return err
		}

		result = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsSettled.WithLabelValues(string(models.MethodProcessor), "completed").Inc()
	metrics.SettlementDuration.Observe(time.Since(start).Seconds())
	s.publish("payment.completed", result)
	return result, nil
}

// TopUpWallet credits the caller's balance. With a reference, the charge is
// verified with the gateway first; without one the top-up is trusted (used
// for admin adjustments and testing).
func (s *paymentService) TopUpWallet(ctx context.Context, actor auth.Identity, amount float64, reference string) (*models.Payment, *models.User, error) {
	if amount <= 0 {
		return nil, nil, ErrInvalidAmount
	}

	payer, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, nil, ErrUserNotFound
	}

	method := models.MethodCard
	if reference != "" {
		status, err := s.processor.RetrieveStatus(ctx, reference)
		if err != nil || status != processor.StatusSucceeded {
			s.auditFailure(ctx, actor.UserID, nil, models.PaymentTypeTopup, method, amount, payer.WalletCurrency, reference)
			metrics.PaymentsSettled.WithLabelValues(string(method), "failed").Inc()
			return nil, nil, ErrPaymentFailed
		}
	}

	var payment *models.Payment
	var user *models.User

	err = s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := s.userRepo.FindByIDForUpdate(ctx, tx, actor.UserID)
		if err != nil {
			return ErrUserNotFound
		}

		if err := s.userRepo.UpdateWalletBalance(ctx, tx, u.ID, u.WalletBalance+amount); err != nil {
			return err
		}
		u.WalletBalance += amount

		p := &models.Payment{
			UserID:        actor.UserID,
			Type:          models.PaymentTypeTopup,
			Amount:        amount,
			Currency:      u.WalletCurrency,
			Method:        method,
			Status:        models.PaymentCompleted,
			TransactionID: topupTransactionID(reference),
			ChargeRef:     reference,
		}
		if err := s.paymentRepo.Create(ctx, tx, p); err != nil {
			return err
		}

		payment = p
		user = u
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	metrics.PaymentsSettled.WithLabelValues(string(method), "completed").Inc()
	s.publish("wallet.topup", payment)
	return payment, user, nil
}

func (s *paymentService) GetWallet(ctx context.Context, actor auth.Identity) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *paymentService) History(ctx context.Context, actor auth.Identity, page, limit int) ([]models.Payment, int64, error) {
	return s.paymentRepo.FindByUser(ctx, actor.UserID, page, limit)
}

// auditFailure writes the failed Payment row that every settlement failure
// must leave behind. Best effort: an audit write failure never masks the
// settlement error.
func (s *paymentService) auditFailure(ctx context.Context, userID uint, bookingID *uint, typ models.PaymentType, method models.PaymentMethod, amount float64, currency, reference string) {
	payment := &models.Payment{
		UserID:        userID,
		BookingID:     bookingID,
		Type:          typ,
		Amount:        amount,
		Currency:      currency,
		Method:        method,
		Status:        models.PaymentFailed,
		TransactionID: reference,
		ChargeRef:     reference,
	}
	_ = s.paymentRepo.Create(ctx, s.bookingRepo.GetDB(), payment)
}

func (s *paymentService) publish(routingKey string, payment *models.Payment) {
	if s.publisher != nil {
		_ = s.publisher.Publish(routingKey, payment)
	}
}

// walletSettlementFailed reports whether a PayWithWallet error is a real
// settlement failure. Lookup and authorization rejections happen before any
// funds are checked and do not count as settlements.
func walletSettlementFailed(err error) bool {
	switch {
	case errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrAlreadyPaid),
		errors.Is(err, ErrIllegalTransition),
		errors.Is(err, ErrUserNotFound):
		return false
	}
	return true
}

func walletTransactionID() string {
	return "WALLET-" + uuid.NewString()
}

func topupTransactionID(reference string) string {
	if reference != "" {
		return reference
	}
	return "TOPUP-" + uuid.NewString()
}
