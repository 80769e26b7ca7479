package dto

import (
	"time"

	"github.com/sirikit/companion-booking/internal/models"
)

type BookingResponse struct {
	ID              uint                 `json:"id"`
	UserID          uint                 `json:"user_id"`
	CompanionID     uint                 `json:"companion_id"`
	Activity        string               `json:"activity"`
	Date            string               `json:"date"`
	StartTime       string               `json:"start_time"`
	EndTime         string               `json:"end_time"`
	Duration        float64              `json:"duration"`
	Status          models.BookingStatus `json:"status"`
	PriceRate       float64              `json:"price_rate"`
	PriceTotal      float64              `json:"price_total"`
	PriceCurrency   string               `json:"price_currency"`
	PaymentMethod   models.PaymentMethod `json:"payment_method,omitempty"`
	PaymentStatus   models.PaymentStatus `json:"payment_status"`
	PaidAt          *time.Time           `json:"paid_at,omitempty"`
	CheckInAt       *time.Time           `json:"check_in_at,omitempty"`
	CheckOutAt      *time.Time           `json:"check_out_at,omitempty"`
	CancelledBy     models.CancelledBy   `json:"cancelled_by,omitempty"`
	CancelledAt     *time.Time           `json:"cancelled_at,omitempty"`
	SpecialRequests string               `json:"special_requests,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		CompanionID:     b.CompanionID,
		Activity:        b.Activity,
		Date:            b.Date.Format("2006-01-02"),
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		Duration:        b.Duration,
		Status:          b.Status,
		PriceRate:       b.PriceRate,
		PriceTotal:      b.PriceTotal,
		PriceCurrency:   b.PriceCurrency,
		PaymentMethod:   b.PaymentMethod,
		PaymentStatus:   b.PaymentStatus,
		PaidAt:          b.PaidAt,
		CheckInAt:       b.CheckInAt,
		CheckOutAt:      b.CheckOutAt,
		CancelledBy:     b.CancelledBy,
		CancelledAt:     b.CancelledAt,
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
	}
}

type PaymentResponse struct {
	ID            uint                 `json:"id"`
	UserID        uint                 `json:"user_id"`
	BookingID     *uint                `json:"booking_id,omitempty"`
	Type          models.PaymentType   `json:"type"`
	Amount        float64              `json:"amount"`
	Currency      string               `json:"currency"`
	Method        models.PaymentMethod `json:"method"`
	Status        models.PaymentStatus `json:"status"`
	TransactionID string               `json:"transaction_id"`
	CreatedAt     time.Time            `json:"created_at"`
}

func ToPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		BookingID:     p.BookingID,
		Type:          p.Type,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Method:        p.Method,
		Status:        p.Status,
		TransactionID: p.TransactionID,
		CreatedAt:     p.CreatedAt,
	}
}

type WalletResponse struct {
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

type IntentResponse struct {
	Reference string  `json:"reference"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

type ReviewResponse struct {
	ID          uint      `json:"id"`
	BookingID   uint      `json:"booking_id"`
	UserID      uint      `json:"user_id"`
	CompanionID uint      `json:"companion_id"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	Tags        string    `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:          r.ID,
		BookingID:   r.BookingID,
		UserID:      r.UserID,
		CompanionID: r.CompanionID,
		Rating:      r.Rating,
		Comment:     r.Comment,
		Tags:        r.Tags,
		CreatedAt:   r.CreatedAt,
	}
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
