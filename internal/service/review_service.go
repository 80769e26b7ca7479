package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirikit/companion-booking/internal/auth"
	"github.com/sirikit/companion-booking/internal/models"
	"github.com/sirikit/companion-booking/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrBookingNotCompleted = errors.New("booking is not completed")
	ErrNotBookingOwner     = errors.New("only the booking owner can review")
	ErrReviewExists        = errors.New("review already exists for this booking")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)

type CreateReviewInput struct {
	BookingID uint
	Rating    int
	Comment   string
	Tags      []string
}

type ReviewService interface {
	CreateReview(ctx context.Context, actor auth.Identity, in CreateReviewInput) (*models.Review, error)
	ListByCompanion(ctx context.Context, companionID uint, page, limit int) ([]models.Review, int64, error)
	ListByUser(ctx context.Context, actor auth.Identity) ([]models.Review, error)
}

type reviewService struct {
	reviewRepo    repository.ReviewRepository
	bookingRepo   repository.BookingRepository
	companionRepo repository.CompanionRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookingRepo repository.BookingRepository, companionRepo repository.CompanionRepository) ReviewService {
	return &reviewService{
		reviewRepo:    reviewRepo,
		bookingRepo:   bookingRepo,
		companionRepo: companionRepo,
	}
}

// CreateReview attaches the one allowed review to a completed booking, then
// recomputes the companion's rating from the full review set inside the same
// transaction, so average and count can never drift apart.
func (s *reviewService) CreateReview(ctx context.Context, actor auth.Identity, in CreateReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}

	var result *models.Review

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, in.BookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if booking.Status != models.StatusCompleted {
			return ErrBookingNotCompleted
		}
		if !actor.IsRequester(booking) {
			return ErrNotBookingOwner
		}

		_, err = s.reviewRepo.FindByBookingID(ctx, tx, in.BookingID)
		if err == nil {
			return ErrReviewExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var tags string
		if len(in.Tags) > 0 {
			raw, err := json.Marshal(in.Tags)
			if err != nil {
				return err
			}
			tags = string(raw)
		}

		review := &models.Review{
			BookingID:   in.BookingID,
			UserID:      actor.UserID,
			CompanionID: booking.CompanionID,
			Rating:      in.Rating,
			Comment:     in.Comment,
			Tags:        tags,
		}
		if err := s.reviewRepo.Create(ctx, tx, review); err != nil {
			return err
		}

		average, count, err := s.reviewRepo.AggregateForCompanion(ctx, tx, booking.CompanionID)
		if err != nil {
			return err
		}
		if err := s.companionRepo.UpdateRating(ctx, tx, booking.CompanionID, average, count); err != nil {
			return err
		}

		result = review
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *reviewService) ListByCompanion(ctx context.Context, companionID uint, page, limit int) ([]models.Review, int64, error) {
	return s.reviewRepo.FindByCompanion(ctx, companionID, page, limit)
}

func (s *reviewService) ListByUser(ctx context.Context, actor auth.Identity) ([]models.Review, error) {
	return s.reviewRepo.FindByUser(ctx, actor.UserID)
}
