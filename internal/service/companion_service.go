package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirikit/companion-booking/internal/auth"
	"github.com/sirikit/companion-booking/internal/dto"
	"github.com/sirikit/companion-booking/internal/models"
	"github.com/sirikit/companion-booking/internal/repository"
	"gorm.io/gorm"
)

var ErrCompanionNotFound = errors.New("companion profile not found")

// CompanionService covers the two profile mutations the booking core depends
// on: self-service pricing/availability updates and admin verification.
type CompanionService interface {
	Get(ctx context.Context, id uint) (*models.Companion, error)
	UpdateOwn(ctx context.Context, actor auth.Identity, in dto.UpdateCompanionRequest) (*models.Companion, error)
	Verify(ctx context.Context, actor auth.Identity, id uint) (*models.Companion, error)
}

type companionService struct {
	companionRepo repository.CompanionRepository
	db            *gorm.DB
}

func NewCompanionService(companionRepo repository.CompanionRepository, db *gorm.DB) CompanionService {
	return &companionService{companionRepo: companionRepo, db: db}
}

func (s *companionService) Get(ctx context.Context, id uint) (*models.Companion, error) {
	companion, err := s.companionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrCompanionNotFound
	}
	return companion, nil
}

func (s *companionService) UpdateOwn(ctx context.Context, actor auth.Identity, in dto.UpdateCompanionRequest) (*models.Companion, error) {
	var result *models.Companion

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		companion, err := s.companionRepo.FindByUserID(ctx, actor.UserID)
		if err != nil {
			return ErrCompanionNotFound
		}

		if in.ActivityCategories != nil {
			companion.ActivityCategories = marshalJSON(in.ActivityCategories)
		}
		if in.AvailabilityDays != nil {
			companion.AvailabilityDays = marshalJSON(in.AvailabilityDays)
		}
		if in.AvailabilitySlots != nil {
			companion.AvailabilitySlots = marshalJSON(in.AvailabilitySlots)
		}
		if in.Timezone != nil {
			companion.Timezone = *in.Timezone
		}
		if in.HourlyRate != nil {
			companion.HourlyRate = *in.HourlyRate
		}
		if in.ActivityRates != nil {
			companion.ActivityRates = marshalJSON(in.ActivityRates)
		}
		if in.Currency != nil {
			companion.Currency = *in.Currency
		}
		if in.IsAvailable != nil {
			companion.IsAvailable = *in.IsAvailable
		}

		if err := s.companionRepo.Save(ctx, tx, companion); err != nil {
			return err
		}
		result = companion
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *companionService) Verify(ctx context.Context, actor auth.Identity, id uint) (*models.Companion, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	var result *models.Companion

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		companion, err := s.companionRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return ErrCompanionNotFound
		}

		now := time.Now()
		companion.Verified = true
		companion.VerifiedAt = &now

		if err := s.companionRepo.Save(ctx, tx, companion); err != nil {
			return err
		}
		result = companion
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func marshalJSON(v interface{}) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(raw)
}
