//go:build integration

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirikit/companion-booking/internal/auth"
	"github.com/sirikit/companion-booking/internal/models"
	"github.com/sirikit/companion-booking/internal/processor"
	"github.com/sirikit/companion-booking/internal/repository"
	"github.com/sirikit/companion-booking/internal/service"
	"github.com/stretchr/testify/require"
)

// stubGateway stands in for the external processor so settlement outcomes
// are deterministic.
type stubGateway struct {
	status processor.Status
	err    error
}

func (g *stubGateway) CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]interface{}) (*processor.Intent, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &processor.Intent{Reference: "chrg_stub", Amount: amount, Currency: currency}, nil
}

func (g *stubGateway) RetrieveStatus(ctx context.Context, reference string) (processor.Status, error) {
	return g.status, g.err
}

func createTestUser(t *testing.T, id uint, balance float64) *models.User {
	t.Helper()
	user := &models.User{
		ID:             id,
		Name:           "Test User",
		Email:          uniqueEmail(id),
		Role:           models.RoleUser,
		WalletBalance:  balance,
		WalletCurrency: "THB",
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func uniqueEmail(id uint) string {
	return fmt.Sprintf("user-%d-%d@test.local", id, time.Now().UnixNano())
}

func createTestCompanion(t *testing.T, id, userID uint, hourlyRate float64, activityRates string) *models.Companion {
	t.Helper()
	companion := &models.Companion{
		ID:            id,
		UserID:        userID,
		HourlyRate:    hourlyRate,
		ActivityRates: activityRates,
		Currency:      "THB",
		IsAvailable:   true,
		Verified:      true,
	}
	require.NoError(t, testDB.Create(companion).Error)
	return companion
}

func newBookingService() service.BookingService {
	return service.NewBookingService(
		repository.NewBookingRepository(testDB),
		repository.NewCompanionRepository(testDB),
		nil,
	)
}

func newPaymentService(gateway processor.Processor) service.PaymentService {
	return service.NewPaymentService(
		repository.NewBookingRepository(testDB),
		repository.NewUserRepository(testDB),
		repository.NewPaymentRepository(testDB),
		gateway,
		nil,
	)
}

func newReviewService() service.ReviewService {
	return service.NewReviewService(
		repository.NewReviewRepository(testDB),
		repository.NewBookingRepository(testDB),
		repository.NewCompanionRepository(testDB),
	)
}

func bookingInput(companionID uint, date time.Time, start, end string, duration float64) service.CreateBookingInput {
	return service.CreateBookingInput{
		CompanionID: companionID,
		Activity:    "dinner",
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Duration:    duration,
	}
}

func asUser(id uint) auth.Identity {
	return auth.Identity{UserID: id, Role: models.RoleUser}
}

func asCompanion(id uint) auth.Identity {
	return auth.Identity{UserID: id, Role: models.RoleCompanion}
}
