//go:build integration

package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirikit/companion-booking/internal/models"
	"github.com/sirikit/companion-booking/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

// Test: activity override 200/hr for 2 hours → frozen total of 400
func TestPricingSnapshot(t *testing.T) {
	cleanTables()
	createTestUser(t, 1, 0)
	createTestUser(t, 2, 0)
	createTestCompanion(t, 1, 2, 150, `{"dinner": 200}`)
	svc := newBookingService()

	booking, err := svc.CreateBooking(context.Background(), asUser(1), bookingInput(1, bookingDate, "18:00", "20:00", 2))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, booking.Status)
	assert.Equal(t, float64(200), booking.PriceRate)
	assert.Equal(t, float64(400), booking.PriceTotal)
	assert.Equal(t, "THB", booking.PriceCurrency)
	assert.Equal(t, models.PaymentPending, booking.PaymentStatus)
}

// Test: the snapshot survives a later rate change on the companion profile
func TestPricingSnapshotFrozen(t *testing.T) {
	cleanTables()
	createTestUser(t, 1, 0)
	createTestUser(t, 2, 0)
	companion := createTestCompanion(t, 1, 2, 200, "")
	svc := newBookingService()

	booking, err := svc.CreateBooking(context.Background(), asUser(1), bookingInput(1, bookingDate, "10:00", "12:00", 2))
	require.NoError(t, err)
	require.Equal(t, float64(400), booking.PriceTotal)

	companion.HourlyRate = 500
	require.NoError(t, testDB.Save(companion).Error)

	var reloaded models.Booking
	require.NoError(t, testDB.First(&reloaded, booking.ID).Error)
	assert.Equal(t, float64(200), reloaded.PriceRate)
	assert.Equal(t, float64(400), reloaded.PriceTotal)
}

// Test: overlapping window on the same companion and date → rejected
func TestOverlappingSlotRejected(t *testing.T) {
	cleanTables()
	createTestUser(t, 1, 0)
	createTestUser(t, 2, 0)
	createTestUser(t, 3, 0)
	createTestCompanion(t, 1, 3, 200, "")
	svc := newBookingService()

	_, err := svc.CreateBooking(context.Background(), asUser(1), bookingInput(1, bookingDate, "10:00", "12:00", 2))
	require.NoError(t, err)

	// partial overlap
	_, err = svc.CreateBooking(context.Background(), asUser(2), bookingInput(1, bookingDate, "11:00", "13:00", 2))
	assert.ErrorIs(t, err, service.ErrSlotTaken)

	// new window fully contains the existing one
	_, err = svc.CreateBooking(context.Background(), asUser(2), bookingInput(1, bookingDate, "09:00", "13:00", 4))
	assert.ErrorIs(t, err, service.ErrSlotTaken)

	// back-to-back is fine
	_, err = svc.CreateBooking(context.Background(), asUser(2), bookingInput(1, bookingDate, "12:00", "14:00", 2))
	assert.NoError(t, err)

	// same window, next day is fine
	_, err = svc.CreateBooking(context.Background(), asUser(2), bookingInput(1, bookingDate.AddDate(0, 0, 1), "10:00", "12:00", 2))
	assert.NoError(t, err)
}

// Test: a cancelled booking frees its slot
func TestCancelledSlotReopens(t *testing.T) {
	cleanTables()
	createTestUser(t, 1, 0)
	createTestUser(t, 2, 0)
	createTestUser(t, 3, 0)
	createTestCompanion(t, 1, 3, 200, "")
	svc := newBookingService()

	booking, err := svc.CreateBooking(context.Background(), asUser(1), bookingInput(1, bookingDate, "10:00", "12:00", 2))
	require.NoError(t, err)

	cancelled, err := svc.UpdateStatus(context.Background(), asUser(1), booking.ID, models.StatusCancelled, "changed plans")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, models.CancelledByUser, cancelled.CancelledBy)
	assert.NotNil(t, cancelled.CancelledAt)

	_, err = svc.CreateBooking(context.Background(), asUser(2), bookingInput(1, bookingDate, "10:00", "12:00", 2))
	assert.NoError(t, err)
}

// Test: N users race for the same slot → exactly one wins
func TestConcurrentSlotBooking(t *testing.T) {
	cleanTables()
	attempts := 10
	for i := 1; i <= attempts; i++ {
		createTestUser(t, uint(i), 0)
	}
	createTestUser(t, 100, 0)
	createTestCompanion(t, 1, 100, 200, "")
	svc := newBookingService()

	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0

	wg.Add(attempts)
	for i := 1; i <= attempts; i++ {
		go func(userID uint) {
			defer wg.Done()
			_, err := svc.CreateBooking(context.Background(), asUser(userID), bookingInput(1, bookingDate, "10:00", "12:00", 2))
			if err == nil {
				mu.Lock()
				successCount++
				mu.Unlock()
			}
		}(uint(i))
	}
	wg.Wait()

	assert.Equal(t, 1, successCount, "only one concurrent booking should win the slot")

	var count int64
	testDB.Model(&models.Booking{}).
		Where("companion_id = ? AND date = ? AND status IN ?", 1, bookingDate, []models.BookingStatus{models.StatusPending, models.StatusConfirmed}).
		Count(&count)
	assert.Equal(t, int64(1), count, "DB should have exactly 1 active booking for the slot")
}

// Test: companion accept/reject is restricted to the companion's owner
func TestStatusTransitionAuthorization(t *testing.T) {
	cleanTables()
	createTestUser(t, 1, 0)
	createTestUser(t, 2, 0)
	createTestUser(t, 3, 0)
	createTestCompanion(t, 1, 2, 200, "")
	svc := newBookingService()

	booking, err := svc.CreateBooking(context.Background(), asUser(1), bookingInput(1, bookingDate, "10:00", "12:00", 2))
	require.NoError(t, err)

	// the requester cannot confirm their own booking
	_, err = svc.UpdateStatus(context.Background(), asUser(1), booking.ID, models.StatusConfirmed, "")
	assert.ErrorIs(t, err, service.ErrForbidden)

	// an unrelated user cannot cancel it
	_, err = svc.UpdateStatus(context.Background(), asUser(3), booking.ID, models.StatusCancelled, "")
	assert.ErrorIs(t, err, service.ErrForbidden)

	// the companion's owner can confirm
	confirmed, err := svc.UpdateStatus(context.Background(), asCompanion(2), booking.ID, models.StatusConfirmed, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)
}

// Test: checkout completes the booking and bumps counters exactly once
func TestCheckOutCountersOnce(t *testing.T) {
	cleanTables()
	createTestUser(t, 1, 0)
	createTestUser(t, 2, 0)
	createTestCompanion(t, 1, 2, 200, "")
	svc := newBookingService()

	booking, err := svc.CreateBooking(context.Background(), asUser(1), bookingInput(1, bookingDate, "10:00", "12:00", 2))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), asCompanion(2), booking.ID, models.StatusConfirmed, "")
	require.NoError(t, err)

	checkedIn, err := svc.CheckIn(context.Background(), asUser(1), booking.ID, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, checkedIn.CheckInAt)

	completed, err := svc.CheckOut(context.Background(), asUser(1), booking.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, completed.Status)
	assert.NotNil(t, completed.CheckOutAt)

	var companion models.Companion
	require.NoError(t, testDB.First(&companion, 1).Error)
	assert.Equal(t, int64(1), companion.TotalBookings)
	assert.Equal(t, int64(1), companion.CompletedBookings)

	// repeat checkout must not bump the counters again
	_, err = svc.CheckOut(context.Background(), asUser(1), booking.ID, nil, nil)
	assert.ErrorIs(t, err, service.ErrIllegalTransition)

	require.NoError(t, testDB.First(&companion, 1).Error)
	assert.Equal(t, int64(1), companion.TotalBookings)
	assert.Equal(t, int64(1), companion.CompletedBookings)
}

// Test: unavailable companion cannot be booked
func TestUnavailableCompanion(t *testing.T) {
	cleanTables()
	createTestUser(t, 1, 0)
	createTestUser(t, 2, 0)
	companion := createTestCompanion(t, 1, 2, 200, "")
	companion.IsAvailable = false
	require.NoError(t, testDB.Save(companion).Error)
	svc := newBookingService()

	_, err := svc.CreateBooking(context.Background(), asUser(1), bookingInput(1, bookingDate, "10:00", "12:00", 2))
	assert.ErrorIs(t, err, service.ErrCompanionUnavailable)

	_, err = svc.CreateBooking(context.Background(), asUser(1), bookingInput(99, bookingDate, "10:00", "12:00", 2))
	assert.ErrorIs(t, err, service.ErrCompanionUnavailable)
}
