package database

import (
	"log"

	"github.com/sirikit/companion-booking/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Companion{},
		&models.Booking{},
		&models.Payment{},
		&models.Review{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Active bookings per companion/date; the conflict scan under the
	// companion row lock hits this index.
	db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_booking_active_slot
		ON bookings (companion_id, date, start_time, end_time)
		WHERE status IN ('pending', 'confirmed')
	`)

	// Wallet balances never go negative even if a code path skips the
	// in-transaction sufficiency check.
	db.Exec(`
		ALTER TABLE users DROP CONSTRAINT IF EXISTS chk_wallet_balance_non_negative;
		ALTER TABLE users ADD CONSTRAINT chk_wallet_balance_non_negative CHECK (wallet_balance >= 0)
	`)

	return db
}
