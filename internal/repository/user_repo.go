package repository

import (
	"context"

	"github.com/sirikit/companion-booking/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	UpdateWalletBalance(ctx context.Context, tx *gorm.DB, id uint, balance float64) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDForUpdate locks the user row; wallet sufficiency check and debit
// happen behind this lock as one indivisible step.
func (r *userRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateWalletBalance(ctx context.Context, tx *gorm.DB, id uint, balance float64) error {
	return tx.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("wallet_balance", balance).Error
}
