package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/usecase/account"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

func (r *AccountGormRepository) GetUserByUsername(
	ctx context.Context,
	username string,
) (*models.User, error) {

	var u models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	return notFoundAsNil(&u, err)
}

func (r *AccountGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	return notFoundAsNil(&u, err)
}

func (r *AccountGormRepository) UpdateUserPassword(
	ctx context.Context,
	userID uint,
	hash string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash).Error
}

func (r *AccountGormRepository) CreateToken(
	ctx context.Context,
	t *models.PasswordResetToken,
) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *AccountGormRepository) GetToken(
	ctx context.Context,
	token string,
) (*models.PasswordResetToken, error) {

	var t models.PasswordResetToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&t).Error
	return notFoundAsNil(&t, err)
}

func (r *AccountGormRepository) MarkTokenUsed(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.PasswordResetToken{}).
		Where("id = ?", id).
		Update("used", true).Error
}

// Compile-time check
var _ account.Repository = (*AccountGormRepository)(nil)
