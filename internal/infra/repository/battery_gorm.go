package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/usecase/battery"
)

type BatteryGormRepository struct {
	db *gorm.DB
}

func NewBatteryGormRepository(db *gorm.DB) *BatteryGormRepository {
	return &BatteryGormRepository{db: db}
}

func (r *BatteryGormRepository) CodeExists(
	ctx context.Context,
	code string,
	excludeID uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Battery{}).
		Where("code = ?", code)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BatteryGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Battery, error) {

	var b models.Battery
	err := r.db.WithContext(ctx).First(&b, id).Error
	return notFoundAsNil(&b, err)
}

func (r *BatteryGormRepository) Create(
	ctx context.Context,
	b *models.Battery,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BatteryGormRepository) Update(
	ctx context.Context,
	b *models.Battery,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// Compile-time check
var _ battery.Repository = (*BatteryGormRepository)(nil)
