package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/usecase/sale"
)

type SaleGormRepository struct {
	db *gorm.DB
}

func NewSaleGormRepository(db *gorm.DB) *SaleGormRepository {
	return &SaleGormRepository{db: db}
}

// Transaction binds a repository to the open transaction so that the
// check-then-write pair on a battery commits or rolls back as one.
func (r *SaleGormRepository) Transaction(
	ctx context.Context,
	fn func(tx sale.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SaleGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Batteries
// --------------------------------------------------

func (r *SaleGormRepository) GetBatteryForUpdate(
	ctx context.Context,
	id uint,
) (*models.Battery, error) {

	var b models.Battery
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, id).Error
	return notFoundAsNil(&b, err)
}

func (r *SaleGormRepository) DecrementBatteryStock(
	ctx context.Context,
	id uint,
	quantity int,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Battery{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity)).Error
}

func (r *SaleGormRepository) CreateBatterySale(
	ctx context.Context,
	s *models.BatterySale,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// --------------------------------------------------
// Watches
// --------------------------------------------------

func (r *SaleGormRepository) GetWatch(
	ctx context.Context,
	id uint,
) (*models.Watch, error) {

	var w models.Watch
	err := r.db.WithContext(ctx).First(&w, id).Error
	return notFoundAsNil(&w, err)
}

func (r *SaleGormRepository) UpdateWatch(
	ctx context.Context,
	w *models.Watch,
) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *SaleGormRepository) ClientExists(
	ctx context.Context,
	id uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Compile-time check
var _ sale.Repository = (*SaleGormRepository)(nil)
