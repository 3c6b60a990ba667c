package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/usecase/watch"
)

type WatchGormRepository struct {
	db *gorm.DB
}

func NewWatchGormRepository(db *gorm.DB) *WatchGormRepository {
	return &WatchGormRepository{db: db}
}

func (r *WatchGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Watch, error) {

	var w models.Watch
	err := r.db.WithContext(ctx).First(&w, id).Error
	return notFoundAsNil(&w, err)
}

func (r *WatchGormRepository) Create(
	ctx context.Context,
	w *models.Watch,
) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *WatchGormRepository) Update(
	ctx context.Context,
	w *models.Watch,
) error {
	return r.db.WithContext(ctx).Save(w).Error
}

// Compile-time check
var _ watch.Repository = (*WatchGormRepository)(nil)
