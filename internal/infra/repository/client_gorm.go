package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/usecase/client"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func (r *ClientGormRepository) DuplicateTripleExists(
	ctx context.Context,
	name, surname, phone string,
	excludeID uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where(
			"LOWER(name) = LOWER(?) AND LOWER(surname) = LOWER(?) AND phone = ?",
			name, surname, phone,
		)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ClientGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var c models.Client
	err := r.db.WithContext(ctx).First(&c, id).Error
	return notFoundAsNil(&c, err)
}

func (r *ClientGormRepository) Create(
	ctx context.Context,
	c *models.Client,
) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientGormRepository) Update(
	ctx context.Context,
	c *models.Client,
) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Compile-time check
var _ client.Repository = (*ClientGormRepository)(nil)
