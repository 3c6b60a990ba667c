package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/usecase/employee"
)

type EmployeeGormRepository struct {
	db *gorm.DB
}

func NewEmployeeGormRepository(db *gorm.DB) *EmployeeGormRepository {
	return &EmployeeGormRepository{db: db}
}

func (r *EmployeeGormRepository) CedulaExists(
	ctx context.Context,
	cedula string,
	excludeID uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("cedula = ?", cedula)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *EmployeeGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Employee, error) {

	var e models.Employee
	err := r.db.WithContext(ctx).First(&e, id).Error
	return notFoundAsNil(&e, err)
}

func (r *EmployeeGormRepository) Create(
	ctx context.Context,
	e *models.Employee,
) error {

	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrBusiness("duplicate_key")
		}
		return err
	}
	return nil
}

func (r *EmployeeGormRepository) Update(
	ctx context.Context,
	e *models.Employee,
) error {

	if err := r.db.WithContext(ctx).Save(e).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrBusiness("duplicate_key")
		}
		return err
	}
	return nil
}

// Compile-time check
var _ employee.Repository = (*EmployeeGormRepository)(nil)
