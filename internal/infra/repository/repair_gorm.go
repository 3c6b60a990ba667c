package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domain "github.com/RelojeriaCentral/taller-api/internal/domain/repair"
	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/models"
)

type RepairGormRepository struct {
	db *gorm.DB
}

func NewRepairGormRepository(db *gorm.DB) *RepairGormRepository {
	return &RepairGormRepository{db: db}
}

// --------------------------------------------------
// Referenced entities
// --------------------------------------------------

func (r *RepairGormRepository) ClientExists(
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

func (r *RepairGormRepository) GetTechnician(
	ctx context.Context,
	id uint,
) (*models.Employee, error) {

	var e models.Employee
	err := r.db.WithContext(ctx).First(&e, id).Error
	return notFoundAsNil(&e, err)
}

// --------------------------------------------------
// Order code
// --------------------------------------------------

func (r *RepairGormRepository) OrderCodeExists(
	ctx context.Context,
	code string,
	excludeID uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.RepairOrder{}).
		Where("order_code = ?", code)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Repair orders
// --------------------------------------------------

func (r *RepairGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.RepairOrder, error) {

	var order models.RepairOrder
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Technician").
		First(&order, id).Error
	return notFoundAsNil(&order, err)
}

func (r *RepairGormRepository) Create(
	ctx context.Context,
	order *models.RepairOrder,
) error {

	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrBusiness("duplicate_key")
		}
		return err
	}
	return nil
}

func (r *RepairGormRepository) Update(
	ctx context.Context,
	order *models.RepairOrder,
) error {

	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrBusiness("duplicate_key")
		}
		return err
	}
	return nil
}

func (r *RepairGormRepository) Search(
	ctx context.Context,
	query string,
) ([]models.RepairOrder, error) {

	q := r.db.WithContext(ctx).
		Model(&models.RepairOrder{}).
		Joins("JOIN clients ON clients.id = repair_orders.client_id").
		Joins("JOIN employees ON employees.id = repair_orders.technician_id").
		Preload("Client").
		Preload("Technician")

	if term := strings.TrimSpace(query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where(
			`repair_orders.order_code LIKE ?
				OR LOWER(clients.name) LIKE ?
				OR LOWER(clients.surname) LIKE ?
				OR clients.phone LIKE ?
				OR LOWER(employees.name) LIKE ?
				OR LOWER(employees.surname) LIKE ?
				OR LOWER(repair_orders.description) LIKE ?`,
			like, like, like, like, like, like, like,
		)
	}

	var orders []models.RepairOrder
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Compile-time check
var _ domain.Repository = (*RepairGormRepository)(nil)
