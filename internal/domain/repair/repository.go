package repair

import (
	"context"

	"github.com/RelojeriaCentral/taller-api/internal/models"
)

type Repository interface {
	// -------- Referenced entities --------
	ClientExists(
		ctx context.Context,
		id uint,
	) (bool, error)

	GetTechnician(
		ctx context.Context,
		id uint,
	) (*models.Employee, error)

	// -------- Order code uniqueness --------
	OrderCodeExists(
		ctx context.Context,
		code string,
		excludeID uint,
	) (bool, error)

	// -------- Repair orders --------
	GetByID(
		ctx context.Context,
		id uint,
	) (*models.RepairOrder, error)

	Create(
		ctx context.Context,
		order *models.RepairOrder,
	) error

	Update(
		ctx context.Context,
		order *models.RepairOrder,
	) error

	// Search matches the substring against order code, client name/phone,
	// technician name and description (OR across fields).
	Search(
		ctx context.Context,
		query string,
	) ([]models.RepairOrder, error)
}
