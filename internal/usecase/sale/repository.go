package sale

import (
	"context"

	"github.com/RelojeriaCentral/taller-api/internal/models"
)

// Repository is the transactional port for the sale recorder. Transaction
// hands the callback a repository bound to the open transaction; the stock
// read inside it must lock the battery row so concurrent sales cannot
// oversell.
type Repository interface {
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Batteries --------
	GetBatteryForUpdate(
		ctx context.Context,
		id uint,
	) (*models.Battery, error)

	DecrementBatteryStock(
		ctx context.Context,
		id uint,
		quantity int,
	) error

	CreateBatterySale(
		ctx context.Context,
		s *models.BatterySale,
	) error

	// -------- Watches --------
	GetWatch(
		ctx context.Context,
		id uint,
	) (*models.Watch, error)

	UpdateWatch(
		ctx context.Context,
		w *models.Watch,
	) error

	ClientExists(
		ctx context.Context,
		id uint,
	) (bool, error)
}
