package watch

import (
	"context"

	"github.com/RelojeriaCentral/taller-api/internal/audit"
	domain "github.com/RelojeriaCentral/taller-api/internal/domain/watch"
	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/models"
)

type Repository interface {
	GetByID(ctx context.Context, id uint) (*models.Watch, error)
	Create(ctx context.Context, w *models.Watch) error
	Update(ctx context.Context, w *models.Watch) error
}

// ======================================================
// USE CASE — create / update watch
// ======================================================

// The commission is derived state: recomputed from the price on every
// save, never accepted from the caller.

type SaveWatch struct {
	repo  Repository
	audit *audit.Dispatcher
}

func NewSaveWatch(repo Repository, audit *audit.Dispatcher) *SaveWatch {
	return &SaveWatch{repo: repo, audit: audit}
}

func (uc *SaveWatch) Create(
	ctx context.Context,
	actorID uint,
	in domain.Input,
) (*models.Watch, error) {

	if errs := domain.ValidateFields(in); !errs.Empty() {
		return nil, httperr.ErrValidation(errs)
	}

	w := &models.Watch{
		Brand:       in.Brand,
		Reference:   in.Reference,
		Price:       in.Price,
		Commission:  domain.Commission(in.Price),
		Owner:       in.Owner,
		Description: in.Description,
		Condition:   in.Condition,
		Status:      domain.StatusAvailable,
		Paid:        in.Paid,
	}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "watch_created",
		Entity:   "watch",
		EntityID: &w.ID,
	})

	return w, nil
}

// Update edits the descriptive fields and recomputes the commission.
// The status never changes here; selling has its own use case.
func (uc *SaveWatch) Update(
	ctx context.Context,
	actorID uint,
	watchID uint,
	in domain.Input,
) (*models.Watch, error) {

	w, err := uc.repo.GetByID(ctx, watchID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, httperr.ErrBusiness("watch_not_found")
	}

	if errs := domain.ValidateFields(in); !errs.Empty() {
		return nil, httperr.ErrValidation(errs)
	}

	w.Brand = in.Brand
	w.Reference = in.Reference
	w.Price = in.Price
	w.Commission = domain.Commission(in.Price)
	w.Owner = in.Owner
	w.Description = in.Description
	w.Condition = in.Condition
	w.Paid = in.Paid

	if err := uc.repo.Update(ctx, w); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "watch_updated",
		Entity:   "watch",
		EntityID: &w.ID,
	})

	return w, nil
}
