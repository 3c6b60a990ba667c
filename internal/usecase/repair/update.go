package repair

import (
	"context"

	"github.com/RelojeriaCentral/taller-api/internal/audit"
	domain "github.com/RelojeriaCentral/taller-api/internal/domain/repair"
	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/timezone"
)

// ======================================================
// USE CASE — update repair order
// ======================================================

type UpdateRepairOrder struct {
	create *CreateRepairOrder
	repo   domain.Repository
	audit  *audit.Dispatcher
	tz     string
}

func NewUpdateRepairOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *UpdateRepairOrder {
	return &UpdateRepairOrder{
		create: NewCreateRepairOrder(repo, audit, tz),
		repo:   repo,
		audit:  audit,
		tz:     tz,
	}
}

func (uc *UpdateRepairOrder) Execute(
	ctx context.Context,
	actorID uint,
	orderID uint,
	in domain.Input,
) (*models.RepairOrder, error) {

	order, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, httperr.ErrBusiness("repair_order_not_found")
	}

	today := timezone.Today(uc.tz)

	delivery, errs := domain.ValidateFields(in, today)

	// the record's own code is not a duplicate of itself
	if err := uc.create.checkReferences(ctx, in, orderID, errs); err != nil {
		return nil, err
	}
	if !errs.Empty() {
		return nil, httperr.ErrValidation(errs)
	}

	order.ClientID = in.ClientID
	order.TechnicianID = in.TechnicianID
	order.WatchBrand = in.WatchBrand
	order.Description = in.Description
	order.OrderCode = in.OrderCode
	order.EstimatedDelivery = delivery
	order.Price = in.Price
	order.Location = in.Location
	if in.Status != "" {
		order.Status = in.Status
	}
	// IngressDate is deliberately untouched

	if err := uc.repo.Update(ctx, order); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "repair_order_updated",
		Entity:   "repair_order",
		EntityID: &order.ID,
	})

	return order, nil
}
