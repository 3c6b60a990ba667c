package repair

import (
	"context"

	"github.com/RelojeriaCentral/taller-api/internal/audit"
	domain "github.com/RelojeriaCentral/taller-api/internal/domain/repair"
	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/timezone"
	"github.com/RelojeriaCentral/taller-api/internal/validation"
)

// ======================================================
// USE CASE — create repair order
// ======================================================

type CreateRepairOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewCreateRepairOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *CreateRepairOrder {
	return &CreateRepairOrder{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

func (uc *CreateRepairOrder) Execute(
	ctx context.Context,
	actorID uint,
	in domain.Input,
) (*models.RepairOrder, error) {

	today := timezone.Today(uc.tz)

	// structural checks first; the store is only consulted afterwards
	delivery, errs := domain.ValidateFields(in, today)

	if err := uc.checkReferences(ctx, in, 0, errs); err != nil {
		return nil, err
	}
	if !errs.Empty() {
		return nil, httperr.ErrValidation(errs)
	}

	status := domain.InitialStatus()
	if in.Status != "" {
		status = domain.Status(in.Status)
	}

	order := &models.RepairOrder{
		ClientID:          in.ClientID,
		TechnicianID:      in.TechnicianID,
		WatchBrand:        in.WatchBrand,
		Description:       in.Description,
		OrderCode:         in.OrderCode,
		IngressDate:       today,
		EstimatedDelivery: delivery,
		Price:             in.Price,
		Location:          in.Location,
		Status:            string(status),
	}

	if err := uc.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "repair_order_created",
		Entity:   "repair_order",
		EntityID: &order.ID,
	})

	return order, nil
}

// checkReferences runs the store-dependent validations: client and
// technician existence and order-code uniqueness. Fields that already
// failed structurally are skipped.
func (uc *CreateRepairOrder) checkReferences(
	ctx context.Context,
	in domain.Input,
	excludeID uint,
	errs validation.Errors,
) error {

	if !errs.Has("client_id") {
		exists, err := uc.repo.ClientExists(ctx, in.ClientID)
		if err != nil {
			return err
		}
		if !exists {
			errs.Add("client_id", validation.CodeNotFound)
		}
	}

	if !errs.Has("technician_id") {
		tech, err := uc.repo.GetTechnician(ctx, in.TechnicianID)
		if err != nil {
			return err
		}
		if tech == nil || tech.Role != models.RoleTechnician || tech.Status != models.EmployeeActive {
			errs.Add("technician_id", validation.CodeNotFound)
		}
	}

	if !errs.Has("order_code") {
		taken, err := uc.repo.OrderCodeExists(ctx, in.OrderCode, excludeID)
		if err != nil {
			return err
		}
		if taken {
			errs.Add("order_code", validation.CodeDuplicateKey)
		}
	}

	return nil
}
