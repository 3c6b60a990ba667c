package battery

import (
	"context"
	"strings"

	"github.com/RelojeriaCentral/taller-api/internal/audit"
	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/validation"
)

const (
	CodeMax        = 30
	PriceDigitsMax = 6
)

type Repository interface {
	CodeExists(
		ctx context.Context,
		code string,
		excludeID uint,
	) (bool, error)

	GetByID(ctx context.Context, id uint) (*models.Battery, error)
	Create(ctx context.Context, b *models.Battery) error
	Update(ctx context.Context, b *models.Battery) error
}

type Input struct {
	Code     string
	Price    string
	Quantity int
}

// ======================================================
// USE CASE — create / update battery
// ======================================================

// Stock only ever goes down through the sale recorder, where the
// decrement pairs with an immutable sale row. An update here may restock
// or correct price/code but never lower the quantity.

type SaveBattery struct {
	repo  Repository
	audit *audit.Dispatcher
}

func NewSaveBattery(repo Repository, audit *audit.Dispatcher) *SaveBattery {
	return &SaveBattery{repo: repo, audit: audit}
}

func (uc *SaveBattery) Create(
	ctx context.Context,
	actorID uint,
	in Input,
) (*models.Battery, error) {

	in = normalize(in)
	if err := uc.validate(ctx, in, 0, 0); err != nil {
		return nil, err
	}

	b := &models.Battery{
		Code:     in.Code,
		Price:    in.Price,
		Quantity: in.Quantity,
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "battery_created",
		Entity:   "battery",
		EntityID: &b.ID,
	})

	return b, nil
}

func (uc *SaveBattery) Update(
	ctx context.Context,
	actorID uint,
	batteryID uint,
	in Input,
) (*models.Battery, error) {

	b, err := uc.repo.GetByID(ctx, batteryID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, httperr.ErrBusiness("battery_not_found")
	}

	in = normalize(in)
	if err := uc.validate(ctx, in, b.ID, b.Quantity); err != nil {
		return nil, err
	}

	b.Code = in.Code
	b.Price = in.Price
	b.Quantity = in.Quantity
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "battery_updated",
		Entity:   "battery",
		EntityID: &b.ID,
		Metadata: map[string]any{"quantity": b.Quantity},
	})

	return b, nil
}

func normalize(in Input) Input {
	in.Code = strings.TrimSpace(in.Code)
	in.Price = validation.StripLeadingZeros(strings.TrimSpace(in.Price))
	return in
}

// minQuantity is the current stock level on update (0 on create): setting
// the quantity below it would be an off-the-books decrement.
func (uc *SaveBattery) validate(
	ctx context.Context,
	in Input,
	excludeID uint,
	minQuantity int,
) error {

	errs := validation.New()

	switch {
	case in.Code == "":
		errs.Add("code", validation.CodeRequired)
	case len(in.Code) > CodeMax:
		errs.Add("code", validation.CodeOutOfRange)
	}

	switch {
	case in.Price == "":
		errs.Add("price", validation.CodeRequired)
	case !validation.IsDigits(in.Price):
		errs.Add("price", validation.CodeInvalidFormat)
	case len(in.Price) > PriceDigitsMax:
		errs.Add("price", validation.CodeOutOfRange)
	}

	if in.Quantity < 0 || in.Quantity < minQuantity {
		errs.Add("quantity", validation.CodeOutOfRange)
	}

	if !errs.Has("code") {
		taken, err := uc.repo.CodeExists(ctx, in.Code, excludeID)
		if err != nil {
			return err
		}
		if taken {
			errs.Add("code", validation.CodeDuplicateKey)
		}
	}

	if !errs.Empty() {
		return httperr.ErrValidation(errs)
	}
	return nil
}
