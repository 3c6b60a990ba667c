package sale

import (
	"context"
	"time"

	"github.com/RelojeriaCentral/taller-api/internal/audit"
	domain "github.com/RelojeriaCentral/taller-api/internal/domain/watch"
	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/timezone"
	"github.com/RelojeriaCentral/taller-api/internal/validation"
)

// ======================================================
// USE CASE — sell watch
// ======================================================

// A watch is a unit item: selling it is the Disponible → Vendido transition
// carrying the sale date and the buying client, not a quantity decrement.

type SellWatchInput struct {
	WatchID  uint
	ClientID uint
	SaleDate string
	Paid     bool
}

type SellWatch struct {
	repo  Repository
	audit *audit.Dispatcher
	tz    string
}

func NewSellWatch(
	repo Repository,
	audit *audit.Dispatcher,
	tz string,
) *SellWatch {
	return &SellWatch{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

func (uc *SellWatch) Execute(
	ctx context.Context,
	actorID uint,
	in SellWatchInput,
) (*models.Watch, error) {

	w, err := uc.repo.GetWatch(ctx, in.WatchID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, httperr.ErrBusiness("watch_not_found")
	}

	// a missing date stays missing; the transition guard reports it as
	// required instead of assuming today
	var saleDate *time.Time
	if in.SaleDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", in.SaleDate, timezone.Location(uc.tz))
		if err != nil {
			errs := validation.New()
			errs.Add("sale_date", validation.CodeInvalidFormat)
			return nil, httperr.ErrValidation(errs)
		}
		saleDate = &parsed
	}

	var clientID *uint
	if in.ClientID != 0 {
		exists, err := uc.repo.ClientExists(ctx, in.ClientID)
		if err != nil {
			return nil, err
		}
		if !exists {
			errs := validation.New()
			errs.Add("client_id", validation.CodeNotFound)
			return nil, httperr.ErrValidation(errs)
		}
		clientID = &in.ClientID
	}

	if err := domain.Sell(w, clientID, saleDate); err != nil {
		return nil, err
	}
	w.Paid = in.Paid

	if err := uc.repo.UpdateWatch(ctx, w); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "watch_sold",
		Entity:   "watch",
		EntityID: &w.ID,
	})

	return w, nil
}
