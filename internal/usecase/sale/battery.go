package sale

import (
	"context"
	"time"

	"github.com/RelojeriaCentral/taller-api/internal/audit"
	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/timezone"
)

// ======================================================
// Batch mode
// ======================================================

// BatchMode decides what happens when one line of a multi-battery sale
// fails its stock check. AllOrNothing rolls the whole batch back;
// StopOnFirstFailure keeps the lines committed before the failing one and
// stops there.
type BatchMode string

const (
	AllOrNothing       BatchMode = "all_or_nothing"
	StopOnFirstFailure BatchMode = "stop_on_first_failure"
)

func ParseBatchMode(s string) BatchMode {
	if s == string(StopOnFirstFailure) {
		return StopOnFirstFailure
	}
	return AllOrNothing
}

// ======================================================
// INPUT / OUTPUT
// ======================================================

type Line struct {
	BatteryID uint `json:"battery_id"`
	Quantity  int  `json:"quantity"`
}

type LineFailure struct {
	BatteryID uint   `json:"battery_id"`
	Code      string `json:"code"`
}

type BatchResult struct {
	Sales   []models.BatterySale `json:"sales"`
	Failure *LineFailure         `json:"failure,omitempty"`
}

// ======================================================
// USE CASE — record battery sale
// ======================================================

type RecordBatterySale struct {
	repo  Repository
	audit *audit.Dispatcher
	tz    string
}

func NewRecordBatterySale(
	repo Repository,
	audit *audit.Dispatcher,
	tz string,
) *RecordBatterySale {
	return &RecordBatterySale{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

func (uc *RecordBatterySale) Execute(
	ctx context.Context,
	actorID uint,
	lines []Line,
	mode BatchMode,
) (*BatchResult, error) {

	// zero or negative quantities mean "not selected": skipped, not an error
	selected := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Quantity > 0 {
			selected = append(selected, l)
		}
	}
	if len(selected) == 0 {
		return nil, httperr.ErrBusiness("empty_sale")
	}

	soldAt := timezone.NowIn(uc.tz)

	var result *BatchResult
	var err error
	switch mode {
	case StopOnFirstFailure:
		result, err = uc.sellStopOnFirstFailure(ctx, selected, soldAt)
	default:
		result, err = uc.sellAllOrNothing(ctx, selected, soldAt)
	}
	if err != nil {
		// the failing line, when known, travels with the error
		return result, err
	}

	for i := range result.Sales {
		uc.audit.Dispatch(audit.Event{
			UserID:   &actorID,
			Action:   "battery_sold",
			Entity:   "battery_sale",
			EntityID: &result.Sales[i].ID,
			Metadata: map[string]any{
				"battery_id": result.Sales[i].BatteryID,
				"quantity":   result.Sales[i].Quantity,
			},
		})
	}

	return result, nil
}

// sellLine locks the battery row, checks stock and applies the
// decrement-plus-sale-record pair. Caller supplies the transaction scope.
func sellLine(
	ctx context.Context,
	tx Repository,
	l Line,
	soldAt time.Time,
) (*models.BatterySale, *LineFailure, error) {

	battery, err := tx.GetBatteryForUpdate(ctx, l.BatteryID)
	if err != nil {
		return nil, nil, err
	}
	if battery == nil {
		return nil, &LineFailure{BatteryID: l.BatteryID, Code: "not_found"}, nil
	}
	if battery.Quantity < l.Quantity {
		return nil, &LineFailure{BatteryID: l.BatteryID, Code: "insufficient_stock"}, nil
	}

	if err := tx.DecrementBatteryStock(ctx, battery.ID, l.Quantity); err != nil {
		return nil, nil, err
	}

	s := &models.BatterySale{
		BatteryID: battery.ID,
		Quantity:  l.Quantity,
		SoldAt:    soldAt,
	}
	if err := tx.CreateBatterySale(ctx, s); err != nil {
		return nil, nil, err
	}

	return s, nil, nil
}

func (uc *RecordBatterySale) sellAllOrNothing(
	ctx context.Context,
	lines []Line,
	soldAt time.Time,
) (*BatchResult, error) {

	result := &BatchResult{}

	err := uc.repo.Transaction(ctx, func(tx Repository) error {
		for _, l := range lines {
			s, failure, err := sellLine(ctx, tx, l, soldAt)
			if err != nil {
				return err
			}
			if failure != nil {
				result.Sales = nil
				result.Failure = failure
				return httperr.ErrBusiness(failure.Code)
			}
			result.Sales = append(result.Sales, *s)
		}
		return nil
	})

	if err != nil {
		if result.Failure != nil {
			// stock is untouched: the transaction rolled back
			return result, err
		}
		return nil, err
	}
	return result, nil
}

func (uc *RecordBatterySale) sellStopOnFirstFailure(
	ctx context.Context,
	lines []Line,
	soldAt time.Time,
) (*BatchResult, error) {

	result := &BatchResult{}

	for _, l := range lines {
		var sold *models.BatterySale
		var failure *LineFailure

		err := uc.repo.Transaction(ctx, func(tx Repository) error {
			s, f, err := sellLine(ctx, tx, l, soldAt)
			if err != nil {
				return err
			}
			if f != nil {
				failure = f
				return httperr.ErrBusiness(f.Code)
			}
			sold = s
			return nil
		})

		if failure != nil {
			// earlier lines stay committed; report them with the failure
			result.Failure = failure
			return result, nil
		}
		if err != nil {
			return nil, err
		}
		result.Sales = append(result.Sales, *sold)
	}

	return result, nil
}
