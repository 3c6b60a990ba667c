package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/RelojeriaCentral/taller-api/internal/audit"
	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/timezone"
	"github.com/RelojeriaCentral/taller-api/internal/validation"
)

// Bookkeeping entries go through a two-step flow: the form is validated and
// staged per user session, then a second request confirms (writes) or
// discards it, mirroring the confirm screen of the front office.

type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"

	IncomeDescriptionMax  = 100
	ExpenseDescriptionMax = 110

	// entries may be backdated up to a week, never future-dated
	BackdateDays = 7

	DateFormat = "2006-01-02"

	StagingTTL = 30 * time.Minute
)

type Entry struct {
	Kind        Kind   `json:"kind"`
	Date        string `json:"date"`
	Value       int64  `json:"value"`
	Description string `json:"description"`
}

// StagingStore holds a draft entry per (kind, session) until it is
// confirmed or discarded.
type StagingStore interface {
	Put(ctx context.Context, key string, e Entry, ttl time.Duration) error
	Get(ctx context.Context, key string) (*Entry, error)
	Delete(ctx context.Context, key string) error
}

type Repository interface {
	CreateIncome(ctx context.Context, in *models.Income) error
	CreateExpense(ctx context.Context, ex *models.Expense) error

	IncomesInRange(ctx context.Context, start, end time.Time) ([]models.Income, error)
	IncomeTotalInRange(ctx context.Context, start, end time.Time) (int64, error)
	ExpensesInRange(ctx context.Context, start, end time.Time) ([]models.Expense, error)
	ExpenseTotalInRange(ctx context.Context, start, end time.Time) (int64, error)
}

// ======================================================
// USE CASE — stage / confirm / discard
// ======================================================

type Ledger struct {
	repo    Repository
	staging StagingStore
	audit   *audit.Dispatcher
	tz      string
}

func New(
	repo Repository,
	staging StagingStore,
	audit *audit.Dispatcher,
	tz string,
) *Ledger {
	return &Ledger{
		repo:    repo,
		staging: staging,
		audit:   audit,
		tz:      tz,
	}
}

func stagingKey(kind Kind, sessionID uint) string {
	return fmt.Sprintf("ledger:%s:%d", kind, sessionID)
}

// Stage validates the entry and parks it for the session.
func (uc *Ledger) Stage(
	ctx context.Context,
	userID uint,
	e Entry,
) (*Entry, error) {

	e.Description = strings.TrimSpace(e.Description)
	if _, err := uc.validate(e); err != nil {
		return nil, err
	}

	if err := uc.staging.Put(ctx, stagingKey(e.Kind, userID), e, StagingTTL); err != nil {
		return nil, err
	}
	return &e, nil
}

// Confirm writes the staged entry and clears the draft. Both the entry
// having expired and it never having been staged surface the same way.
func (uc *Ledger) Confirm(
	ctx context.Context,
	userID uint,
	kind Kind,
) (any, error) {

	key := stagingKey(kind, userID)
	e, err := uc.staging.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, httperr.ErrBusiness("nothing_staged")
	}

	date, err := uc.validate(*e)
	if err != nil {
		return nil, err
	}

	var created any
	var entityID uint
	switch kind {
	case KindIncome:
		row := &models.Income{Date: date, Value: e.Value, Description: e.Description}
		if err := uc.repo.CreateIncome(ctx, row); err != nil {
			return nil, err
		}
		created, entityID = row, row.ID
	case KindExpense:
		row := &models.Expense{Date: date, Value: e.Value, Description: e.Description}
		if err := uc.repo.CreateExpense(ctx, row); err != nil {
			return nil, err
		}
		created, entityID = row, row.ID
	default:
		return nil, httperr.ErrBusiness("unknown_ledger_kind")
	}

	if err := uc.staging.Delete(ctx, key); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   string(kind) + "_recorded",
		Entity:   string(kind),
		EntityID: &entityID,
	})

	return created, nil
}

func (uc *Ledger) Discard(ctx context.Context, userID uint, kind Kind) error {
	return uc.staging.Delete(ctx, stagingKey(kind, userID))
}

func (uc *Ledger) Staged(ctx context.Context, userID uint, kind Kind) (*Entry, error) {
	return uc.staging.Get(ctx, stagingKey(kind, userID))
}

func (uc *Ledger) validate(e Entry) (time.Time, error) {
	errs := validation.New()

	if e.Kind != KindIncome && e.Kind != KindExpense {
		errs.Add("kind", validation.CodeInvalidFormat)
	}

	var date time.Time
	today := timezone.Today(uc.tz)
	if e.Date == "" {
		errs.Add("date", validation.CodeRequired)
	} else if parsed, err := time.ParseInLocation(DateFormat, e.Date, today.Location()); err != nil {
		errs.Add("date", validation.CodeInvalidFormat)
	} else if parsed.After(today) || parsed.Before(today.AddDate(0, 0, -BackdateDays)) {
		errs.Add("date", validation.CodeInvalidDate)
	} else {
		date = parsed
	}

	if e.Value <= 0 {
		errs.Add("value", validation.CodeOutOfRange)
	}

	max := IncomeDescriptionMax
	if e.Kind == KindExpense {
		max = ExpenseDescriptionMax
	}
	if e.Description == "" {
		errs.Add("description", validation.CodeRequired)
	} else if utf8.RuneCountInString(e.Description) > max {
		errs.Add("description", validation.CodeOutOfRange)
	}

	if !errs.Empty() {
		return date, httperr.ErrValidation(errs)
	}
	return date, nil
}

// ======================================================
// Range queries
// ======================================================

type IncomeReport struct {
	Start   time.Time       `json:"start"`
	End     time.Time       `json:"end"`
	Incomes []models.Income `json:"incomes"`
	Total   int64           `json:"total"`
}

func (uc *Ledger) IncomeRange(
	ctx context.Context,
	start, end string,
) (*IncomeReport, error) {

	loc := timezone.Location(uc.tz)
	from, err1 := time.ParseInLocation(DateFormat, start, loc)
	to, err2 := time.ParseInLocation(DateFormat, end, loc)
	if err1 != nil || err2 != nil || from.After(to) {
		return nil, httperr.ErrBusiness("invalid_date_range")
	}

	rows, err := uc.repo.IncomesInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.IncomeTotalInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &IncomeReport{Start: from, End: to, Incomes: rows, Total: total}, nil
}

func (uc *Ledger) IncomeTotalForDay(ctx context.Context, day time.Time) (int64, error) {
	start := timezone.DateOf(day)
	return uc.repo.IncomeTotalInRange(ctx, start, start)
}

type ExpenseReport struct {
	Start    time.Time        `json:"start"`
	End      time.Time        `json:"end"`
	Expenses []models.Expense `json:"expenses"`
	Total    int64            `json:"total"`
}

func (uc *Ledger) ExpenseRange(
	ctx context.Context,
	start, end string,
) (*ExpenseReport, error) {

	loc := timezone.Location(uc.tz)
	from, err1 := time.ParseInLocation(DateFormat, start, loc)
	to, err2 := time.ParseInLocation(DateFormat, end, loc)
	if err1 != nil || err2 != nil || from.After(to) {
		return nil, httperr.ErrBusiness("invalid_date_range")
	}

	rows, err := uc.repo.ExpensesInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.ExpenseTotalInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &ExpenseReport{Start: from, End: to, Expenses: rows, Total: total}, nil
}
