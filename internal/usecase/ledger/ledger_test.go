package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RelojeriaCentral/taller-api/internal/audit"
	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/timezone"
	"github.com/RelojeriaCentral/taller-api/internal/validation"
)

// ======================================================
// Fakes
// ======================================================

type fakeStaging struct {
	entries map[string]Entry
}

func newFakeStaging() *fakeStaging {
	return &fakeStaging{entries: map[string]Entry{}}
}

func (f *fakeStaging) Put(_ context.Context, key string, e Entry, _ time.Duration) error {
	f.entries[key] = e
	return nil
}

func (f *fakeStaging) Get(_ context.Context, key string) (*Entry, error) {
	if e, ok := f.entries[key]; ok {
		return &e, nil
	}
	return nil, nil
}

func (f *fakeStaging) Delete(_ context.Context, key string) error {
	delete(f.entries, key)
	return nil
}

var _ StagingStore = (*fakeStaging)(nil)

type fakeLedgerRepo struct {
	incomes  []models.Income
	expenses []models.Expense
	nextID   uint
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{nextID: 1}
}

func (f *fakeLedgerRepo) CreateIncome(_ context.Context, in *models.Income) error {
	in.ID = f.nextID
	f.nextID++
	f.incomes = append(f.incomes, *in)
	return nil
}

func (f *fakeLedgerRepo) CreateExpense(_ context.Context, ex *models.Expense) error {
	ex.ID = f.nextID
	f.nextID++
	f.expenses = append(f.expenses, *ex)
	return nil
}

func (f *fakeLedgerRepo) IncomesInRange(_ context.Context, start, end time.Time) ([]models.Income, error) {
	var out []models.Income
	for _, in := range f.incomes {
		if !in.Date.Before(start) && !in.Date.After(end) {
			out = append(out, in)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) IncomeTotalInRange(ctx context.Context, start, end time.Time) (int64, error) {
	rows, _ := f.IncomesInRange(ctx, start, end)
	var total int64
	for _, r := range rows {
		total += r.Value
	}
	return total, nil
}

func (f *fakeLedgerRepo) ExpensesInRange(_ context.Context, start, end time.Time) ([]models.Expense, error) {
	var out []models.Expense
	for _, ex := range f.expenses {
		if !ex.Date.Before(start) && !ex.Date.After(end) {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) ExpenseTotalInRange(ctx context.Context, start, end time.Time) (int64, error) {
	rows, _ := f.ExpensesInRange(ctx, start, end)
	var total int64
	for _, r := range rows {
		total += r.Value
	}
	return total, nil
}

var _ Repository = (*fakeLedgerRepo)(nil)

// ======================================================
// Fixtures
// ======================================================

const tz = "America/Bogota"

func newLedger(repo Repository, staging StagingStore) *Ledger {
	return New(repo, staging, audit.Discard(), tz)
}

func todayStr() string {
	return timezone.Today(tz).Format(DateFormat)
}

func validIncome() Entry {
	return Entry{
		Kind:        KindIncome,
		Date:        todayStr(),
		Value:       50000,
		Description: "Venta de correa",
	}
}

// ======================================================
// STAGE / CONFIRM / DISCARD
// ======================================================

func TestStageAndConfirmIncome(t *testing.T) {
	repo := newFakeLedgerRepo()
	staging := newFakeStaging()
	uc := newLedger(repo, staging)

	_, err := uc.Stage(context.Background(), 1, validIncome())
	require.NoError(t, err)
	assert.Empty(t, repo.incomes, "stage must not write the row")

	created, err := uc.Confirm(context.Background(), 1, KindIncome)
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Len(t, repo.incomes, 1)
	assert.Equal(t, int64(50000), repo.incomes[0].Value)

	// confirm burns the draft
	_, err = uc.Confirm(context.Background(), 1, KindIncome)
	assert.True(t, httperr.IsBusiness(err, "nothing_staged"))
}

func TestConfirmWithoutStage(t *testing.T) {
	uc := newLedger(newFakeLedgerRepo(), newFakeStaging())

	_, err := uc.Confirm(context.Background(), 1, KindExpense)
	assert.True(t, httperr.IsBusiness(err, "nothing_staged"))
}

func TestDiscardDropsDraft(t *testing.T) {
	repo := newFakeLedgerRepo()
	staging := newFakeStaging()
	uc := newLedger(repo, staging)

	_, err := uc.Stage(context.Background(), 1, validIncome())
	require.NoError(t, err)

	require.NoError(t, uc.Discard(context.Background(), 1, KindIncome))

	_, err = uc.Confirm(context.Background(), 1, KindIncome)
	assert.True(t, httperr.IsBusiness(err, "nothing_staged"))
	assert.Empty(t, repo.incomes)
}

func TestStagingIsPerUserAndKind(t *testing.T) {
	repo := newFakeLedgerRepo()
	staging := newFakeStaging()
	uc := newLedger(repo, staging)

	_, err := uc.Stage(context.Background(), 1, validIncome())
	require.NoError(t, err)

	// a different user has no draft
	staged, err := uc.Staged(context.Background(), 2, KindIncome)
	require.NoError(t, err)
	assert.Nil(t, staged)

	// same user, other kind: also empty
	staged, err = uc.Staged(context.Background(), 1, KindExpense)
	require.NoError(t, err)
	assert.Nil(t, staged)
}

// ======================================================
// Validation
// ======================================================

func TestStageRejectsFutureDate(t *testing.T) {
	uc := newLedger(newFakeLedgerRepo(), newFakeStaging())

	e := validIncome()
	e.Date = timezone.Today(tz).AddDate(0, 0, 1).Format(DateFormat)

	_, err := uc.Stage(context.Background(), 1, e)
	ve, ok := httperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, validation.CodeInvalidDate, ve.Fields["date"])
}

func TestStageBackdateWindow(t *testing.T) {
	uc := newLedger(newFakeLedgerRepo(), newFakeStaging())

	e := validIncome()
	e.Date = timezone.Today(tz).AddDate(0, 0, -BackdateDays).Format(DateFormat)
	_, err := uc.Stage(context.Background(), 1, e)
	assert.NoError(t, err, "exactly a week back is allowed")

	e.Date = timezone.Today(tz).AddDate(0, 0, -BackdateDays-1).Format(DateFormat)
	_, err = uc.Stage(context.Background(), 1, e)
	ve, ok := httperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, validation.CodeInvalidDate, ve.Fields["date"])
}

func TestStageRejectsNonPositiveValue(t *testing.T) {
	uc := newLedger(newFakeLedgerRepo(), newFakeStaging())

	e := validIncome()
	e.Value = 0

	_, err := uc.Stage(context.Background(), 1, e)
	ve, ok := httperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, validation.CodeOutOfRange, ve.Fields["value"])
}

func TestExpenseDescriptionLimitIsWider(t *testing.T) {
	uc := newLedger(newFakeLedgerRepo(), newFakeStaging())

	long := make([]rune, ExpenseDescriptionMax)
	for i := range long {
		long[i] = 'x'
	}

	e := Entry{
		Kind:        KindExpense,
		Date:        todayStr(),
		Value:       1000,
		Description: string(long), // 110: fine for expenses
	}
	_, err := uc.Stage(context.Background(), 1, e)
	assert.NoError(t, err)

	e.Kind = KindIncome // same text exceeds the income limit
	_, err = uc.Stage(context.Background(), 1, e)
	ve, ok := httperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, validation.CodeOutOfRange, ve.Fields["description"])
}

// ======================================================
// Range queries
// ======================================================

func TestIncomeRange(t *testing.T) {
	repo := newFakeLedgerRepo()
	uc := newLedger(repo, newFakeStaging())

	loc := timezone.Location(tz)
	day := func(d int) time.Time {
		return time.Date(2026, 5, d, 0, 0, 0, 0, loc)
	}
	repo.incomes = []models.Income{
		{ID: 1, Date: day(1), Value: 100},
		{ID: 2, Date: day(3), Value: 200},
		{ID: 3, Date: day(9), Value: 400},
	}

	report, err := uc.IncomeRange(context.Background(), "2026-05-01", "2026-05-05")
	require.NoError(t, err)
	assert.Len(t, report.Incomes, 2)
	assert.Equal(t, int64(300), report.Total)
}

func TestIncomeRangeRejectsInvertedRange(t *testing.T) {
	uc := newLedger(newFakeLedgerRepo(), newFakeStaging())

	_, err := uc.IncomeRange(context.Background(), "2026-05-05", "2026-05-01")
	assert.True(t, httperr.IsBusiness(err, "invalid_date_range"))

	_, err = uc.IncomeRange(context.Background(), "bad", "2026-05-01")
	assert.True(t, httperr.IsBusiness(err, "invalid_date_range"))
}

func TestIncomeTotalForDay(t *testing.T) {
	repo := newFakeLedgerRepo()
	uc := newLedger(repo, newFakeStaging())

	today := timezone.Today(tz)
	repo.incomes = []models.Income{
		{ID: 1, Date: today, Value: 100},
		{ID: 2, Date: today, Value: 250},
		{ID: 3, Date: today.AddDate(0, 0, -1), Value: 999},
	}

	total, err := uc.IncomeTotalForDay(context.Background(), timezone.NowIn(tz))
	require.NoError(t, err)
	assert.Equal(t, int64(350), total)
}
