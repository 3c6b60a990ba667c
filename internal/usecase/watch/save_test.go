package watch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RelojeriaCentral/taller-api/internal/audit"
	domain "github.com/RelojeriaCentral/taller-api/internal/domain/watch"
	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/validation"
)

type fakeWatchRepo struct {
	watches map[uint]*models.Watch
	nextID  uint
}

func newFakeWatchRepo() *fakeWatchRepo {
	return &fakeWatchRepo{watches: map[uint]*models.Watch{}, nextID: 1}
}

func (f *fakeWatchRepo) GetByID(_ context.Context, id uint) (*models.Watch, error) {
	if w, ok := f.watches[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeWatchRepo) Create(_ context.Context, w *models.Watch) error {
	w.ID = f.nextID
	f.nextID++
	cp := *w
	f.watches[w.ID] = &cp
	return nil
}

func (f *fakeWatchRepo) Update(_ context.Context, w *models.Watch) error {
	cp := *w
	f.watches[w.ID] = &cp
	return nil
}

var _ Repository = (*fakeWatchRepo)(nil)

func validInput() domain.Input {
	return domain.Input{
		Brand:     "Casio",
		Reference: "A168",
		Price:     120000,
		Owner:     "Taller",
		Condition: domain.ConditionNew,
	}
}

func TestCreateWatchStoresFlooredCommission(t *testing.T) {
	repo := newFakeWatchRepo()
	uc := NewSaveWatch(repo, audit.Discard())

	in := validInput()
	in.Price = 99

	w, err := uc.Create(context.Background(), 1, in)
	require.NoError(t, err)
	assert.Equal(t, int64(19), w.Commission)
	assert.Equal(t, int64(19), repo.watches[w.ID].Commission)
	assert.Equal(t, domain.StatusAvailable, repo.watches[w.ID].Status)
}

func TestCreateWatchValidates(t *testing.T) {
	repo := newFakeWatchRepo()
	uc := NewSaveWatch(repo, audit.Discard())

	_, err := uc.Create(context.Background(), 1, domain.Input{})
	ve, ok := httperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, validation.CodeRequired, ve.Fields["brand"])
	assert.Equal(t, validation.CodeOutOfRange, ve.Fields["price"])
	assert.Empty(t, repo.watches)
}

func TestUpdateWatchRecomputesStoredCommission(t *testing.T) {
	repo := newFakeWatchRepo()
	uc := NewSaveWatch(repo, audit.Discard())

	created, err := uc.Create(context.Background(), 1, validInput())
	require.NoError(t, err)
	require.Equal(t, int64(24000), created.Commission)

	in := validInput()
	in.Price = 100001

	updated, err := uc.Update(context.Background(), 1, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), updated.Commission)
	assert.Equal(t, int64(20000), repo.watches[created.ID].Commission)
}

func TestUpdateWatchLeavesStatusAlone(t *testing.T) {
	repo := newFakeWatchRepo()
	uc := NewSaveWatch(repo, audit.Discard())

	clientID := uint(5)
	repo.watches[9] = &models.Watch{
		ID:        9,
		Brand:     "Seiko",
		Reference: "SNK809",
		Price:     300000,
		Owner:     "Taller",
		Condition: domain.ConditionUsed,
		Status:    domain.StatusSold,
		ClientID:  &clientID,
	}

	updated, err := uc.Update(context.Background(), 1, 9, validInput())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSold, updated.Status)
	assert.Equal(t, domain.StatusSold, repo.watches[9].Status)
}

func TestUpdateWatchNotFound(t *testing.T) {
	uc := NewSaveWatch(newFakeWatchRepo(), audit.Discard())

	_, err := uc.Update(context.Background(), 1, 404, validInput())
	var be httperr.BusinessError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "watch_not_found", be.Code)
}
