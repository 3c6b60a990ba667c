package client

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RelojeriaCentral/taller-api/internal/audit"
	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/validation"
)

type fakeClientRepo struct {
	clients map[uint]*models.Client
	nextID  uint
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[uint]*models.Client{}, nextID: 1}
}

func (f *fakeClientRepo) DuplicateTripleExists(
	_ context.Context,
	name, surname, phone string,
	excludeID uint,
) (bool, error) {
	for _, c := range f.clients {
		if c.ID == excludeID {
			continue
		}
		if strings.EqualFold(c.Name, name) &&
			strings.EqualFold(c.Surname, surname) &&
			c.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeClientRepo) GetByID(_ context.Context, id uint) (*models.Client, error) {
	if c, ok := f.clients[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeClientRepo) Create(_ context.Context, c *models.Client) error {
	c.ID = f.nextID
	f.nextID++
	cp := *c
	f.clients[c.ID] = &cp
	return nil
}

func (f *fakeClientRepo) Update(_ context.Context, c *models.Client) error {
	cp := *c
	f.clients[c.ID] = &cp
	return nil
}

var _ Repository = (*fakeClientRepo)(nil)

func TestCreateClient(t *testing.T) {
	repo := newFakeClientRepo()
	uc := NewSaveClient(repo, audit.Discard())

	c, err := uc.Create(context.Background(), 1, Input{
		Name:    "Juan",
		Surname: "Pérez",
		Phone:   "3001234567",
	})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
}

func TestCreateClientTrimsInput(t *testing.T) {
	repo := newFakeClientRepo()
	uc := NewSaveClient(repo, audit.Discard())

	c, err := uc.Create(context.Background(), 1, Input{
		Name:    "  Juan ",
		Surname: " Pérez",
		Phone:   "3001234567 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Juan", c.Name)
	assert.Equal(t, "Pérez", c.Surname)
}

func TestCreateClientCollectsFieldErrors(t *testing.T) {
	repo := newFakeClientRepo()
	uc := NewSaveClient(repo, audit.Discard())

	_, err := uc.Create(context.Background(), 1, Input{
		Name:    "",
		Surname: "P3rez",
		Phone:   "300123",
	})

	ve, ok := httperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, validation.CodeRequired, ve.Fields["name"])
	assert.Equal(t, validation.CodeInvalidFormat, ve.Fields["surname"])
	assert.Equal(t, validation.CodeInvalidFormat, ve.Fields["phone"])
}

func TestCreateClientDuplicateIsCaseInsensitive(t *testing.T) {
	repo := newFakeClientRepo()
	uc := NewSaveClient(repo, audit.Discard())

	_, err := uc.Create(context.Background(), 1, Input{
		Name:    "Juan",
		Surname: "Pérez",
		Phone:   "3001234567",
	})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), 1, Input{
		Name:    "JUAN",
		Surname: "PÉREZ",
		Phone:   "3001234567",
	})

	ve, ok := httperr.AsValidation(err)
	require.True(t, ok)
	// the duplicate belongs to the record, not to one field
	assert.Equal(t, validation.CodeDuplicateKey, ve.Fields[validation.FormField])
}

func TestUpdateClientExcludesItselfFromDuplicateCheck(t *testing.T) {
	repo := newFakeClientRepo()
	uc := NewSaveClient(repo, audit.Discard())

	c, err := uc.Create(context.Background(), 1, Input{
		Name:    "Juan",
		Surname: "Pérez",
		Phone:   "3001234567",
	})
	require.NoError(t, err)

	// unchanged triple on the same record is not a duplicate
	updated, err := uc.Update(context.Background(), 1, c.ID, Input{
		Name:    "Juan",
		Surname: "Pérez",
		Phone:   "3001234567",
	})
	require.NoError(t, err)
	assert.Equal(t, c.ID, updated.ID)
}

func TestUpdateClientNotFound(t *testing.T) {
	repo := newFakeClientRepo()
	uc := NewSaveClient(repo, audit.Discard())

	_, err := uc.Update(context.Background(), 1, 99, Input{
		Name:    "Juan",
		Surname: "Pérez",
		Phone:   "3001234567",
	})
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))
}

func TestCreateClientNameTooLong(t *testing.T) {
	repo := newFakeClientRepo()
	uc := NewSaveClient(repo, audit.Discard())

	_, err := uc.Create(context.Background(), 1, Input{
		Name:    strings.Repeat("a", NameMax+1),
		Surname: "Pérez",
		Phone:   "3001234567",
	})

	ve, ok := httperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, validation.CodeOutOfRange, ve.Fields["name"])
}
