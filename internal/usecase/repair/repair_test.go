package repair

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RelojeriaCentral/taller-api/internal/audit"
	domain "github.com/RelojeriaCentral/taller-api/internal/domain/repair"
	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/pagination"
	"github.com/RelojeriaCentral/taller-api/internal/validation"
)

// ======================================================
// In-memory fake of the repository port
// ======================================================

type fakeRepairRepo struct {
	clients     map[uint]bool
	technicians map[uint]*models.Employee
	orders      map[uint]*models.RepairOrder
	nextID      uint
}

func newFakeRepairRepo() *fakeRepairRepo {
	return &fakeRepairRepo{
		clients:     map[uint]bool{},
		technicians: map[uint]*models.Employee{},
		orders:      map[uint]*models.RepairOrder{},
		nextID:      1,
	}
}

func (f *fakeRepairRepo) ClientExists(_ context.Context, id uint) (bool, error) {
	return f.clients[id], nil
}

func (f *fakeRepairRepo) GetTechnician(_ context.Context, id uint) (*models.Employee, error) {
	return f.technicians[id], nil
}

func (f *fakeRepairRepo) OrderCodeExists(_ context.Context, code string, excludeID uint) (bool, error) {
	for _, o := range f.orders {
		if o.OrderCode == code && o.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepairRepo) GetByID(_ context.Context, id uint) (*models.RepairOrder, error) {
	if o, ok := f.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepairRepo) Create(_ context.Context, order *models.RepairOrder) error {
	order.ID = f.nextID
	f.nextID++
	cp := *order
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeRepairRepo) Update(_ context.Context, order *models.RepairOrder) error {
	cp := *order
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeRepairRepo) Search(_ context.Context, query string) ([]models.RepairOrder, error) {
	var out []models.RepairOrder
	for _, o := range f.orders {
		if query == "" || strings.Contains(o.OrderCode, query) ||
			strings.Contains(strings.ToLower(o.Description), strings.ToLower(query)) {
			out = append(out, *o)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepairRepo)(nil)

// ======================================================
// Fixtures
// ======================================================

const tz = "America/Bogota"

func seededRepo() *fakeRepairRepo {
	repo := newFakeRepairRepo()
	repo.clients[1] = true
	repo.technicians[2] = &models.Employee{
		ID:     2,
		Role:   models.RoleTechnician,
		Status: models.EmployeeActive,
	}
	return repo
}

func validOrderInput() domain.Input {
	return domain.Input{
		ClientID:          1,
		TechnicianID:      2,
		WatchBrand:        "Orient",
		Description:       "Limpieza general y cambio de empaque",
		OrderCode:         "2001",
		EstimatedDelivery: "2100-01-15",
		Price:             60000,
		Location:          "Caja 12",
	}
}

// ======================================================
// CREATE
// ======================================================

func TestCreateRepairOrder(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateRepairOrder(repo, audit.Discard(), tz)

	order, err := uc.Execute(context.Background(), 1, validOrderInput())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusQuoted), order.Status)
	assert.False(t, order.IngressDate.IsZero())
	assert.False(t, order.EstimatedDelivery.IsZero())
	assert.NotZero(t, order.ID)
}

func TestCreateRepairOrderUnknownClient(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateRepairOrder(repo, audit.Discard(), tz)

	in := validOrderInput()
	in.ClientID = 99

	_, err := uc.Execute(context.Background(), 1, in)

	ve, ok := httperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, validation.CodeNotFound, ve.Fields["client_id"])
}

func TestCreateRepairOrderTechnicianMustBeActiveTechnician(t *testing.T) {
	repo := seededRepo()
	repo.technicians[3] = &models.Employee{
		ID:     3,
		Role:   models.RoleSecretary,
		Status: models.EmployeeActive,
	}
	repo.technicians[4] = &models.Employee{
		ID:     4,
		Role:   models.RoleTechnician,
		Status: models.EmployeeInactive,
	}
	uc := NewCreateRepairOrder(repo, audit.Discard(), tz)

	for _, id := range []uint{3, 4} {
		in := validOrderInput()
		in.TechnicianID = id

		_, err := uc.Execute(context.Background(), 1, in)

		ve, ok := httperr.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, validation.CodeNotFound, ve.Fields["technician_id"])
	}
}

func TestCreateRepairOrderDuplicateCode(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateRepairOrder(repo, audit.Discard(), tz)

	_, err := uc.Execute(context.Background(), 1, validOrderInput())
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), 1, validOrderInput())
	ve, ok := httperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, validation.CodeDuplicateKey, ve.Fields["order_code"])
}

func TestCreateRepairOrderCollectsStructuralAndStoreErrors(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateRepairOrder(repo, audit.Discard(), tz)

	_, err := uc.Execute(context.Background(), 1, validOrderInput())
	require.NoError(t, err)

	in := validOrderInput()
	in.Description = "corta" // structural failure
	// order code collides with the first order: store failure

	_, err = uc.Execute(context.Background(), 1, in)
	ve, ok := httperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, validation.CodeOutOfRange, ve.Fields["description"])
	assert.Equal(t, validation.CodeDuplicateKey, ve.Fields["order_code"])
}

// ======================================================
// UPDATE
// ======================================================

func TestUpdateRepairOrderKeepsOwnCode(t *testing.T) {
	repo := seededRepo()
	createUC := NewCreateRepairOrder(repo, audit.Discard(), tz)
	updateUC := NewUpdateRepairOrder(repo, audit.Discard(), tz)

	order, err := createUC.Execute(context.Background(), 1, validOrderInput())
	require.NoError(t, err)

	// same code, new price: must not trip the duplicate check
	in := validOrderInput()
	in.Price = 80000

	updated, err := updateUC.Execute(context.Background(), 1, order.ID, in)
	require.NoError(t, err)
	assert.Equal(t, int64(80000), updated.Price)
	assert.Equal(t, order.OrderCode, updated.OrderCode)
}

func TestUpdateRepairOrderIngressDateImmutable(t *testing.T) {
	repo := seededRepo()
	createUC := NewCreateRepairOrder(repo, audit.Discard(), tz)
	updateUC := NewUpdateRepairOrder(repo, audit.Discard(), tz)

	order, err := createUC.Execute(context.Background(), 1, validOrderInput())
	require.NoError(t, err)

	updated, err := updateUC.Execute(context.Background(), 1, order.ID, validOrderInput())
	require.NoError(t, err)
	assert.Equal(t, order.IngressDate, updated.IngressDate)
}

func TestUpdateRepairOrderNotFound(t *testing.T) {
	repo := seededRepo()
	uc := NewUpdateRepairOrder(repo, audit.Discard(), tz)

	_, err := uc.Execute(context.Background(), 1, 999, validOrderInput())
	assert.True(t, httperr.IsBusiness(err, "repair_order_not_found"))
}

// ======================================================
// LIST
// ======================================================

func TestListRepairOrdersOrdering(t *testing.T) {
	repo := seededRepo()
	createUC := NewCreateRepairOrder(repo, audit.Discard(), tz)
	listUC := NewListRepairOrders(repo)

	type seed struct {
		code   string
		status domain.Status
	}
	// insertion order deliberately scrambled
	for _, s := range []seed{
		{"3001", domain.StatusDelivered},
		{"1001", domain.StatusInRepair},
		{"2001", domain.StatusQuoted},
		{"1002", domain.StatusInRepair},
	} {
		in := validOrderInput()
		in.OrderCode = s.code
		in.Status = string(s.status)
		_, err := createUC.Execute(context.Background(), 1, in)
		require.NoError(t, err)
	}

	result, err := listUC.Execute(context.Background(), "", pagination.Params{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, result.Orders, 4)

	var got []string
	for _, o := range result.Orders {
		got = append(got, o.OrderCode)
	}
	// status ordinal first, order code as tie-break
	assert.Equal(t, []string{"2001", "1001", "1002", "3001"}, got)
}

func TestListRepairOrdersPagination(t *testing.T) {
	repo := seededRepo()
	createUC := NewCreateRepairOrder(repo, audit.Discard(), tz)
	listUC := NewListRepairOrders(repo)

	for _, code := range []string{"1", "2", "3"} {
		in := validOrderInput()
		in.OrderCode = code
		_, err := createUC.Execute(context.Background(), 1, in)
		require.NoError(t, err)
	}

	result, err := listUC.Execute(context.Background(), "", pagination.Params{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Total)
	assert.Len(t, result.Orders, 1)
}
