package repair

import (
	"context"
	"sort"

	domain "github.com/RelojeriaCentral/taller-api/internal/domain/repair"
	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/pagination"
)

// ======================================================
// USE CASE — list / search repair orders
// ======================================================

const PageSize = 10

type ListRepairOrders struct {
	repo domain.Repository
}

func NewListRepairOrders(repo domain.Repository) *ListRepairOrders {
	return &ListRepairOrders{repo: repo}
}

type ListResult struct {
	Orders []models.RepairOrder
	Total  int64
}

// Execute filters by substring across order code, client name/phone,
// technician name and description, orders by workshop progression
// (status ordinal, order code as tie-break) and slices the page.
func (uc *ListRepairOrders) Execute(
	ctx context.Context,
	query string,
	page pagination.Params,
) (*ListResult, error) {

	orders, err := uc.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(orders, func(i, j int) bool {
		oi := domain.Status(orders[i].Status).Ordinal()
		oj := domain.Status(orders[j].Status).Ordinal()
		if oi != oj {
			return oi < oj
		}
		return orders[i].OrderCode < orders[j].OrderCode
	})

	total := int64(len(orders))
	return &ListResult{
		Orders: pagination.Slice(orders, page),
		Total:  total,
	}, nil
}
