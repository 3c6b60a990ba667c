package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/usecase/ledger"
)

type LedgerGormRepository struct {
	db *gorm.DB
}

func NewLedgerGormRepository(db *gorm.DB) *LedgerGormRepository {
	return &LedgerGormRepository{db: db}
}

func (r *LedgerGormRepository) CreateIncome(
	ctx context.Context,
	in *models.Income,
) error {
	return r.db.WithContext(ctx).Create(in).Error
}

func (r *LedgerGormRepository) CreateExpense(
	ctx context.Context,
	ex *models.Expense,
) error {
	return r.db.WithContext(ctx).Create(ex).Error
}

func (r *LedgerGormRepository) IncomesInRange(
	ctx context.Context,
	start, end time.Time,
) ([]models.Income, error) {

	var rows []models.Income
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", start, end).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *LedgerGormRepository) IncomeTotalInRange(
	ctx context.Context,
	start, end time.Time,
) (int64, error) {

	var total *int64
	err := r.db.WithContext(ctx).
		Model(&models.Income{}).
		Select("SUM(value)").
		Where("date BETWEEN ? AND ?", start, end).
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

func (r *LedgerGormRepository) ExpensesInRange(
	ctx context.Context,
	start, end time.Time,
) ([]models.Expense, error) {

	var rows []models.Expense
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", start, end).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *LedgerGormRepository) ExpenseTotalInRange(
	ctx context.Context,
	start, end time.Time,
) (int64, error) {

	var total *int64
	err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Select("SUM(value)").
		Where("date BETWEEN ? AND ?", start, end).
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

// Compile-time check
var _ ledger.Repository = (*LedgerGormRepository)(nil)
