package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"famledger/internal/model"
)

// FutureExpenseRepository persists recurring commitments scoped by family.
type FutureExpenseRepository interface {
	Create(ctx context.Context, fe *model.FutureExpense) error
	List(ctx context.Context, familyID uint, filter model.FutureExpenseFilter) ([]model.FutureExpenseRow, error)
	FindByID(ctx context.Context, id, familyID uint) (*model.FutureExpenseRow, error)
	Update(ctx context.Context, id, familyID uint, upd model.FutureExpenseUpdate) (*model.FutureExpenseRow, error)
	Delete(ctx context.Context, id, familyID uint) (*model.FutureExpense, error)
	ActiveMonthlyTotal(ctx context.Context, familyID uint, month string) (decimal.Decimal, error)
}

type futureExpenseRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewFutureExpenseRepository creates a new future expense repository. now decides which
// commitments are active; nil means time.Now.
func NewFutureExpenseRepository(db *gorm.DB, now func() time.Time) FutureExpenseRepository {
	if now == nil {
		now = time.Now
	}
	return &futureExpenseRepository{db: db, now: now}
}

func (r *futureExpenseRepository) currentMonth() string {
	return model.CurrentMonth(r.now())
}

func (r *futureExpenseRepository) Create(ctx context.Context, fe *model.FutureExpense) error {
	return r.db.WithContext(ctx).Create(fe).Error
}

func futureExpenseRows(tx *gorm.DB) *gorm.DB {
	return tx.Table("future_expenses AS fe").
		Select("fe.*, u.name AS user_name").
		Joins("JOIN users u ON u.id = fe.user_id")
}

func (r *futureExpenseRepository) List(ctx context.Context, familyID uint, filter model.FutureExpenseFilter) ([]model.FutureExpenseRow, error) {
	month := r.currentMonth()
	q := futureExpenseRows(r.db.WithContext(ctx)).Where("fe.family_id = ?", familyID)
	if filter.UserID != nil {
		q = q.Where("fe.user_id = ?", *filter.UserID)
	}
	if filter.ActiveOnly {
		q = q.Where("fe.end_month >= ?", month)
	}

	var rows []model.FutureExpenseRow
	if err := q.Order("fe.start_month DESC, fe.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].IsActive = rows[i].ActiveAt(month)
	}
	return rows, nil
}

func (r *futureExpenseRepository) FindByID(ctx context.Context, id, familyID uint) (*model.FutureExpenseRow, error) {
	return r.findRow(r.db.WithContext(ctx), id, familyID)
}

func (r *futureExpenseRepository) findRow(tx *gorm.DB, id, familyID uint) (*model.FutureExpenseRow, error) {
	row, err := takeOrNil[model.FutureExpenseRow](futureExpenseRows(tx).Where("fe.id = ? AND fe.family_id = ?", id, familyID))
	if err != nil || row == nil {
		return nil, err
	}
	row.IsActive = row.ActiveAt(r.currentMonth())
	return row, nil
}

func (r *futureExpenseRepository) Update(ctx context.Context, id, familyID uint, upd model.FutureExpenseUpdate) (*model.FutureExpenseRow, error) {
	cols := upd.Columns()
	if len(cols) == 0 {
		return nil, nil
	}
	var row *model.FutureExpenseRow
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.FutureExpense{}).Where("id = ? AND family_id = ?", id, familyID).Updates(cols).Error; err != nil {
			return err
		}
		var err error
		row, err = r.findRow(tx, id, familyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *futureExpenseRepository) Delete(ctx context.Context, id, familyID uint) (*model.FutureExpense, error) {
	var fe *model.FutureExpense
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		fe, err = takeOrNil[model.FutureExpense](tx.Where("id = ? AND family_id = ?", id, familyID))
		if err != nil || fe == nil {
			return err
		}
		return tx.Delete(&model.FutureExpense{}, fe.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return fe, nil
}

// ActiveMonthlyTotal sums the monthly amount of commitments still running in month.
func (r *futureExpenseRepository) ActiveMonthlyTotal(ctx context.Context, familyID uint, month string) (decimal.Decimal, error) {
	var sum sumRow
	err := r.db.WithContext(ctx).
		Model(&model.FutureExpense{}).
		Select("COALESCE(SUM(monthly_amount), 0) AS total").
		Where("family_id = ? AND end_month >= ?", familyID, month).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum.Total.Round(2), nil
}
