package repository

import (
	"context"

	"gorm.io/gorm"

	"famledger/internal/db"
	"famledger/internal/model"
)

// ExpenseRepository persists expenses. Every query is scoped by family id.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	List(ctx context.Context, familyID uint, filter model.ExpenseFilter) ([]model.ExpenseRow, error)
	FindByID(ctx context.Context, id, familyID uint) (*model.ExpenseRow, error)
	Update(ctx context.Context, id, familyID uint, upd model.ExpenseUpdate) (*model.ExpenseRow, error)
	Delete(ctx context.Context, id, familyID uint) (*model.Expense, error)
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository.
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func expenseRows(tx *gorm.DB) *gorm.DB {
	return tx.Table("expenses AS e").
		Select("e.*, u.name AS user_name, c.name AS category_name, c.color AS category_color").
		Joins("JOIN users u ON u.id = e.user_id").
		Joins("LEFT JOIN categories c ON c.id = e.category_id")
}

func (r *expenseRepository) List(ctx context.Context, familyID uint, filter model.ExpenseFilter) ([]model.ExpenseRow, error) {
	tx := r.db.WithContext(ctx)
	q := expenseRows(tx).Where("e.family_id = ?", familyID)
	if filter.UserID != nil {
		q = q.Where("e.user_id = ?", *filter.UserID)
	}
	if filter.CategoryID != nil {
		q = q.Where("e.category_id = ?", *filter.CategoryID)
	}
	if filter.StartDate != nil {
		q = q.Where("e.date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("e.date <= ?", *filter.EndDate)
	}
	if filter.Search != "" {
		d := db.DialectOf(tx)
		term := db.Contains(filter.Search)
		q = q.Where("("+d.ILike("e.note")+" OR "+d.ILike(d.Text("e.amount"))+")", term, term)
	}

	var rows []model.ExpenseRow
	if err := q.Order("e.date DESC, e.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *expenseRepository) FindByID(ctx context.Context, id, familyID uint) (*model.ExpenseRow, error) {
	return findExpenseRow(r.db.WithContext(ctx), id, familyID)
}

func findExpenseRow(tx *gorm.DB, id, familyID uint) (*model.ExpenseRow, error) {
	return takeOrNil[model.ExpenseRow](expenseRows(tx).Where("e.id = ? AND e.family_id = ?", id, familyID))
}

// Update writes only the fields present in upd and returns the updated row, or nil when the
// expense is not in the family or upd is empty.
func (r *expenseRepository) Update(ctx context.Context, id, familyID uint, upd model.ExpenseUpdate) (*model.ExpenseRow, error) {
	cols := upd.Columns()
	if len(cols) == 0 {
		return nil, nil
	}
	var row *model.ExpenseRow
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Expense{}).Where("id = ? AND family_id = ?", id, familyID).Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		var err error
		row, err = findExpenseRow(tx, id, familyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *expenseRepository) Delete(ctx context.Context, id, familyID uint) (*model.Expense, error) {
	var expense *model.Expense
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		expense, err = takeOrNil[model.Expense](tx.Where("id = ? AND family_id = ?", id, familyID))
		if err != nil || expense == nil {
			return err
		}
		return tx.Delete(&model.Expense{}, expense.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}
