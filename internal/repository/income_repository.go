package repository

import (
	"context"

	"gorm.io/gorm"

	"famledger/internal/db"
	"famledger/internal/model"
)

// IncomeRepository persists monthly income entries scoped by family.
type IncomeRepository interface {
	Create(ctx context.Context, income *model.Income) error
	List(ctx context.Context, familyID uint, filter model.IncomeFilter) ([]model.IncomeRow, error)
	FindByID(ctx context.Context, id, familyID uint) (*model.IncomeRow, error)
	Update(ctx context.Context, id, familyID uint, upd model.IncomeUpdate) (*model.IncomeRow, error)
	Delete(ctx context.Context, id, familyID uint) (*model.Income, error)
}

type incomeRepository struct {
	db *gorm.DB
}

// NewIncomeRepository creates a new income repository.
func NewIncomeRepository(db *gorm.DB) IncomeRepository {
	return &incomeRepository{db: db}
}

func (r *incomeRepository) Create(ctx context.Context, income *model.Income) error {
	return r.db.WithContext(ctx).Create(income).Error
}

func incomeRows(tx *gorm.DB) *gorm.DB {
	return tx.Table("income AS i").
		Select("i.*, u.name AS user_name").
		Joins("JOIN users u ON u.id = i.user_id")
}

func (r *incomeRepository) List(ctx context.Context, familyID uint, filter model.IncomeFilter) ([]model.IncomeRow, error) {
	tx := r.db.WithContext(ctx)
	q := incomeRows(tx).Where("i.family_id = ?", familyID)
	if filter.Month != "" {
		q = q.Where("i.month = ?", filter.Month)
	}
	if filter.Source != "" {
		q = q.Where(db.DialectOf(tx).ILike("i.source"), db.Contains(filter.Source))
	}
	if filter.UserID != nil {
		q = q.Where("i.user_id = ?", *filter.UserID)
	}

	var rows []model.IncomeRow
	if err := q.Order("i.month DESC, i.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *incomeRepository) FindByID(ctx context.Context, id, familyID uint) (*model.IncomeRow, error) {
	return findIncomeRow(r.db.WithContext(ctx), id, familyID)
}

func findIncomeRow(tx *gorm.DB, id, familyID uint) (*model.IncomeRow, error) {
	return takeOrNil[model.IncomeRow](incomeRows(tx).Where("i.id = ? AND i.family_id = ?", id, familyID))
}

func (r *incomeRepository) Update(ctx context.Context, id, familyID uint, upd model.IncomeUpdate) (*model.IncomeRow, error) {
	cols := upd.Columns()
	if len(cols) == 0 {
		return nil, nil
	}
	var row *model.IncomeRow
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Income{}).Where("id = ? AND family_id = ?", id, familyID).Updates(cols).Error; err != nil {
			return err
		}
		var err error
		row, err = findIncomeRow(tx, id, familyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *incomeRepository) Delete(ctx context.Context, id, familyID uint) (*model.Income, error) {
	var income *model.Income
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		income, err = takeOrNil[model.Income](tx.Where("id = ? AND family_id = ?", id, familyID))
		if err != nil || income == nil {
			return err
		}
		return tx.Delete(&model.Income{}, income.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return income, nil
}
