package repository

import (
	"context"

	"gorm.io/gorm"

	"famledger/internal/model"
)

// CategoryRepository persists default and family-scoped categories.
type CategoryRepository interface {
	List(ctx context.Context, familyID uint) ([]model.Category, error)
	FindVisible(ctx context.Context, id, familyID uint) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, id, familyID uint, upd model.CategoryUpdate) (*model.Category, error)
	Delete(ctx context.Context, id, familyID uint) (*model.Category, error)
	SeedDefaults(ctx context.Context, defaults []model.Category) (int, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// List returns the family's own categories plus the defaults, ordered by name.
func (r *categoryRepository) List(ctx context.Context, familyID uint) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).
		Where("family_id = ? OR is_default = ?", familyID, true).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// FindVisible returns the category if familyID may use it.
func (r *categoryRepository) FindVisible(ctx context.Context, id, familyID uint) (*model.Category, error) {
	return takeOrNil[model.Category](r.db.WithContext(ctx).
		Where("id = ? AND (family_id = ? OR is_default = ?)", id, familyID, true))
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// editable scopes tx to a custom category of the family. Defaults never match.
func editable(tx *gorm.DB, id, familyID uint) *gorm.DB {
	return tx.Where("id = ? AND family_id = ? AND is_default = ?", id, familyID, false)
}

func (r *categoryRepository) Update(ctx context.Context, id, familyID uint, upd model.CategoryUpdate) (*model.Category, error) {
	cols := upd.Columns()
	if len(cols) == 0 {
		return nil, nil
	}
	var category *model.Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		category, err = takeOrNil[model.Category](editable(tx, id, familyID))
		if err != nil || category == nil {
			return err
		}
		if err := tx.Model(&model.Category{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			return err
		}
		category, err = takeOrNil[model.Category](tx.Where("id = ?", id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a custom category and detaches the expenses that used it.
func (r *categoryRepository) Delete(ctx context.Context, id, familyID uint) (*model.Category, error) {
	var category *model.Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		category, err = takeOrNil[model.Category](editable(tx, id, familyID))
		if err != nil || category == nil {
			return err
		}
		err = tx.Model(&model.Expense{}).
			Where("category_id = ? AND family_id = ?", id, familyID).
			Update("category_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Delete(&model.Category{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// SeedDefaults inserts the default categories that do not exist yet and reports how many were added.
func (r *categoryRepository) SeedDefaults(ctx context.Context, defaults []model.Category) (int, error) {
	created := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, d := range defaults {
			existing, err := takeOrNil[model.Category](tx.Where("name = ? AND is_default = ?", d.Name, true))
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}
			category := model.Category{Name: d.Name, Color: d.Color, IsDefault: true}
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
