package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "famledger/internal/errors"
	"famledger/internal/model"
)

// FamilyRepository persists families and their memberships.
type FamilyRepository interface {
	CreateWithAdmin(ctx context.Context, name string, creatorID uint) (*model.Family, error)
	ListForUser(ctx context.Context, userID uint) ([]model.FamilyWithRole, error)
	FindByID(ctx context.Context, familyID uint) (*model.Family, error)
	Membership(ctx context.Context, familyID, userID uint) (*model.FamilyMember, error)
	ListMembers(ctx context.Context, familyID uint) ([]model.Member, error)
	AddMember(ctx context.Context, familyID, userID uint, role model.Role) (*model.FamilyMember, error)
	RemoveMember(ctx context.Context, familyID, userID uint) (*model.FamilyMember, error)
	CountAdmins(ctx context.Context, familyID uint) (int64, error)
	Delete(ctx context.Context, familyID uint) (*model.Family, error)
}

type familyRepository struct {
	db *gorm.DB
}

// NewFamilyRepository creates a new family repository.
func NewFamilyRepository(db *gorm.DB) FamilyRepository {
	return &familyRepository{db: db}
}

// CreateWithAdmin inserts the family and the creator's admin membership atomically.
func (r *familyRepository) CreateWithAdmin(ctx context.Context, name string, creatorID uint) (*model.Family, error) {
	family := &model.Family{Name: name, CreatedBy: creatorID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(family).Error; err != nil {
			return err
		}
		return tx.Create(&model.FamilyMember{
			FamilyID: family.ID,
			UserID:   creatorID,
			Role:     model.RoleAdmin,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return family, nil
}

// ListForUser returns the families userID belongs to, with the user's role in each.
func (r *familyRepository) ListForUser(ctx context.Context, userID uint) ([]model.FamilyWithRole, error) {
	var families []model.FamilyWithRole
	err := r.db.WithContext(ctx).
		Table("families AS f").
		Select("f.*, fm.role").
		Joins("JOIN family_members fm ON fm.family_id = f.id").
		Where("fm.user_id = ?", userID).
		Order("f.created_at DESC").
		Scan(&families).Error
	if err != nil {
		return nil, err
	}
	return families, nil
}

func (r *familyRepository) FindByID(ctx context.Context, familyID uint) (*model.Family, error) {
	return takeOrNil[model.Family](r.db.WithContext(ctx).Where("id = ?", familyID))
}

func (r *familyRepository) Membership(ctx context.Context, familyID, userID uint) (*model.FamilyMember, error) {
	return membership(r.db.WithContext(ctx), familyID, userID)
}

func membership(tx *gorm.DB, familyID, userID uint) (*model.FamilyMember, error) {
	return takeOrNil[model.FamilyMember](tx.Where("family_id = ? AND user_id = ?", familyID, userID))
}

func (r *familyRepository) ListMembers(ctx context.Context, familyID uint) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).
		Table("family_members AS fm").
		Select("u.id, u.name, u.email, u.username, fm.role, fm.created_at AS joined_at").
		Joins("JOIN users u ON u.id = fm.user_id").
		Where("fm.family_id = ?", familyID).
		Order("fm.created_at ASC, u.id ASC").
		Scan(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// AddMember upserts the membership; an existing (family, user) pair gets its role overwritten.
// Demoting the family's only admin fails with ErrLastAdmin.
func (r *familyRepository) AddMember(ctx context.Context, familyID, userID uint, role model.Role) (*model.FamilyMember, error) {
	var member *model.FamilyMember
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockMembership(tx, familyID, userID)
		if err != nil {
			return err
		}
		if current != nil && role != model.RoleAdmin {
			if err := keepAnAdmin(tx, current); err != nil {
				return err
			}
		}

		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "family_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role"}),
		}).Create(&model.FamilyMember{FamilyID: familyID, UserID: userID, Role: role}).Error
		if err != nil {
			return err
		}
		member, err = membership(tx, familyID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// RemoveMember deletes the membership and returns it, or nil when there was none.
// Removing the family's only admin fails with ErrLastAdmin.
func (r *familyRepository) RemoveMember(ctx context.Context, familyID, userID uint) (*model.FamilyMember, error) {
	var member *model.FamilyMember
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		member, err = lockMembership(tx, familyID, userID)
		if err != nil || member == nil {
			return err
		}
		if err := keepAnAdmin(tx, member); err != nil {
			return err
		}
		return tx.Delete(&model.FamilyMember{}, member.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// lockMembership locks the family row, serializing membership changes of one family, and
// returns userID's membership.
func lockMembership(tx *gorm.DB, familyID, userID uint) (*model.FamilyMember, error) {
	var locked model.Family
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").Where("id = ?", familyID).Take(&locked).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return membership(tx, familyID, userID)
}

// keepAnAdmin fails when current is the family's only admin.
func keepAnAdmin(tx *gorm.DB, current *model.FamilyMember) error {
	if current.Role != model.RoleAdmin {
		return nil
	}
	var admins int64
	err := tx.Model(&model.FamilyMember{}).
		Where("family_id = ? AND role = ?", current.FamilyID, model.RoleAdmin).
		Count(&admins).Error
	if err != nil {
		return err
	}
	if admins <= 1 {
		return apperrors.ErrLastAdmin
	}
	return nil
}

func (r *familyRepository) CountAdmins(ctx context.Context, familyID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.FamilyMember{}).
		Where("family_id = ? AND role = ?", familyID, model.RoleAdmin).
		Count(&n).Error
	return n, err
}

// Delete removes the family together with its ledger, custom categories and memberships.
func (r *familyRepository) Delete(ctx context.Context, familyID uint) (*model.Family, error) {
	var family *model.Family
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		family, err = takeOrNil[model.Family](tx.Where("id = ?", familyID))
		if err != nil || family == nil {
			return err
		}
		owned := []interface{}{
			&model.Expense{},
			&model.Income{},
			&model.FutureExpense{},
			&model.FamilyMember{},
		}
		for _, m := range owned {
			if err := tx.Where("family_id = ?", familyID).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("family_id = ? AND is_default = ?", familyID, false).Delete(&model.Category{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Family{}, familyID).Error
	})
	if err != nil {
		return nil, err
	}
	return family, nil
}
