package repository

import (
	"context"

	"gorm.io/gorm"

	"famledger/internal/model"
)

// UserRepository defines persistence operations for credentials and profiles.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	SetPasswordHash(ctx context.Context, id uint, hash string) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint, upd model.ProfileUpdate) (*model.User, error)
	ListByFamily(ctx context.Context, familyID uint) ([]model.FamilyUser, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts user. Duplicate email or username is reported as ErrEmailTaken or ErrUsernameTaken.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return translateUserConflict(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return takeOrNil[model.User](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return takeOrNil[model.User](r.db.WithContext(ctx).Where("email = ?", email))
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return takeOrNil[model.User](r.db.WithContext(ctx).Where("username = ?", username))
}

func (r *userRepository) SetPasswordHash(ctx context.Context, id uint, hash string) (*model.User, error) {
	return r.update(ctx, id, map[string]interface{}{"password_hash": hash})
}

// UpdateProfile writes only the fields present in upd. An empty update returns nil without a query.
func (r *userRepository) UpdateProfile(ctx context.Context, id uint, upd model.ProfileUpdate) (*model.User, error) {
	cols := upd.Columns()
	if len(cols) == 0 {
		return nil, nil
	}
	user, err := r.update(ctx, id, cols)
	if err != nil {
		return nil, translateUserConflict(err)
	}
	return user, nil
}

func (r *userRepository) update(ctx context.Context, id uint, cols map[string]interface{}) (*model.User, error) {
	var user *model.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			return err
		}
		var err error
		user, err = takeOrNil[model.User](tx.Where("id = ?", id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) ListByFamily(ctx context.Context, familyID uint) ([]model.FamilyUser, error) {
	var users []model.FamilyUser
	err := r.db.WithContext(ctx).
		Table("users AS u").
		Select("u.id, u.name, u.email, u.username, fm.role, u.created_at").
		Joins("JOIN family_members fm ON fm.user_id = u.id").
		Where("fm.family_id = ?", familyID).
		Order("u.name ASC").
		Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
