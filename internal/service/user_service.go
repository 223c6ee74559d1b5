package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"famledger/internal/cache"
	apperrors "famledger/internal/errors"
	"famledger/internal/model"
	"famledger/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes profile and password operations.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint, name, username *string) (*model.User, error)
	ChangePassword(ctx context.Context, userID uint, current, next string) error
	ResetMemberPassword(ctx context.Context, familyID, targetUserID uint) (string, error)
	ListFamilyUsers(ctx context.Context, familyID, actorID uint) ([]model.FamilyUser, error)
}

type userService struct {
	repo     repository.UserRepository
	families repository.FamilyRepository
	cache    *cache.Client
}

// NewUserService builds a UserService with repositories and cache.
func NewUserService(repo repository.UserRepository, families repository.FamilyRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, families: families, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("famledger:user:%d", id)
}

// GetUser returns the user, served from cache when possible.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if cached, ok := cache.GetJSON[model.User](ctx, s.cache, s.cacheKey(id)); ok {
		return cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	cache.SetJSON(ctx, s.cache, s.cacheKey(id), user, userCacheTTL)
	return user, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, name, username *string) (*model.User, error) {
	upd := model.ProfileUpdate{Name: trimmedOrNil(name), Username: trimmedOrNil(username)}
	if upd.Name == nil && upd.Username == nil {
		return nil, apperrors.ErrNoFieldsToUpdate
	}

	user, err := s.repo.UpdateProfile(ctx, userID, upd)
	if err != nil {
		if apperrors.IsDomain(err) {
			return nil, err
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	if current == next {
		return apperrors.ErrSamePassword
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}
	if !checkPassword(user.PasswordHash, current) {
		return apperrors.ErrIncorrectPassword
	}

	return s.setPassword(ctx, userID, next)
}

// ResetMemberPassword replaces a family member's password with a generated one and returns it.
func (s *userService) ResetMemberPassword(ctx context.Context, familyID, targetUserID uint) (string, error) {
	member, err := s.families.Membership(ctx, familyID, targetUserID)
	if err != nil {
		return "", fmt.Errorf("find membership: %w", err)
	}
	if member == nil {
		return "", apperrors.ErrMemberNotFound
	}

	temporary, err := generateTemporaryPassword()
	if err != nil {
		return "", err
	}
	if err := s.setPassword(ctx, targetUserID, temporary); err != nil {
		return "", err
	}
	return temporary, nil
}

func (s *userService) setPassword(ctx context.Context, userID uint, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	user, err := s.repo.SetPasswordHash(ctx, userID, hash)
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ListFamilyUsers lists the family's users and flags the caller.
func (s *userService) ListFamilyUsers(ctx context.Context, familyID, actorID uint) ([]model.FamilyUser, error) {
	users, err := s.repo.ListByFamily(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("list family users: %w", err)
	}
	for i := range users {
		users[i].IsCurrentUser = users[i].ID == actorID
	}
	return users, nil
}
