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

const categoryCacheTTL = 10 * time.Minute

// CategoryService manages a family's categories. Listings are cached per family.
type CategoryService interface {
	List(ctx context.Context, familyID uint) ([]model.Category, error)
	Create(ctx context.Context, familyID uint, name, color string) (*model.Category, error)
	Update(ctx context.Context, familyID, id uint, upd model.CategoryUpdate) (*model.Category, error)
	Delete(ctx context.Context, familyID, id uint) error
	Invalidate(ctx context.Context, familyID uint)
	SeedDefaults(ctx context.Context, defaults []model.Category) (int, error)
}

type categoryService struct {
	repo  repository.CategoryRepository
	cache *cache.Client
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository, cache *cache.Client) CategoryService {
	return &categoryService{repo: repo, cache: cache}
}

const categoryCachePrefix = "famledger:categories:family:"

func (s *categoryService) cacheKey(familyID uint) string {
	return fmt.Sprintf("%s%d", categoryCachePrefix, familyID)
}

func (s *categoryService) List(ctx context.Context, familyID uint) ([]model.Category, error) {
	if cached, ok := cache.GetJSON[[]model.Category](ctx, s.cache, s.cacheKey(familyID)); ok {
		return *cached, nil
	}

	categories, err := s.repo.List(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	cache.SetJSON(ctx, s.cache, s.cacheKey(familyID), categories, categoryCacheTTL)
	return categories, nil
}

func (s *categoryService) Create(ctx context.Context, familyID uint, name, color string) (*model.Category, error) {
	category := &model.Category{
		FamilyID: &familyID,
		Name:     strings.TrimSpace(name),
		Color:    strings.ToUpper(color),
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.Invalidate(ctx, familyID)
	return category, nil
}

// Update edits a custom category. Default categories and other families' categories are not found.
func (s *categoryService) Update(ctx context.Context, familyID, id uint, upd model.CategoryUpdate) (*model.Category, error) {
	upd.Name = trimmedOrNil(upd.Name)
	if upd.Color != nil {
		c := strings.ToUpper(*upd.Color)
		upd.Color = &c
	}
	if len(upd.Columns()) == 0 {
		return nil, apperrors.ErrNoFieldsToUpdate
	}

	category, err := s.repo.Update(ctx, id, familyID, upd)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	if category == nil {
		return nil, apperrors.ErrCategoryNotFound
	}
	s.Invalidate(ctx, familyID)
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, familyID, id uint) error {
	category, err := s.repo.Delete(ctx, id, familyID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if category == nil {
		return apperrors.ErrCategoryNotFound
	}
	s.Invalidate(ctx, familyID)
	return nil
}

// Invalidate drops the cached category listing of a family.
func (s *categoryService) Invalidate(ctx context.Context, familyID uint) {
	_ = s.cache.Delete(ctx, s.cacheKey(familyID))
}

// SeedDefaults inserts the missing default categories. Defaults are visible to every family,
// so any insert drops all cached listings.
func (s *categoryService) SeedDefaults(ctx context.Context, defaults []model.Category) (int, error) {
	created, err := s.repo.SeedDefaults(ctx, defaults)
	if err != nil {
		return 0, fmt.Errorf("seed default categories: %w", err)
	}
	if created > 0 {
		_ = s.cache.DeleteMatching(ctx, categoryCachePrefix+"*")
	}
	return created, nil
}
