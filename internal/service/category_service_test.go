package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "famledger/internal/errors"
	"famledger/internal/model"
)

func TestCategoryService_Create(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewCategoryService(repo, nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Category) bool {
		return c.Name == "Pets" && c.Color == "#AABBCC" && c.FamilyID != nil && *c.FamilyID == 3 && !c.IsDefault
	})).Return(nil).Once()

	category, err := svc.Create(context.Background(), 3, "  Pets ", "#aabbcc")
	require.NoError(t, err)
	assert.Equal(t, "Pets", category.Name)
	repo.AssertExpectations(t)
}

func TestCategoryService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("blank fields", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		_, err := NewCategoryService(repo, nil).Update(ctx, 3, 9, model.CategoryUpdate{Name: strPtr("  ")})
		assert.ErrorIs(t, err, apperrors.ErrNoFieldsToUpdate)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("default or foreign category", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		repo.On("Update", mock.Anything, uint(1), uint(3), mock.Anything).Return(nil, nil).Once()
		_, err := NewCategoryService(repo, nil).Update(ctx, 3, 1, model.CategoryUpdate{Color: strPtr("#000000")})
		assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
	})

	t.Run("success", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		repo.On("Update", mock.Anything, uint(9), uint(3), mock.MatchedBy(func(u model.CategoryUpdate) bool {
			return u.Color != nil && *u.Color == "#ABCDEF" && u.Name == nil
		})).Return(&model.Category{ID: 9, Name: "Pets", Color: "#ABCDEF"}, nil).Once()

		category, err := NewCategoryService(repo, nil).Update(ctx, 3, 9, model.CategoryUpdate{Color: strPtr("#abcdef")})
		require.NoError(t, err)
		assert.Equal(t, "#ABCDEF", category.Color)
		repo.AssertExpectations(t)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewCategoryService(repo, nil)
	ctx := context.Background()

	repo.On("Delete", mock.Anything, uint(9), uint(3)).Return(&model.Category{ID: 9}, nil).Once()
	repo.On("Delete", mock.Anything, uint(1), uint(3)).Return(nil, nil).Once()

	assert.NoError(t, svc.Delete(ctx, 3, 9))
	assert.ErrorIs(t, svc.Delete(ctx, 3, 1), apperrors.ErrCategoryNotFound)
	repo.AssertExpectations(t)
}

func TestCategoryService_ListWithoutCache(t *testing.T) {
	repo := new(MockCategoryRepository)
	repo.On("List", mock.Anything, uint(3)).Return([]model.Category{{ID: 1, Name: "Food", IsDefault: true}}, nil).Twice()

	svc := NewCategoryService(repo, nil)
	for i := 0; i < 2; i++ {
		categories, err := svc.List(context.Background(), 3)
		require.NoError(t, err)
		assert.Len(t, categories, 1)
	}
	repo.AssertExpectations(t)
}

func TestCategoryService_SeedDefaults(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewCategoryService(repo, nil)
	ctx := context.Background()

	repo.On("SeedDefaults", mock.Anything, model.DefaultCategories).Return(2, nil).Once()
	repo.On("List", mock.Anything, uint(3)).Return([]model.Category{{ID: 1, Name: "Food", IsDefault: true}}, nil).Once()

	created, err := svc.SeedDefaults(ctx, model.DefaultCategories)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	categories, err := svc.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
	repo.AssertExpectations(t)
}
