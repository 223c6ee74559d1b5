package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"famledger/internal/middleware"
	"famledger/internal/model"
	"famledger/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents a new custom category.
type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=50"`
	Color string `json:"color" validate:"required,hexcolor6"`
}

// UpdateCategoryRequest represents a partial category update.
type UpdateCategoryRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=50"`
	Color *string `json:"color" validate:"omitempty,hexcolor6"`
}

// ListCategories godoc
// @Summary List categories
// @Description The family's own categories plus the global defaults, by name.
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Success 200 {array} model.Category
// @Failure 403 {object} errors.ErrorResponse
// @Router /categories/{familyId} [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context(), middleware.FamilyID(c))
	if err != nil {
		return fail(err)
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory godoc
// @Summary Create a category
// @Description Admin only.
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param request body CreateCategoryRequest true "Category"
// @Success 201 {object} model.Category
// @Failure 400 {object} errors.ValidationErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /categories/{familyId} [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	category, err := h.categoryService.Create(c.Request().Context(), middleware.FamilyID(c), req.Name, req.Color)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory godoc
// @Summary Update a category
// @Description Admin only. Default categories cannot be changed.
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param categoryId path int true "Category ID"
// @Param request body UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{familyId}/{categoryId} [put]
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := paramID(c, "categoryId", "category id")
	if err != nil {
		return err
	}
	var req UpdateCategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	category, err := h.categoryService.Update(c.Request().Context(), middleware.FamilyID(c), id, model.CategoryUpdate{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Admin only. Expenses in the category become uncategorised.
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param categoryId path int true "Category ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{familyId}/{categoryId} [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := paramID(c, "categoryId", "category id")
	if err != nil {
		return err
	}

	if err := h.categoryService.Delete(c.Request().Context(), middleware.FamilyID(c), id); err != nil {
		return fail(err)
	}
	return message(c, "Category deleted successfully")
}
