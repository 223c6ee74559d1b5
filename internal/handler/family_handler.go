package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"famledger/internal/middleware"
	"famledger/internal/model"
	"famledger/internal/service"
)

// FamilyHandler handles family and membership endpoints.
type FamilyHandler struct {
	familyService service.FamilyService
}

// NewFamilyHandler creates a new family handler.
func NewFamilyHandler(familyService service.FamilyService) *FamilyHandler {
	return &FamilyHandler{familyService: familyService}
}

// CreateFamilyRequest represents a family creation request.
type CreateFamilyRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// AddMemberRequest represents a request to add a member. Name is required when the email is unknown.
type AddMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"omitempty,min=2,max=100"`
	Role  string `json:"role" validate:"omitempty,oneof=admin member"`
}

// CreateFamily godoc
// @Summary Create a family
// @Description The caller becomes its first admin.
// @Tags families
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateFamilyRequest true "Family"
// @Success 201 {object} model.Family
// @Failure 400 {object} errors.ValidationErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /families [post]
func (h *FamilyHandler) CreateFamily(c echo.Context) error {
	var req CreateFamilyRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	family, err := h.familyService.Create(c.Request().Context(), req.Name, userID(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, family)
}

// ListFamilies godoc
// @Summary List the caller's families
// @Tags families
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.FamilyWithRole
// @Failure 401 {object} errors.ErrorResponse
// @Router /families [get]
func (h *FamilyHandler) ListFamilies(c echo.Context) error {
	families, err := h.familyService.ListForUser(c.Request().Context(), userID(c))
	if err != nil {
		return fail(err)
	}
	if families == nil {
		families = []model.FamilyWithRole{}
	}
	return c.JSON(http.StatusOK, families)
}

// GetFamily godoc
// @Summary Get a family with its members
// @Tags families
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Success 200 {object} model.FamilyDetail
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /families/{familyId} [get]
func (h *FamilyHandler) GetFamily(c echo.Context) error {
	detail, err := h.familyService.Get(c.Request().Context(), middleware.FamilyID(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, detail)
}

// ListMembers godoc
// @Summary List family members
// @Tags families
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Success 200 {array} model.Member
// @Failure 403 {object} errors.ErrorResponse
// @Router /families/{familyId}/members [get]
func (h *FamilyHandler) ListMembers(c echo.Context) error {
	members, err := h.familyService.Members(c.Request().Context(), middleware.FamilyID(c))
	if err != nil {
		return fail(err)
	}
	if members == nil {
		members = []model.Member{}
	}
	return c.JSON(http.StatusOK, members)
}

// AddMember godoc
// @Summary Add a member
// @Description Unknown emails get an account with a temporary password, returned once.
// @Tags families
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param request body AddMemberRequest true "Member"
// @Success 201 {object} service.AddMemberResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /families/{familyId}/members [post]
func (h *FamilyHandler) AddMember(c echo.Context) error {
	var req AddMemberRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.familyService.AddMember(c.Request().Context(), middleware.FamilyID(c), service.AddMemberInput{
		Email: req.Email,
		Name:  req.Name,
		Role:  model.Role(req.Role),
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, result)
}

// RemoveMember godoc
// @Summary Remove a member
// @Tags families
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param userId path int true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /families/{familyId}/members/{userId} [delete]
func (h *FamilyHandler) RemoveMember(c echo.Context) error {
	target, err := paramID(c, "userId", "user id")
	if err != nil {
		return err
	}

	if err := h.familyService.RemoveMember(c.Request().Context(), middleware.FamilyID(c), userID(c), target); err != nil {
		return fail(err)
	}
	return message(c, "Member removed successfully")
}

// DeleteFamily godoc
// @Summary Delete a family
// @Description Admin only, and only the family's creator. Removes every ledger entry of the family.
// @Tags families
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /families/{familyId} [delete]
func (h *FamilyHandler) DeleteFamily(c echo.Context) error {
	if err := h.familyService.Delete(c.Request().Context(), middleware.FamilyID(c), userID(c)); err != nil {
		return fail(err)
	}
	return message(c, "Family deleted successfully")
}
