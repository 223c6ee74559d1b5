package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"famledger/internal/middleware"
	"famledger/internal/model"
	"famledger/internal/service"
)

// UserHandler handles profile, password and family user endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest represents a partial profile update.
type UpdateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	Username *string `json:"username" validate:"omitempty,min=3,max=50,username"`
}

// UpdatePasswordRequest represents a password change.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,password"`
}

// ResetPasswordResponse carries a generated temporary password.
type ResetPasswordResponse struct {
	Message           string `json:"message"`
	TemporaryPassword string `json:"temporaryPassword"`
}

// UpdateProfile godoc
// @Summary Update the caller's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} map[string]model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), userID(c), req.Name, req.Username)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, map[string]*model.User{"user": user})
}

// UpdatePassword godoc
// @Summary Change the caller's password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdatePasswordRequest true "Passwords"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/update-password [post]
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	var req UpdatePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.userService.ChangePassword(c.Request().Context(), userID(c), req.CurrentPassword, req.NewPassword); err != nil {
		return fail(err)
	}
	return message(c, "Password updated successfully")
}

// ResetPassword godoc
// @Summary Reset a member's password
// @Description Admin only. Returns a generated temporary password once.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param userId path int true "User ID"
// @Success 200 {object} ResetPasswordResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /families/{familyId}/members/{userId}/reset-password [post]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	target, err := paramID(c, "userId", "user id")
	if err != nil {
		return err
	}

	password, err := h.userService.ResetMemberPassword(c.Request().Context(), middleware.FamilyID(c), target)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, ResetPasswordResponse{
		Message:           "Password reset successfully",
		TemporaryPassword: password,
	})
}

// ListFamilyUsers godoc
// @Summary List a family's users
// @Description Admin only. The caller's row is flagged with is_current_user.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Success 200 {array} model.FamilyUser
// @Failure 403 {object} errors.ErrorResponse
// @Router /families/{familyId}/users [get]
func (h *UserHandler) ListFamilyUsers(c echo.Context) error {
	users, err := h.userService.ListFamilyUsers(c.Request().Context(), middleware.FamilyID(c), userID(c))
	if err != nil {
		return fail(err)
	}
	if users == nil {
		users = []model.FamilyUser{}
	}
	return c.JSON(http.StatusOK, users)
}
