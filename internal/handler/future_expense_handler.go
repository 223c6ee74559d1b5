package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"famledger/internal/middleware"
	"famledger/internal/model"
	"famledger/internal/service"
)

// FutureExpenseHandler handles recurring commitment endpoints.
type FutureExpenseHandler struct {
	futureService service.FutureExpenseService
}

// NewFutureExpenseHandler creates a new future expense handler.
func NewFutureExpenseHandler(futureService service.FutureExpenseService) *FutureExpenseHandler {
	return &FutureExpenseHandler{futureService: futureService}
}

// CreateFutureExpenseRequest represents a new commitment.
type CreateFutureExpenseRequest struct {
	Title         string          `json:"title" validate:"required,min=1,max=200"`
	TotalAmount   decimal.Decimal `json:"total_amount" validate:"required,gt=0" swaggertype:"number"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount" validate:"required,gt=0" swaggertype:"number"`
	StartMonth    string          `json:"start_month" validate:"required,yearmonth"`
	EndMonth      string          `json:"end_month" validate:"required,yearmonth"`
}

// UpdateFutureExpenseRequest represents a partial commitment update.
type UpdateFutureExpenseRequest struct {
	Title         *string          `json:"title" validate:"omitempty,min=1,max=200"`
	TotalAmount   *decimal.Decimal `json:"total_amount" validate:"omitempty,gt=0" swaggertype:"number"`
	MonthlyAmount *decimal.Decimal `json:"monthly_amount" validate:"omitempty,gt=0" swaggertype:"number"`
	StartMonth    *string          `json:"start_month" validate:"omitempty,yearmonth"`
	EndMonth      *string          `json:"end_month" validate:"omitempty,yearmonth"`
}

// MonthlyTotalResponse is the monthly load of active commitments.
type MonthlyTotalResponse struct {
	Total float64 `json:"total"`
}

// CreateFutureExpense godoc
// @Summary Record a future expense
// @Tags future-expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param request body CreateFutureExpenseRequest true "Commitment"
// @Success 201 {object} model.FutureExpenseRow
// @Failure 400 {object} errors.ValidationErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /future-expenses/{familyId} [post]
func (h *FutureExpenseHandler) CreateFutureExpense(c echo.Context) error {
	var req CreateFutureExpenseRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	row, err := h.futureService.Create(c.Request().Context(), middleware.FamilyID(c), userID(c), service.FutureExpenseInput{
		Title:         req.Title,
		TotalAmount:   req.TotalAmount,
		MonthlyAmount: req.MonthlyAmount,
		StartMonth:    req.StartMonth,
		EndMonth:      req.EndMonth,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, row)
}

// ListFutureExpenses godoc
// @Summary List future expenses
// @Tags future-expenses
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param userId query int false "Author"
// @Param activeOnly query bool false "Only commitments still running this month"
// @Success 200 {array} model.FutureExpenseRow
// @Failure 403 {object} errors.ErrorResponse
// @Router /future-expenses/{familyId} [get]
func (h *FutureExpenseHandler) ListFutureExpenses(c echo.Context) error {
	var (
		filter model.FutureExpenseFilter
		err    error
	)
	if filter.UserID, err = optionalUintQuery(c, "userId"); err != nil {
		return err
	}
	filter.ActiveOnly, _ = strconv.ParseBool(c.QueryParam("activeOnly"))

	rows, err := h.futureService.List(c.Request().Context(), middleware.FamilyID(c), filter)
	if err != nil {
		return fail(err)
	}
	if rows == nil {
		rows = []model.FutureExpenseRow{}
	}
	return c.JSON(http.StatusOK, rows)
}

// MonthlyTotal godoc
// @Summary Monthly total of active future expenses
// @Tags future-expenses
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Success 200 {object} MonthlyTotalResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /future-expenses/{familyId}/total [get]
func (h *FutureExpenseHandler) MonthlyTotal(c echo.Context) error {
	total, err := h.futureService.MonthlyTotal(c.Request().Context(), middleware.FamilyID(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MonthlyTotalResponse{Total: total.InexactFloat64()})
}

// GetFutureExpense godoc
// @Summary Get a future expense
// @Tags future-expenses
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param futureExpenseId path int true "Future expense ID"
// @Success 200 {object} model.FutureExpenseRow
// @Failure 404 {object} errors.ErrorResponse
// @Router /future-expenses/{familyId}/{futureExpenseId} [get]
func (h *FutureExpenseHandler) GetFutureExpense(c echo.Context) error {
	id, err := paramID(c, "futureExpenseId", "future expense id")
	if err != nil {
		return err
	}

	row, err := h.futureService.Get(c.Request().Context(), middleware.FamilyID(c), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, row)
}

// UpdateFutureExpense godoc
// @Summary Update a future expense
// @Description Only the commitment's author may update it.
// @Tags future-expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param futureExpenseId path int true "Future expense ID"
// @Param request body UpdateFutureExpenseRequest true "Fields to change"
// @Success 200 {object} model.FutureExpenseRow
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /future-expenses/{familyId}/{futureExpenseId} [put]
func (h *FutureExpenseHandler) UpdateFutureExpense(c echo.Context) error {
	id, err := paramID(c, "futureExpenseId", "future expense id")
	if err != nil {
		return err
	}
	var req UpdateFutureExpenseRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	row, err := h.futureService.Update(c.Request().Context(), middleware.FamilyID(c), userID(c), id, model.FutureExpenseUpdate{
		Title:         req.Title,
		TotalAmount:   req.TotalAmount,
		MonthlyAmount: req.MonthlyAmount,
		StartMonth:    req.StartMonth,
		EndMonth:      req.EndMonth,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, row)
}

// DeleteFutureExpense godoc
// @Summary Delete a future expense
// @Description Only the commitment's author may delete it.
// @Tags future-expenses
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param futureExpenseId path int true "Future expense ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /future-expenses/{familyId}/{futureExpenseId} [delete]
func (h *FutureExpenseHandler) DeleteFutureExpense(c echo.Context) error {
	id, err := paramID(c, "futureExpenseId", "future expense id")
	if err != nil {
		return err
	}

	if err := h.futureService.Delete(c.Request().Context(), middleware.FamilyID(c), userID(c), id); err != nil {
		return fail(err)
	}
	return message(c, "Future expense deleted successfully")
}
