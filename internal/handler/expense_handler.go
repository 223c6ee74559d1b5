package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"famledger/internal/errors"
	"famledger/internal/middleware"
	"famledger/internal/model"
	"famledger/internal/service"
)

// ExpenseHandler handles expense endpoints.
type ExpenseHandler struct {
	expenseService service.ExpenseService
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents a new expense.
type CreateExpenseRequest struct {
	CategoryID *uint           `json:"category_id" validate:"omitempty,gt=0"`
	Amount     decimal.Decimal `json:"amount" validate:"required,gt=0" swaggertype:"number"`
	Date       string          `json:"date" validate:"required,isodate"`
	Note       *string         `json:"note" validate:"omitempty,max=500"`
}

// UpdateExpenseRequest represents a partial expense update.
type UpdateExpenseRequest struct {
	CategoryID *uint            `json:"category_id" validate:"omitempty,gt=0"`
	Amount     *decimal.Decimal `json:"amount" validate:"omitempty,gt=0" swaggertype:"number"`
	Date       *string          `json:"date" validate:"omitempty,isodate"`
	Note       *string          `json:"note" validate:"omitempty,max=500"`
}

func parseDateQuery(c echo.Context, name string) (*model.Date, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid " + name + " (YYYY-MM-DD)",
			Code:  "INVALID_QUERY",
		})
	}
	return &d, nil
}

// CreateExpense godoc
// @Summary Record an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param request body CreateExpenseRequest true "Expense"
// @Success 201 {object} model.ExpenseRow
// @Failure 400 {object} errors.ValidationErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /expenses/{familyId} [post]
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	var req CreateExpenseRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	date, _ := model.ParseDate(req.Date)

	row, err := h.expenseService.Create(c.Request().Context(), middleware.FamilyID(c), userID(c), service.ExpenseInput{
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Date:       date,
		Note:       req.Note,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, row)
}

// ListExpenses godoc
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param userId query int false "Author"
// @Param categoryId query int false "Category"
// @Param startDate query string false "From date (YYYY-MM-DD, inclusive)"
// @Param endDate query string false "To date (YYYY-MM-DD, inclusive)"
// @Param search query string false "Substring of note or amount"
// @Success 200 {array} model.ExpenseRow
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /expenses/{familyId} [get]
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	var (
		filter model.ExpenseFilter
		err    error
	)
	if filter.UserID, err = optionalUintQuery(c, "userId"); err != nil {
		return err
	}
	if filter.CategoryID, err = optionalUintQuery(c, "categoryId"); err != nil {
		return err
	}
	if filter.StartDate, err = parseDateQuery(c, "startDate"); err != nil {
		return err
	}
	if filter.EndDate, err = parseDateQuery(c, "endDate"); err != nil {
		return err
	}
	filter.Search = strings.TrimSpace(c.QueryParam("search"))

	rows, err := h.expenseService.List(c.Request().Context(), middleware.FamilyID(c), filter)
	if err != nil {
		return fail(err)
	}
	if rows == nil {
		rows = []model.ExpenseRow{}
	}
	return c.JSON(http.StatusOK, rows)
}

// GetExpense godoc
// @Summary Get an expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param expenseId path int true "Expense ID"
// @Success 200 {object} model.ExpenseRow
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /expenses/{familyId}/{expenseId} [get]
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	id, err := paramID(c, "expenseId", "expense id")
	if err != nil {
		return err
	}

	row, err := h.expenseService.Get(c.Request().Context(), middleware.FamilyID(c), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, row)
}

// UpdateExpense godoc
// @Summary Update an expense
// @Description Only the expense's author may update it.
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param expenseId path int true "Expense ID"
// @Param request body UpdateExpenseRequest true "Fields to change"
// @Success 200 {object} model.ExpenseRow
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /expenses/{familyId}/{expenseId} [put]
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	id, err := paramID(c, "expenseId", "expense id")
	if err != nil {
		return err
	}
	var req UpdateExpenseRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	upd := model.ExpenseUpdate{CategoryID: req.CategoryID, Amount: req.Amount, Note: req.Note}
	if req.Date != nil {
		date, _ := model.ParseDate(*req.Date)
		upd.Date = &date
	}

	row, err := h.expenseService.Update(c.Request().Context(), middleware.FamilyID(c), userID(c), id, upd)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, row)
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Description Only the expense's author may delete it.
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param expenseId path int true "Expense ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /expenses/{familyId}/{expenseId} [delete]
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	id, err := paramID(c, "expenseId", "expense id")
	if err != nil {
		return err
	}

	if err := h.expenseService.Delete(c.Request().Context(), middleware.FamilyID(c), userID(c), id); err != nil {
		return fail(err)
	}
	return message(c, "Expense deleted successfully")
}
