package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"famledger/internal/middleware"
	"famledger/internal/model"
	"famledger/internal/service"
)

// IncomeHandler handles income endpoints.
type IncomeHandler struct {
	incomeService service.IncomeService
}

// NewIncomeHandler creates a new income handler.
func NewIncomeHandler(incomeService service.IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// CreateIncomeRequest represents a new income entry.
type CreateIncomeRequest struct {
	Source string          `json:"source" validate:"required,min=1,max=100"`
	Amount decimal.Decimal `json:"amount" validate:"required,gt=0" swaggertype:"number"`
	Month  string          `json:"month" validate:"required,yearmonth"`
	Note   *string         `json:"note" validate:"omitempty,max=500"`
}

// UpdateIncomeRequest represents a partial income update.
type UpdateIncomeRequest struct {
	Source *string          `json:"source" validate:"omitempty,min=1,max=100"`
	Amount *decimal.Decimal `json:"amount" validate:"omitempty,gt=0" swaggertype:"number"`
	Month  *string          `json:"month" validate:"omitempty,yearmonth"`
	Note   *string          `json:"note" validate:"omitempty,max=500"`
}

// CreateIncome godoc
// @Summary Record income
// @Tags income
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param request body CreateIncomeRequest true "Income"
// @Success 201 {object} model.IncomeRow
// @Failure 400 {object} errors.ValidationErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /income/{familyId} [post]
func (h *IncomeHandler) CreateIncome(c echo.Context) error {
	var req CreateIncomeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	row, err := h.incomeService.Create(c.Request().Context(), middleware.FamilyID(c), userID(c), service.IncomeInput{
		Source: req.Source,
		Amount: req.Amount,
		Month:  req.Month,
		Note:   req.Note,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, row)
}

// ListIncome godoc
// @Summary List income
// @Tags income
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param month query string false "Month (YYYY-MM)"
// @Param source query string false "Substring of source"
// @Param userId query int false "Author"
// @Success 200 {array} model.IncomeRow
// @Failure 403 {object} errors.ErrorResponse
// @Router /income/{familyId} [get]
func (h *IncomeHandler) ListIncome(c echo.Context) error {
	filter := model.IncomeFilter{
		Month:  strings.TrimSpace(c.QueryParam("month")),
		Source: strings.TrimSpace(c.QueryParam("source")),
	}
	var err error
	if filter.UserID, err = optionalUintQuery(c, "userId"); err != nil {
		return err
	}

	rows, err := h.incomeService.List(c.Request().Context(), middleware.FamilyID(c), filter)
	if err != nil {
		return fail(err)
	}
	if rows == nil {
		rows = []model.IncomeRow{}
	}
	return c.JSON(http.StatusOK, rows)
}

// GetIncome godoc
// @Summary Get an income entry
// @Tags income
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param incomeId path int true "Income ID"
// @Success 200 {object} model.IncomeRow
// @Failure 404 {object} errors.ErrorResponse
// @Router /income/{familyId}/{incomeId} [get]
func (h *IncomeHandler) GetIncome(c echo.Context) error {
	id, err := paramID(c, "incomeId", "income id")
	if err != nil {
		return err
	}

	row, err := h.incomeService.Get(c.Request().Context(), middleware.FamilyID(c), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, row)
}

// UpdateIncome godoc
// @Summary Update an income entry
// @Description Only the entry's author may update it.
// @Tags income
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param incomeId path int true "Income ID"
// @Param request body UpdateIncomeRequest true "Fields to change"
// @Success 200 {object} model.IncomeRow
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /income/{familyId}/{incomeId} [put]
func (h *IncomeHandler) UpdateIncome(c echo.Context) error {
	id, err := paramID(c, "incomeId", "income id")
	if err != nil {
		return err
	}
	var req UpdateIncomeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	row, err := h.incomeService.Update(c.Request().Context(), middleware.FamilyID(c), userID(c), id, model.IncomeUpdate{
		Source: req.Source,
		Amount: req.Amount,
		Month:  req.Month,
		Note:   req.Note,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, row)
}

// DeleteIncome godoc
// @Summary Delete an income entry
// @Description Only the entry's author may delete it.
// @Tags income
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param incomeId path int true "Income ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /income/{familyId}/{incomeId} [delete]
func (h *IncomeHandler) DeleteIncome(c echo.Context) error {
	id, err := paramID(c, "incomeId", "income id")
	if err != nil {
		return err
	}

	if err := h.incomeService.Delete(c.Request().Context(), middleware.FamilyID(c), userID(c), id); err != nil {
		return fail(err)
	}
	return message(c, "Income deleted successfully")
}
