package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"famledger/internal/errors"
	"famledger/internal/middleware"
	"famledger/internal/model"
	"famledger/internal/service"
)

// AnalyticsHandler handles the analytics endpoint.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetAnalytics godoc
// @Summary Family analytics over a date range
// @Description Expenses are matched by date; income by month, for every month touched by the range.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param familyId path int true "Family ID"
// @Param startDate query string true "From date (YYYY-MM-DD)"
// @Param endDate query string true "To date (YYYY-MM-DD)"
// @Param userId query int false "Restrict to one member"
// @Success 200 {object} model.AnalyticsReport
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /analytics/{familyId} [get]
func (h *AnalyticsHandler) GetAnalytics(c echo.Context) error {
	start, err := parseDateQuery(c, "startDate")
	if err != nil {
		return err
	}
	end, err := parseDateQuery(c, "endDate")
	if err != nil {
		return err
	}
	if start == nil || end == nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "startDate and endDate are required",
			Code:  "DATE_RANGE_REQUIRED",
		})
	}
	user, err := optionalUintQuery(c, "userId")
	if err != nil {
		return err
	}

	report, err := h.analyticsService.Compute(c.Request().Context(), model.AnalyticsQuery{
		FamilyID:  middleware.FamilyID(c),
		StartDate: *start,
		EndDate:   *end,
		UserID:    user,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, report)
}
