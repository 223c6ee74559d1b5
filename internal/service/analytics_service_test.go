package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "famledger/internal/errors"
	"famledger/internal/model"
)

func analyticsQuery() model.AnalyticsQuery {
	return model.AnalyticsQuery{FamilyID: 10, StartDate: model.NewDate(2024, 6, 1), EndDate: model.NewDate(2024, 6, 30)}
}

func TestAnalyticsService_Compute(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name        string
		expense     string
		income      string
		wantNet     float64
		wantPercent float64
	}{
		{name: "income covers expenses", expense: "750.00", income: "1500.00", wantNet: 750, wantPercent: 50},
		{name: "no income", expense: "120.00", income: "0", wantNet: -120, wantPercent: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := analyticsQuery()
			repo := new(MockAnalyticsRepository)
			repo.On("TotalExpense", mock.Anything, q).Return(dec(tt.expense), nil)
			repo.On("TotalIncome", mock.Anything, q).Return(dec(tt.income), nil)
			repo.On("PerMember", mock.Anything, q).Return(nil, nil)
			repo.On("ByCategory", mock.Anything, q).Return([]model.CategoryTotal{{Name: "Food", Total: dec(tt.expense)}}, nil)
			repo.On("MonthlyTrend", mock.Anything, q).Return(nil, nil)
			future := new(MockFutureExpenseRepository)
			future.On("ActiveMonthlyTotal", mock.Anything, uint(10), "2024-06").Return(decimal.Zero, nil)

			report, err := NewAnalyticsService(repo, future, now).Compute(context.Background(), q)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantNet, report.NetBalance, 0.001)
			assert.InDelta(t, tt.wantPercent, report.ExpensePercentage, 0.001)
			assert.NotNil(t, report.PerMember)
			assert.NotNil(t, report.MonthlyTrends)
			assert.Len(t, report.ByCategory, 1)
		})
	}
}

func TestAnalyticsService_InvalidRange(t *testing.T) {
	q := analyticsQuery()
	q.StartDate, q.EndDate = q.EndDate, q.StartDate

	repo := new(MockAnalyticsRepository)
	_, err := NewAnalyticsService(repo, new(MockFutureExpenseRepository), nil).Compute(context.Background(), q)
	assert.Equal(t, apperrors.ErrInvalidDateRange, err)
	repo.AssertNotCalled(t, "TotalExpense", mock.Anything, mock.Anything)
}
