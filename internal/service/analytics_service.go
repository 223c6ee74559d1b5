package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "famledger/internal/errors"
	"famledger/internal/model"
	"famledger/internal/repository"
)

var hundred = decimal.NewFromInt(100)

// AnalyticsService aggregates a family's ledger over a date range.
type AnalyticsService interface {
	Compute(ctx context.Context, q model.AnalyticsQuery) (*model.AnalyticsReport, error)
}

type analyticsService struct {
	repo   repository.AnalyticsRepository
	future repository.FutureExpenseRepository
	now    func() time.Time
}

// NewAnalyticsService creates a new analytics service. nil now means time.Now.
func NewAnalyticsService(repo repository.AnalyticsRepository, future repository.FutureExpenseRepository, now func() time.Time) AnalyticsService {
	if now == nil {
		now = time.Now
	}
	return &analyticsService{repo: repo, future: future, now: now}
}

// Compute builds the report. Expenses are matched by date within [start, end]; income by month
// within [month(start), month(end)].
func (s *analyticsService) Compute(ctx context.Context, q model.AnalyticsQuery) (*model.AnalyticsReport, error) {
	if q.StartDate.After(q.EndDate.Time) {
		return nil, apperrors.ErrInvalidDateRange
	}

	expense, err := s.repo.TotalExpense(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("total expense: %w", err)
	}
	income, err := s.repo.TotalIncome(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("total income: %w", err)
	}
	perMember, err := s.repo.PerMember(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("per member totals: %w", err)
	}
	byCategory, err := s.repo.ByCategory(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	trend, err := s.repo.MonthlyTrend(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("monthly trend: %w", err)
	}
	future, err := s.future.ActiveMonthlyTotal(ctx, q.FamilyID, model.CurrentMonth(s.now()))
	if err != nil {
		return nil, fmt.Errorf("future monthly total: %w", err)
	}

	report := &model.AnalyticsReport{
		Total:              expense.InexactFloat64(),
		TotalIncome:        income.InexactFloat64(),
		NetBalance:         income.Sub(expense).InexactFloat64(),
		FutureMonthlyTotal: future.InexactFloat64(),
		PerMember:          nonNil(perMember),
		ByCategory:         nonNil(byCategory),
		MonthlyTrends:      nonNil(trend),
	}
	if income.IsPositive() {
		report.ExpensePercentage = expense.Div(income).Mul(hundred).InexactFloat64()
	}
	return report, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
