package model

import "github.com/shopspring/decimal"

// AnalyticsQuery selects the slice of a family's ledger to aggregate.
type AnalyticsQuery struct {
	FamilyID  uint
	StartDate Date
	EndDate   Date
	UserID    *uint
}

// MemberTotal is the expense sum of one family member.
type MemberTotal struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

// CategoryTotal is the expense sum of one category.
type CategoryTotal struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Color string          `json:"color"`
	Total decimal.Decimal `json:"total"`
}

// MonthTotal is the expense sum of one calendar month.
type MonthTotal struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// AnalyticsReport is the aggregated view of a family's ledger over a date range.
type AnalyticsReport struct {
	Total              float64         `json:"total"`
	TotalIncome        float64         `json:"totalIncome"`
	NetBalance         float64         `json:"netBalance"`
	ExpensePercentage  float64         `json:"expensePercentage"`
	FutureMonthlyTotal float64         `json:"futureMonthlyTotal"`
	PerMember          []MemberTotal   `json:"perMember"`
	ByCategory         []CategoryTotal `json:"byCategory"`
	MonthlyTrends      []MonthTotal    `json:"monthlyTrends"`
}
