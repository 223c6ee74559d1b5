package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"famledger/internal/db"
	"famledger/internal/model"
)

// AnalyticsRepository runs the aggregate queries behind the analytics report.
type AnalyticsRepository interface {
	TotalExpense(ctx context.Context, q model.AnalyticsQuery) (decimal.Decimal, error)
	TotalIncome(ctx context.Context, q model.AnalyticsQuery) (decimal.Decimal, error)
	PerMember(ctx context.Context, q model.AnalyticsQuery) ([]model.MemberTotal, error)
	ByCategory(ctx context.Context, q model.AnalyticsQuery) ([]model.CategoryTotal, error)
	MonthlyTrend(ctx context.Context, q model.AnalyticsQuery) ([]model.MonthTotal, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository.
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// expensesIn scopes tx to the family's expenses dated within the query range.
func expensesIn(tx *gorm.DB, q model.AnalyticsQuery) *gorm.DB {
	tx = tx.Table("expenses AS e").
		Where("e.family_id = ? AND e.date >= ? AND e.date <= ?", q.FamilyID, q.StartDate, q.EndDate)
	if q.UserID != nil {
		tx = tx.Where("e.user_id = ?", *q.UserID)
	}
	return tx
}

func (r *analyticsRepository) TotalExpense(ctx context.Context, q model.AnalyticsQuery) (decimal.Decimal, error) {
	var sum sumRow
	err := expensesIn(r.db.WithContext(ctx), q).
		Select("COALESCE(SUM(e.amount), 0) AS total").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum.Total.Round(2), nil
}

// TotalIncome sums income whose month lies between the months of the range bounds, both included.
func (r *analyticsRepository) TotalIncome(ctx context.Context, q model.AnalyticsQuery) (decimal.Decimal, error) {
	tx := r.db.WithContext(ctx).
		Table("income AS i").
		Select("COALESCE(SUM(i.amount), 0) AS total").
		Where("i.family_id = ? AND i.month >= ? AND i.month <= ?", q.FamilyID, q.StartDate.YearMonth(), q.EndDate.YearMonth())
	if q.UserID != nil {
		tx = tx.Where("i.user_id = ?", *q.UserID)
	}
	var sum sumRow
	if err := tx.Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	return sum.Total.Round(2), nil
}

func (r *analyticsRepository) PerMember(ctx context.Context, q model.AnalyticsQuery) ([]model.MemberTotal, error) {
	var rows []model.MemberTotal
	err := expensesIn(r.db.WithContext(ctx), q).
		Select("u.id, u.name, SUM(e.amount) AS total").
		Joins("JOIN users u ON u.id = e.user_id").
		Group("u.id, u.name").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Total = rows[i].Total.Round(2)
	}
	return rows, nil
}

func (r *analyticsRepository) ByCategory(ctx context.Context, q model.AnalyticsQuery) ([]model.CategoryTotal, error) {
	var rows []model.CategoryTotal
	err := expensesIn(r.db.WithContext(ctx), q).
		Select("c.id, c.name, c.color, SUM(e.amount) AS total").
		Joins("JOIN categories c ON c.id = e.category_id").
		Group("c.id, c.name, c.color").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Total = rows[i].Total.Round(2)
	}
	return rows, nil
}

func (r *analyticsRepository) MonthlyTrend(ctx context.Context, q model.AnalyticsQuery) ([]model.MonthTotal, error) {
	tx := r.db.WithContext(ctx)
	d := db.DialectOf(tx)
	year, month := d.Year("e.date"), d.Month("e.date")

	var rows []model.MonthTotal
	err := expensesIn(tx, q).
		Select(year + " AS year, " + month + " AS month, SUM(e.amount) AS total").
		Group(year + ", " + month).
		Order("year ASC, month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Total = rows[i].Total.Round(2)
	}
	return rows, nil
}
