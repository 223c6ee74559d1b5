package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FutureExpense is a recurring commitment such as an EMI, paid monthly between two months.
type FutureExpense struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	FamilyID      uint            `json:"family_id" gorm:"not null;index"`
	UserID        uint            `json:"user_id" gorm:"not null;index"`
	Title         string          `json:"title" gorm:"size:200;not null"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount" gorm:"type:decimal(12,2);not null"`
	StartMonth    string          `json:"start_month" gorm:"size:7;not null"`
	EndMonth      string          `json:"end_month" gorm:"size:7;not null;index"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ActiveAt reports whether the commitment is still running in the given YYYY-MM month.
func (f FutureExpense) ActiveAt(month string) bool {
	return f.EndMonth >= month
}

// FutureExpenseRow is a commitment joined with its author's name and active flag.
type FutureExpenseRow struct {
	FutureExpense
	UserName string `json:"user_name"`
	IsActive bool   `json:"is_active" gorm:"-"`
}

// FutureExpenseFilter narrows a commitment listing.
type FutureExpenseFilter struct {
	UserID     *uint
	ActiveOnly bool
}

// FutureExpenseUpdate carries the fields of a partial commitment update.
type FutureExpenseUpdate struct {
	Title         *string
	TotalAmount   *decimal.Decimal
	MonthlyAmount *decimal.Decimal
	StartMonth    *string
	EndMonth      *string
}

// Columns returns the column assignments present in the update.
func (u FutureExpenseUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if u.Title != nil {
		cols["title"] = *u.Title
	}
	if u.TotalAmount != nil {
		cols["total_amount"] = *u.TotalAmount
	}
	if u.MonthlyAmount != nil {
		cols["monthly_amount"] = *u.MonthlyAmount
	}
	if u.StartMonth != nil {
		cols["start_month"] = *u.StartMonth
	}
	if u.EndMonth != nil {
		cols["end_month"] = *u.EndMonth
	}
	return cols
}
