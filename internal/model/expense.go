package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a dated spend recorded by a family member.
type Expense struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	FamilyID   uint            `json:"family_id" gorm:"not null;index"`
	UserID     uint            `json:"user_id" gorm:"not null;index"`
	CategoryID *uint           `json:"category_id" gorm:"index"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Date       Date            `json:"date" gorm:"type:date;not null;index"`
	Note       *string         `json:"note" gorm:"size:500"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ExpenseRow is an expense joined with its author and category for listing.
type ExpenseRow struct {
	Expense
	UserName      string  `json:"user_name"`
	CategoryName  *string `json:"category_name"`
	CategoryColor *string `json:"category_color"`
}

// ExpenseFilter narrows an expense listing. Zero fields are ignored.
type ExpenseFilter struct {
	UserID     *uint
	CategoryID *uint
	StartDate  *Date
	EndDate    *Date
	Search     string
}

// ExpenseUpdate carries the fields of a partial expense update. Nil fields are left unchanged.
type ExpenseUpdate struct {
	CategoryID *uint
	Amount     *decimal.Decimal
	Date       *Date
	Note       *string
}

// Columns returns the column assignments present in the update.
func (u ExpenseUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if u.CategoryID != nil {
		cols["category_id"] = *u.CategoryID
	}
	if u.Amount != nil {
		cols["amount"] = *u.Amount
	}
	if u.Date != nil {
		cols["date"] = *u.Date
	}
	if u.Note != nil {
		cols["note"] = *u.Note
	}
	return cols
}
