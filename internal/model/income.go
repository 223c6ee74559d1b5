package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income is money received by a family member in a given month.
type Income struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	FamilyID  uint            `json:"family_id" gorm:"not null;index"`
	UserID    uint            `json:"user_id" gorm:"not null;index"`
	Source    string          `json:"source" gorm:"size:100;not null"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Month     string          `json:"month" gorm:"size:7;not null;index"`
	Note      *string         `json:"note" gorm:"size:500"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName keeps the singular table name.
func (Income) TableName() string {
	return "income"
}

// IncomeRow is an income entry joined with its author's name.
type IncomeRow struct {
	Income
	UserName string `json:"user_name"`
}

// IncomeFilter narrows an income listing. Zero fields are ignored.
type IncomeFilter struct {
	Month  string
	Source string
	UserID *uint
}

// IncomeUpdate carries the fields of a partial income update.
type IncomeUpdate struct {
	Source *string
	Amount *decimal.Decimal
	Month  *string
	Note   *string
}

// Columns returns the column assignments present in the update.
func (u IncomeUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if u.Source != nil {
		cols["source"] = *u.Source
	}
	if u.Amount != nil {
		cols["amount"] = *u.Amount
	}
	if u.Month != nil {
		cols["month"] = *u.Month
	}
	if u.Note != nil {
		cols["note"] = *u.Note
	}
	return cols
}
