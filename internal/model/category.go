package model

import "time"

// Category groups expenses. Default categories have no family and are shared by all families.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FamilyID  *uint     `json:"family_id" gorm:"index"`
	Name      string    `json:"name" gorm:"size:50;not null"`
	Color     string    `json:"color" gorm:"size:7;not null;default:'#6B7280'"`
	IsDefault bool      `json:"is_default" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultCategories are seeded once and are visible to every family.
var DefaultCategories = []Category{
	{Name: "Food", Color: "#EF4444", IsDefault: true},
	{Name: "Transportation", Color: "#3B82F6", IsDefault: true},
	{Name: "Utilities", Color: "#F59E0B", IsDefault: true},
	{Name: "Entertainment", Color: "#8B5CF6", IsDefault: true},
	{Name: "Healthcare", Color: "#10B981", IsDefault: true},
	{Name: "Shopping", Color: "#EC4899", IsDefault: true},
	{Name: "Education", Color: "#6366F1", IsDefault: true},
	{Name: "Other", Color: "#6B7280", IsDefault: true},
}

// CategoryUpdate carries the fields of a partial category update.
type CategoryUpdate struct {
	Name  *string
	Color *string
}

// Columns returns the column assignments present in the update.
func (u CategoryUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if u.Name != nil {
		cols["name"] = *u.Name
	}
	if u.Color != nil {
		cols["color"] = *u.Color
	}
	return cols
}
