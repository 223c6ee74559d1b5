package model

import "time"

// User represents an authenticated user in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex:uq_users_email"`
	Username     *string   `json:"username" gorm:"size:50;uniqueIndex:uq_users_username"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FamilyUser is a user row as shown on a family's admin users screen.
type FamilyUser struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Username      *string   `json:"username"`
	Role          Role      `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
	IsCurrentUser bool      `json:"is_current_user" gorm:"-"`
}

// ProfileUpdate carries the fields of a partial profile update.
type ProfileUpdate struct {
	Name     *string
	Username *string
}

// Columns returns the column assignments present in the update.
func (u ProfileUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if u.Name != nil {
		cols["name"] = *u.Name
	}
	if u.Username != nil {
		cols["username"] = *u.Username
	}
	return cols
}
