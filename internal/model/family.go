package model

import "time"

// Role is a member's role within one family.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// Family is the tenant boundary for ledger and category data.
type Family struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	CreatedBy uint      `json:"created_by" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

// FamilyMember links a user to a family with a role.
type FamilyMember struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FamilyID  uint      `json:"family_id" gorm:"not null;uniqueIndex:uq_family_members_family_user,priority:1"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:uq_family_members_family_user,priority:2"`
	Role      Role      `json:"role" gorm:"type:varchar(20);not null;default:'member'"`
	CreatedAt time.Time `json:"joined_at"`
}

// FamilyWithRole is a family as listed for one of its members.
type FamilyWithRole struct {
	Family
	Role Role `json:"role"`
}

// Member is a family member with the user fields shown on the members screen.
type Member struct {
	ID       uint      `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Username *string   `json:"username"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// FamilyDetail is a family together with its members.
type FamilyDetail struct {
	Family
	Members []Member `json:"members"`
}
