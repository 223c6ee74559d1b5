package middleware

import (
	"github.com/labstack/echo/v4"

	"famledger/internal/auth"
	"famledger/internal/model"
)

// Echo context keys set by the gates.
const (
	ContextToken      = "token"
	ContextUser       = "currentUser"
	ContextMembership = "membership"
	ContextFamilyID   = "familyID"
)

// Claims returns the verified access token claims, or nil.
func Claims(c echo.Context) *auth.Claims {
	claims, _ := c.Get(ContextToken).(*auth.Claims)
	return claims
}

// CurrentUser returns the authenticated user, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(ContextUser).(*model.User)
	return user
}

// Membership returns the caller's membership in the routed family, or nil.
func Membership(c echo.Context) *model.FamilyMember {
	m, _ := c.Get(ContextMembership).(*model.FamilyMember)
	return m
}

// FamilyID returns the routed family id.
func FamilyID(c echo.Context) uint {
	id, _ := c.Get(ContextFamilyID).(uint)
	return id
}
