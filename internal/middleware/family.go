package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"famledger/internal/service"
)

// FamilyMember parses :familyId and admits only members of that family.
func FamilyMember(families service.FamilyService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			familyID, err := strconv.ParseUint(c.Param("familyId"), 10, 32)
			if err != nil || familyID == 0 {
				return reject(http.StatusBadRequest, "Invalid family ID", "INVALID_FAMILY_ID")
			}
			user := CurrentUser(c)
			if user == nil {
				return reject(http.StatusUnauthorized, "Invalid token", "INVALID_TOKEN")
			}

			membership, err := families.Membership(c.Request().Context(), uint(familyID), user.ID)
			if err != nil {
				return AsHTTPError(err)
			}
			if err := service.RequireMembership(membership); err != nil {
				return AsHTTPError(err)
			}

			c.Set(ContextFamilyID, uint(familyID))
			c.Set(ContextMembership, membership)
			return next(c)
		}
	}
}

// FamilyAdmin admits only admins. It must run after FamilyMember.
func FamilyAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := service.RequireAdmin(Membership(c)); err != nil {
				return AsHTTPError(err)
			}
			return next(c)
		}
	}
}
