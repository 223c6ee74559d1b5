package service

import (
	apperrors "famledger/internal/errors"
	"famledger/internal/model"
)

// The family gate and the ownership rule are kept apart: routes compose the
// predicates they need (member-readable, admin-only, author-only, creator-only).

// RequireMembership passes when the caller holds any membership in the family.
func RequireMembership(m *model.FamilyMember) error {
	if m == nil {
		return apperrors.ErrNotFamilyMember
	}
	return nil
}

// RequireAdmin passes when the caller is an admin of the family.
func RequireAdmin(m *model.FamilyMember) error {
	if err := RequireMembership(m); err != nil {
		return err
	}
	if m.Role != model.RoleAdmin {
		return apperrors.ErrAdminRequired
	}
	return nil
}

// RequireAuthor passes when actorID wrote the ledger entry. Admins get no override.
func RequireAuthor(authorID, actorID uint) error {
	if authorID != actorID {
		return apperrors.ErrNotAuthor
	}
	return nil
}

// RequireCreator passes when actorID created the family.
func RequireCreator(f *model.Family, actorID uint) error {
	if f == nil {
		return apperrors.ErrFamilyNotFound
	}
	if f.CreatedBy != actorID {
		return apperrors.ErrNotCreator
	}
	return nil
}
