package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "famledger/internal/errors"
	"famledger/internal/model"
)

func TestAccessPredicates(t *testing.T) {
	admin := &model.FamilyMember{Role: model.RoleAdmin}
	member := &model.FamilyMember{Role: model.RoleMember}

	assert.Equal(t, apperrors.ErrNotFamilyMember, RequireMembership(nil))
	assert.NoError(t, RequireMembership(member))

	assert.Equal(t, apperrors.ErrNotFamilyMember, RequireAdmin(nil))
	assert.Equal(t, apperrors.ErrAdminRequired, RequireAdmin(member))
	assert.NoError(t, RequireAdmin(admin))

	assert.NoError(t, RequireAuthor(4, 4))
	assert.Equal(t, apperrors.ErrNotAuthor, RequireAuthor(4, 5))

	family := &model.Family{ID: 1, CreatedBy: 4}
	assert.NoError(t, RequireCreator(family, 4))
	assert.Equal(t, apperrors.ErrNotCreator, RequireCreator(family, 5))
	assert.Equal(t, apperrors.ErrFamilyNotFound, RequireCreator(nil, 4))
}
