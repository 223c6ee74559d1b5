package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "famledger/internal/errors"
	"famledger/internal/model"
)

func TestUserService_UpdateProfile(t *testing.T) {
	t.Run("blank fields are no update", func(t *testing.T) {
		svc := NewUserService(new(MockUserRepository), new(MockFamilyRepository), nil)
		_, err := svc.UpdateProfile(context.Background(), 1, strPtr(" "), nil)
		assert.Equal(t, apperrors.ErrNoFieldsToUpdate, err)
	})

	t.Run("username conflict passes through", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("UpdateProfile", mock.Anything, uint(1), model.ProfileUpdate{Username: strPtr("taken")}).
			Return(nil, apperrors.ErrUsernameTaken)
		svc := NewUserService(users, new(MockFamilyRepository), nil)
		_, err := svc.UpdateProfile(context.Background(), 1, nil, strPtr("taken"))
		assert.Equal(t, apperrors.ErrUsernameTaken, err)
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	user := &model.User{ID: 1, PasswordHash: hashed(t, "old-password")}

	tests := []struct {
		name          string
		current, next string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "changes password", current: "old-password", next: "new-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(user, nil)
				m.On("SetPasswordHash", mock.Anything, uint(1), mock.MatchedBy(func(h string) bool {
					return bcrypt.CompareHashAndPassword([]byte(h), []byte("new-password")) == nil
				})).Return(user, nil)
			},
		},
		{
			name: "same password", current: "old-password", next: "old-password",
			setupMock:     func(*MockUserRepository) {},
			expectedError: apperrors.ErrSamePassword,
		},
		{
			name: "wrong current password", current: "guess", next: "new-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(user, nil)
			},
			expectedError: apperrors.ErrIncorrectPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tt.setupMock(users)
			err := NewUserService(users, new(MockFamilyRepository), nil).ChangePassword(context.Background(), 1, tt.current, tt.next)
			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestUserService_ResetMemberPassword(t *testing.T) {
	users := new(MockUserRepository)
	families := new(MockFamilyRepository)
	families.On("Membership", mock.Anything, uint(10), uint(2)).Return(&model.FamilyMember{FamilyID: 10, UserID: 2}, nil)
	families.On("Membership", mock.Anything, uint(10), uint(3)).Return(nil, nil)
	users.On("SetPasswordHash", mock.Anything, uint(2), mock.AnythingOfType("string")).Return(&model.User{ID: 2}, nil)

	svc := NewUserService(users, families, nil)
	password, err := svc.ResetMemberPassword(context.Background(), 10, 2)
	require.NoError(t, err)
	assert.Len(t, password, temporaryPasswordLength)

	_, err = svc.ResetMemberPassword(context.Background(), 10, 3)
	assert.Equal(t, apperrors.ErrMemberNotFound, err)
}

func TestUserService_ListFamilyUsers(t *testing.T) {
	users := new(MockUserRepository)
	users.On("ListByFamily", mock.Anything, uint(10)).Return([]model.FamilyUser{{ID: 1}, {ID: 2}}, nil)

	list, err := NewUserService(users, new(MockFamilyRepository), nil).ListFamilyUsers(context.Background(), 10, 2)
	require.NoError(t, err)
	assert.False(t, list[0].IsCurrentUser)
	assert.True(t, list[1].IsCurrentUser)
}
