package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"famledger/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == 0 {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) SetPasswordHash(ctx context.Context, id uint, hash string) (*model.User, error) {
	args := m.Called(ctx, id, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uint, upd model.ProfileUpdate) (*model.User, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListByFamily(ctx context.Context, familyID uint) ([]model.FamilyUser, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FamilyUser), args.Error(1)
}

// MockFamilyRepository is a mock implementation of FamilyRepository.
type MockFamilyRepository struct {
	mock.Mock
}

func (m *MockFamilyRepository) CreateWithAdmin(ctx context.Context, name string, creatorID uint) (*model.Family, error) {
	args := m.Called(ctx, name, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Family), args.Error(1)
}

func (m *MockFamilyRepository) ListForUser(ctx context.Context, userID uint) ([]model.FamilyWithRole, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FamilyWithRole), args.Error(1)
}

func (m *MockFamilyRepository) FindByID(ctx context.Context, familyID uint) (*model.Family, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Family), args.Error(1)
}

func (m *MockFamilyRepository) Membership(ctx context.Context, familyID, userID uint) (*model.FamilyMember, error) {
	args := m.Called(ctx, familyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FamilyMember), args.Error(1)
}

func (m *MockFamilyRepository) ListMembers(ctx context.Context, familyID uint) ([]model.Member, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Member), args.Error(1)
}

func (m *MockFamilyRepository) AddMember(ctx context.Context, familyID, userID uint, role model.Role) (*model.FamilyMember, error) {
	args := m.Called(ctx, familyID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FamilyMember), args.Error(1)
}

func (m *MockFamilyRepository) RemoveMember(ctx context.Context, familyID, userID uint) (*model.FamilyMember, error) {
	args := m.Called(ctx, familyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FamilyMember), args.Error(1)
}

func (m *MockFamilyRepository) CountAdmins(ctx context.Context, familyID uint) (int64, error) {
	args := m.Called(ctx, familyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFamilyRepository) Delete(ctx context.Context, familyID uint) (*model.Family, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Family), args.Error(1)
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context, familyID uint) ([]model.Category, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindVisible(ctx context.Context, id, familyID uint) (*model.Category, error) {
	args := m.Called(ctx, id, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, id, familyID uint, upd model.CategoryUpdate) (*model.Category, error) {
	args := m.Called(ctx, id, familyID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id, familyID uint) (*model.Category, error) {
	args := m.Called(ctx, id, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) SeedDefaults(ctx context.Context, defaults []model.Category) (int, error) {
	args := m.Called(ctx, defaults)
	return args.Int(0), args.Error(1)
}

// MockExpenseRepository is a mock implementation of ExpenseRepository.
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) List(ctx context.Context, familyID uint, filter model.ExpenseFilter) ([]model.ExpenseRow, error) {
	args := m.Called(ctx, familyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ExpenseRow), args.Error(1)
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id, familyID uint) (*model.ExpenseRow, error) {
	args := m.Called(ctx, id, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExpenseRow), args.Error(1)
}

func (m *MockExpenseRepository) Update(ctx context.Context, id, familyID uint, upd model.ExpenseUpdate) (*model.ExpenseRow, error) {
	args := m.Called(ctx, id, familyID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExpenseRow), args.Error(1)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id, familyID uint) (*model.Expense, error) {
	args := m.Called(ctx, id, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Expense), args.Error(1)
}

// MockIncomeRepository is a mock implementation of IncomeRepository.
type MockIncomeRepository struct {
	mock.Mock
}

func (m *MockIncomeRepository) Create(ctx context.Context, income *model.Income) error {
	args := m.Called(ctx, income)
	return args.Error(0)
}

func (m *MockIncomeRepository) List(ctx context.Context, familyID uint, filter model.IncomeFilter) ([]model.IncomeRow, error) {
	args := m.Called(ctx, familyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.IncomeRow), args.Error(1)
}

func (m *MockIncomeRepository) FindByID(ctx context.Context, id, familyID uint) (*model.IncomeRow, error) {
	args := m.Called(ctx, id, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.IncomeRow), args.Error(1)
}

func (m *MockIncomeRepository) Update(ctx context.Context, id, familyID uint, upd model.IncomeUpdate) (*model.IncomeRow, error) {
	args := m.Called(ctx, id, familyID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.IncomeRow), args.Error(1)
}

func (m *MockIncomeRepository) Delete(ctx context.Context, id, familyID uint) (*model.Income, error) {
	args := m.Called(ctx, id, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Income), args.Error(1)
}

// MockFutureExpenseRepository is a mock implementation of FutureExpenseRepository.
type MockFutureExpenseRepository struct {
	mock.Mock
}

func (m *MockFutureExpenseRepository) Create(ctx context.Context, fe *model.FutureExpense) error {
	args := m.Called(ctx, fe)
	return args.Error(0)
}

func (m *MockFutureExpenseRepository) List(ctx context.Context, familyID uint, filter model.FutureExpenseFilter) ([]model.FutureExpenseRow, error) {
	args := m.Called(ctx, familyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FutureExpenseRow), args.Error(1)
}

func (m *MockFutureExpenseRepository) FindByID(ctx context.Context, id, familyID uint) (*model.FutureExpenseRow, error) {
	args := m.Called(ctx, id, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FutureExpenseRow), args.Error(1)
}

func (m *MockFutureExpenseRepository) Update(ctx context.Context, id, familyID uint, upd model.FutureExpenseUpdate) (*model.FutureExpenseRow, error) {
	args := m.Called(ctx, id, familyID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FutureExpenseRow), args.Error(1)
}

func (m *MockFutureExpenseRepository) Delete(ctx context.Context, id, familyID uint) (*model.FutureExpense, error) {
	args := m.Called(ctx, id, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FutureExpense), args.Error(1)
}

func (m *MockFutureExpenseRepository) ActiveMonthlyTotal(ctx context.Context, familyID uint, month string) (decimal.Decimal, error) {
	args := m.Called(ctx, familyID, month)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockAnalyticsRepository is a mock implementation of AnalyticsRepository.
type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) TotalExpense(ctx context.Context, q model.AnalyticsQuery) (decimal.Decimal, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAnalyticsRepository) TotalIncome(ctx context.Context, q model.AnalyticsQuery) (decimal.Decimal, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAnalyticsRepository) PerMember(ctx context.Context, q model.AnalyticsQuery) ([]model.MemberTotal, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MemberTotal), args.Error(1)
}

func (m *MockAnalyticsRepository) ByCategory(ctx context.Context, q model.AnalyticsQuery) ([]model.CategoryTotal, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CategoryTotal), args.Error(1)
}

func (m *MockAnalyticsRepository) MonthlyTrend(ctx context.Context, q model.AnalyticsQuery) ([]model.MonthTotal, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MonthTotal), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}
