package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "famledger/internal/errors"
	"famledger/internal/model"
	"famledger/internal/repository"
)

// ExpenseInput carries a new expense.
type ExpenseInput struct {
	CategoryID *uint
	Amount     decimal.Decimal
	Date       model.Date
	Note       *string
}

// ExpenseService records and queries a family's expenses.
type ExpenseService interface {
	Create(ctx context.Context, familyID, userID uint, in ExpenseInput) (*model.ExpenseRow, error)
	List(ctx context.Context, familyID uint, filter model.ExpenseFilter) ([]model.ExpenseRow, error)
	Get(ctx context.Context, familyID, id uint) (*model.ExpenseRow, error)
	Update(ctx context.Context, familyID, actorID, id uint, upd model.ExpenseUpdate) (*model.ExpenseRow, error)
	Delete(ctx context.Context, familyID, actorID, id uint) error
}

type expenseService struct {
	expenses   repository.ExpenseRepository
	categories repository.CategoryRepository
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenses repository.ExpenseRepository, categories repository.CategoryRepository) ExpenseService {
	return &expenseService{expenses: expenses, categories: categories}
}

var (
	minAmount = decimal.New(1, -2)
	maxAmount = decimal.New(1, 10)
)

// requireAmount accepts what a decimal(12,2) column stores exactly: 0.01 up to
// 9999999999.99 with at most two decimal places.
func requireAmount(amounts ...decimal.Decimal) error {
	for _, a := range amounts {
		if a.LessThan(minAmount) || a.GreaterThanOrEqual(maxAmount) || !a.Equal(a.Truncate(2)) {
			return apperrors.ErrInvalidAmount
		}
	}
	return nil
}

func (s *expenseService) checkCategory(ctx context.Context, familyID uint, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	category, err := s.categories.FindVisible(ctx, *categoryID, familyID)
	if err != nil {
		return fmt.Errorf("find category: %w", err)
	}
	if category == nil {
		return apperrors.ErrCategoryNotInFamily
	}
	return nil
}

func (s *expenseService) Create(ctx context.Context, familyID, userID uint, in ExpenseInput) (*model.ExpenseRow, error) {
	if err := requireAmount(in.Amount); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, familyID, in.CategoryID); err != nil {
		return nil, err
	}

	expense := &model.Expense{
		FamilyID:   familyID,
		UserID:     userID,
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
		Date:       in.Date,
		Note:       in.Note,
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return s.Get(ctx, familyID, expense.ID)
}

func (s *expenseService) List(ctx context.Context, familyID uint, filter model.ExpenseFilter) ([]model.ExpenseRow, error) {
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(filter.EndDate.Time) {
		return nil, apperrors.ErrInvalidDateRange
	}
	rows, err := s.expenses.List(ctx, familyID, filter)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return rows, nil
}

func (s *expenseService) Get(ctx context.Context, familyID, id uint) (*model.ExpenseRow, error) {
	row, err := s.expenses.FindByID(ctx, id, familyID)
	if err != nil {
		return nil, fmt.Errorf("find expense: %w", err)
	}
	if row == nil {
		return nil, apperrors.ErrExpenseNotFound
	}
	return row, nil
}

// Update applies a partial update. Only the expense's author may change it.
func (s *expenseService) Update(ctx context.Context, familyID, actorID, id uint, upd model.ExpenseUpdate) (*model.ExpenseRow, error) {
	existing, err := s.Get(ctx, familyID, id)
	if err != nil {
		return nil, err
	}
	if err := RequireAuthor(existing.UserID, actorID); err != nil {
		return nil, err
	}
	if len(upd.Columns()) == 0 {
		return nil, apperrors.ErrNoFieldsToUpdate
	}
	if upd.Amount != nil {
		if err := requireAmount(*upd.Amount); err != nil {
			return nil, err
		}
	}
	if err := s.checkCategory(ctx, familyID, upd.CategoryID); err != nil {
		return nil, err
	}

	row, err := s.expenses.Update(ctx, id, familyID, upd)
	if err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	if row == nil {
		return nil, apperrors.ErrExpenseNotFound
	}
	return row, nil
}

// Delete removes the expense. Only its author may do this.
func (s *expenseService) Delete(ctx context.Context, familyID, actorID, id uint) error {
	existing, err := s.Get(ctx, familyID, id)
	if err != nil {
		return err
	}
	if err := RequireAuthor(existing.UserID, actorID); err != nil {
		return err
	}

	deleted, err := s.expenses.Delete(ctx, id, familyID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if deleted == nil {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}
