package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "famledger/internal/errors"
	"famledger/internal/model"
	"famledger/internal/repository"
)

// FutureExpenseInput carries a new commitment.
type FutureExpenseInput struct {
	Title         string
	TotalAmount   decimal.Decimal
	MonthlyAmount decimal.Decimal
	StartMonth    string
	EndMonth      string
}

// FutureExpenseService records and queries a family's recurring commitments.
type FutureExpenseService interface {
	Create(ctx context.Context, familyID, userID uint, in FutureExpenseInput) (*model.FutureExpenseRow, error)
	List(ctx context.Context, familyID uint, filter model.FutureExpenseFilter) ([]model.FutureExpenseRow, error)
	Get(ctx context.Context, familyID, id uint) (*model.FutureExpenseRow, error)
	Update(ctx context.Context, familyID, actorID, id uint, upd model.FutureExpenseUpdate) (*model.FutureExpenseRow, error)
	Delete(ctx context.Context, familyID, actorID, id uint) error
	MonthlyTotal(ctx context.Context, familyID uint) (decimal.Decimal, error)
}

type futureExpenseService struct {
	repo repository.FutureExpenseRepository
	now  func() time.Time
}

// NewFutureExpenseService creates a new future expense service. nil now means time.Now.
func NewFutureExpenseService(repo repository.FutureExpenseRepository, now func() time.Time) FutureExpenseService {
	if now == nil {
		now = time.Now
	}
	return &futureExpenseService{repo: repo, now: now}
}

func checkMonthRange(start, end string) error {
	if start > end {
		return apperrors.ErrInvalidDateRange
	}
	return nil
}

func (s *futureExpenseService) Create(ctx context.Context, familyID, userID uint, in FutureExpenseInput) (*model.FutureExpenseRow, error) {
	if err := requireAmount(in.TotalAmount, in.MonthlyAmount); err != nil {
		return nil, err
	}
	if err := checkMonthRange(in.StartMonth, in.EndMonth); err != nil {
		return nil, err
	}

	fe := &model.FutureExpense{
		FamilyID:      familyID,
		UserID:        userID,
		Title:         strings.TrimSpace(in.Title),
		TotalAmount:   in.TotalAmount,
		MonthlyAmount: in.MonthlyAmount,
		StartMonth:    in.StartMonth,
		EndMonth:      in.EndMonth,
	}
	if err := s.repo.Create(ctx, fe); err != nil {
		return nil, fmt.Errorf("create future expense: %w", err)
	}
	return s.Get(ctx, familyID, fe.ID)
}

func (s *futureExpenseService) List(ctx context.Context, familyID uint, filter model.FutureExpenseFilter) ([]model.FutureExpenseRow, error) {
	rows, err := s.repo.List(ctx, familyID, filter)
	if err != nil {
		return nil, fmt.Errorf("list future expenses: %w", err)
	}
	return rows, nil
}

func (s *futureExpenseService) Get(ctx context.Context, familyID, id uint) (*model.FutureExpenseRow, error) {
	row, err := s.repo.FindByID(ctx, id, familyID)
	if err != nil {
		return nil, fmt.Errorf("find future expense: %w", err)
	}
	if row == nil {
		return nil, apperrors.ErrFutureExpenseNotFound
	}
	return row, nil
}

// Update applies a partial update; the resulting month range must stay ordered.
func (s *futureExpenseService) Update(ctx context.Context, familyID, actorID, id uint, upd model.FutureExpenseUpdate) (*model.FutureExpenseRow, error) {
	existing, err := s.Get(ctx, familyID, id)
	if err != nil {
		return nil, err
	}
	if err := RequireAuthor(existing.UserID, actorID); err != nil {
		return nil, err
	}
	upd.Title = trimmedOrNil(upd.Title)
	if len(upd.Columns()) == 0 {
		return nil, apperrors.ErrNoFieldsToUpdate
	}
	for _, a := range []*decimal.Decimal{upd.TotalAmount, upd.MonthlyAmount} {
		if a != nil {
			if err := requireAmount(*a); err != nil {
				return nil, err
			}
		}
	}
	start, end := existing.StartMonth, existing.EndMonth
	if upd.StartMonth != nil {
		start = *upd.StartMonth
	}
	if upd.EndMonth != nil {
		end = *upd.EndMonth
	}
	if err := checkMonthRange(start, end); err != nil {
		return nil, err
	}

	row, err := s.repo.Update(ctx, id, familyID, upd)
	if err != nil {
		return nil, fmt.Errorf("update future expense: %w", err)
	}
	if row == nil {
		return nil, apperrors.ErrFutureExpenseNotFound
	}
	return row, nil
}

func (s *futureExpenseService) Delete(ctx context.Context, familyID, actorID, id uint) error {
	existing, err := s.Get(ctx, familyID, id)
	if err != nil {
		return err
	}
	if err := RequireAuthor(existing.UserID, actorID); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id, familyID)
	if err != nil {
		return fmt.Errorf("delete future expense: %w", err)
	}
	if deleted == nil {
		return apperrors.ErrFutureExpenseNotFound
	}
	return nil
}

// MonthlyTotal is the monthly load of the family's active commitments.
func (s *futureExpenseService) MonthlyTotal(ctx context.Context, familyID uint) (decimal.Decimal, error) {
	total, err := s.repo.ActiveMonthlyTotal(ctx, familyID, model.CurrentMonth(s.now()))
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum future expenses: %w", err)
	}
	return total, nil
}
