package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "famledger/internal/errors"
	"famledger/internal/model"
	"famledger/internal/repository"
)

// IncomeInput carries a new income entry.
type IncomeInput struct {
	Source string
	Amount decimal.Decimal
	Month  string
	Note   *string
}

// IncomeService records and queries a family's income.
type IncomeService interface {
	Create(ctx context.Context, familyID, userID uint, in IncomeInput) (*model.IncomeRow, error)
	List(ctx context.Context, familyID uint, filter model.IncomeFilter) ([]model.IncomeRow, error)
	Get(ctx context.Context, familyID, id uint) (*model.IncomeRow, error)
	Update(ctx context.Context, familyID, actorID, id uint, upd model.IncomeUpdate) (*model.IncomeRow, error)
	Delete(ctx context.Context, familyID, actorID, id uint) error
}

type incomeService struct {
	repo repository.IncomeRepository
}

// NewIncomeService creates a new income service.
func NewIncomeService(repo repository.IncomeRepository) IncomeService {
	return &incomeService{repo: repo}
}

func (s *incomeService) Create(ctx context.Context, familyID, userID uint, in IncomeInput) (*model.IncomeRow, error) {
	if err := requireAmount(in.Amount); err != nil {
		return nil, err
	}
	income := &model.Income{
		FamilyID: familyID,
		UserID:   userID,
		Source:   strings.TrimSpace(in.Source),
		Amount:   in.Amount,
		Month:    in.Month,
		Note:     in.Note,
	}
	if err := s.repo.Create(ctx, income); err != nil {
		return nil, fmt.Errorf("create income: %w", err)
	}
	return s.Get(ctx, familyID, income.ID)
}

func (s *incomeService) List(ctx context.Context, familyID uint, filter model.IncomeFilter) ([]model.IncomeRow, error) {
	rows, err := s.repo.List(ctx, familyID, filter)
	if err != nil {
		return nil, fmt.Errorf("list income: %w", err)
	}
	return rows, nil
}

func (s *incomeService) Get(ctx context.Context, familyID, id uint) (*model.IncomeRow, error) {
	row, err := s.repo.FindByID(ctx, id, familyID)
	if err != nil {
		return nil, fmt.Errorf("find income: %w", err)
	}
	if row == nil {
		return nil, apperrors.ErrIncomeNotFound
	}
	return row, nil
}

func (s *incomeService) Update(ctx context.Context, familyID, actorID, id uint, upd model.IncomeUpdate) (*model.IncomeRow, error) {
	existing, err := s.Get(ctx, familyID, id)
	if err != nil {
		return nil, err
	}
	if err := RequireAuthor(existing.UserID, actorID); err != nil {
		return nil, err
	}
	upd.Source = trimmedOrNil(upd.Source)
	if len(upd.Columns()) == 0 {
		return nil, apperrors.ErrNoFieldsToUpdate
	}
	if upd.Amount != nil {
		if err := requireAmount(*upd.Amount); err != nil {
			return nil, err
		}
	}

	row, err := s.repo.Update(ctx, id, familyID, upd)
	if err != nil {
		return nil, fmt.Errorf("update income: %w", err)
	}
	if row == nil {
		return nil, apperrors.ErrIncomeNotFound
	}
	return row, nil
}

func (s *incomeService) Delete(ctx context.Context, familyID, actorID, id uint) error {
	existing, err := s.Get(ctx, familyID, id)
	if err != nil {
		return err
	}
	if err := RequireAuthor(existing.UserID, actorID); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id, familyID)
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	if deleted == nil {
		return apperrors.ErrIncomeNotFound
	}
	return nil
}
