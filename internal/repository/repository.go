package repository

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"famledger/internal/db"
	apperrors "famledger/internal/errors"
)

type sumRow struct {
	Total decimal.Decimal
}

// takeOrNil runs tx and returns the single matching row, or nil when there is none.
func takeOrNil[T any](tx *gorm.DB) (*T, error) {
	var out T
	err := tx.Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// translateUserConflict turns a unique violation on the users table into a domain error.
func translateUserConflict(err error) error {
	constraint, ok := db.UniqueViolation(err)
	if !ok {
		return err
	}
	if strings.Contains(constraint, "username") {
		return apperrors.ErrUsernameTaken
	}
	return apperrors.ErrEmailTaken
}
