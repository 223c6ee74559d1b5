package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when an email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUsernameTaken is returned when a username is already in use.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials is returned when login or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrIncorrectPassword is returned when the current password does not verify.
	ErrIncorrectPassword = errors.New("current password is incorrect")
	// ErrSamePassword is returned when the new password equals the current one.
	ErrSamePassword = errors.New("new password must be different from current password")
	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")

	// ErrFamilyNotFound is returned when a family does not exist.
	ErrFamilyNotFound = errors.New("family not found")
	// ErrNotFamilyMember is returned when the caller does not belong to the family.
	ErrNotFamilyMember = errors.New("not a member of this family")
	// ErrAdminRequired is returned when an operation needs the admin role.
	ErrAdminRequired = errors.New("admin role required")
	// ErrNotCreator is returned when only the family creator may act.
	ErrNotCreator = errors.New("only the family creator can delete the family")
	// ErrMemberNotFound is returned when a membership does not exist.
	ErrMemberNotFound = errors.New("member not found")
	// ErrCannotRemoveSelf is returned when an admin tries to remove themself.
	ErrCannotRemoveSelf = errors.New("cannot remove yourself from the family")
	// ErrLastAdmin is returned when a change would leave a family without an admin.
	ErrLastAdmin = errors.New("family must keep at least one admin")
	// ErrNameRequired is returned when a new member is added without a name.
	ErrNameRequired = errors.New("name is required for new users")

	// ErrNotAuthor is returned when a ledger entry is mutated by someone other than its author.
	ErrNotAuthor = errors.New("not authorized to modify this entry")
	// ErrExpenseNotFound is returned when an expense does not exist in the family.
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrIncomeNotFound is returned when an income entry does not exist in the family.
	ErrIncomeNotFound = errors.New("income not found")
	// ErrFutureExpenseNotFound is returned when a future expense does not exist in the family.
	ErrFutureExpenseNotFound = errors.New("future expense not found")
	// ErrCategoryNotFound is returned when a category is missing or not editable.
	ErrCategoryNotFound = errors.New("category not found or cannot be modified")
	// ErrCategoryNotInFamily is returned when an expense references a category the family cannot use.
	ErrCategoryNotInFamily = errors.New("category is not available to this family")

	// ErrNoFieldsToUpdate is returned for an empty partial update.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	// ErrInvalidAmount is returned for amounts a decimal(12,2) column cannot hold exactly.
	ErrInvalidAmount = errors.New("amount must be between 0.01 and 9999999999.99 with at most 2 decimal places")
	// ErrInvalidDateRange is returned when a start bound is after its end bound.
	ErrInvalidDateRange = errors.New("start must not be after end")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// FieldError describes one failed input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse is returned for field-level validation failures.
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

type mapping struct {
	status int
	code   string
}

var mappings = []struct {
	err error
	mapping
}{
	{ErrUserNotFound, mapping{http.StatusNotFound, "USER_NOT_FOUND"}},
	{ErrEmailTaken, mapping{http.StatusBadRequest, "EMAIL_TAKEN"}},
	{ErrUsernameTaken, mapping{http.StatusBadRequest, "USERNAME_TAKEN"}},
	{ErrInvalidCredentials, mapping{http.StatusUnauthorized, "INVALID_CREDENTIALS"}},
	{ErrInvalidRefreshToken, mapping{http.StatusUnauthorized, "INVALID_REFRESH_TOKEN"}},
	{ErrIncorrectPassword, mapping{http.StatusUnauthorized, "INCORRECT_PASSWORD"}},
	{ErrSamePassword, mapping{http.StatusBadRequest, "SAME_PASSWORD"}},
	{ErrPasswordTooLong, mapping{http.StatusBadRequest, "PASSWORD_TOO_LONG"}},
	{ErrFamilyNotFound, mapping{http.StatusNotFound, "FAMILY_NOT_FOUND"}},
	{ErrNotFamilyMember, mapping{http.StatusForbidden, "NOT_FAMILY_MEMBER"}},
	{ErrAdminRequired, mapping{http.StatusForbidden, "ADMIN_REQUIRED"}},
	{ErrNotCreator, mapping{http.StatusForbidden, "NOT_CREATOR"}},
	{ErrMemberNotFound, mapping{http.StatusNotFound, "MEMBER_NOT_FOUND"}},
	{ErrCannotRemoveSelf, mapping{http.StatusBadRequest, "CANNOT_REMOVE_SELF"}},
	{ErrLastAdmin, mapping{http.StatusBadRequest, "LAST_ADMIN"}},
	{ErrNameRequired, mapping{http.StatusBadRequest, "NAME_REQUIRED"}},
	{ErrNotAuthor, mapping{http.StatusForbidden, "NOT_AUTHOR"}},
	{ErrExpenseNotFound, mapping{http.StatusNotFound, "EXPENSE_NOT_FOUND"}},
	{ErrIncomeNotFound, mapping{http.StatusNotFound, "INCOME_NOT_FOUND"}},
	{ErrFutureExpenseNotFound, mapping{http.StatusNotFound, "FUTURE_EXPENSE_NOT_FOUND"}},
	{ErrCategoryNotFound, mapping{http.StatusNotFound, "CATEGORY_NOT_FOUND"}},
	{ErrCategoryNotInFamily, mapping{http.StatusBadRequest, "INVALID_CATEGORY"}},
	{ErrNoFieldsToUpdate, mapping{http.StatusBadRequest, "NO_FIELDS_TO_UPDATE"}},
	{ErrInvalidAmount, mapping{http.StatusBadRequest, "INVALID_AMOUNT"}},
	{ErrInvalidDateRange, mapping{http.StatusBadRequest, "INVALID_DATE_RANGE"}},
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, m.err.Error(), m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}

// IsDomain reports whether err maps to a non-500 response.
func IsDomain(err error) bool {
	return MapErrorToHTTP(err).StatusCode != http.StatusInternalServerError
}
