package custom_error

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type CustomError interface {
	Error() string
}

type UniqueViolationError struct {
	message string
	code    string // PostgreSQL error code (e.g., "23505")
}

type ForeignKeyViolationError struct {
	message string
	code    string // PostgreSQL error code (e.g., "23503")
}

func (f *ForeignKeyViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", f.message, f.code)
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", e.message, e.code)
}

func WrapDBError(message, code string) CustomError {
	switch code {
	case "23505":
		return &UniqueViolationError{
			message: message,
			code:    code,
		}
	case "23503":
		return &ForeignKeyViolationError{
			message: "Value is already used by other resources " + message,
			code:    code,
		}
	default:
		return fmt.Errorf("uncategorized error occurred with code %s: %s", code, message)
	}
}

// NotFoundError marks a lookup of a resource id that does not exist.
type NotFoundError struct {
	Resource string
	ID       interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

func NewNotFoundError(resource string, id interface{}) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError marks an illegal state transition or a duplicate unique key.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// ValidationError carries field-level detail back to the caller.
type ValidationError struct {
	Message  string `json:"message"`
	Property string `json:"property"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Property, e.Message)
}

func NewValidationError(property, message string) *ValidationError {
	return &ValidationError{Message: message, Property: property}
}

// InsufficientStockError carries the available/requested quantities so the
// client can display the shortfall.
type InsufficientStockError struct {
	IngredientID int             `json:"ingredient_id"`
	Available    decimal.Decimal `json:"available"`
	Requested    decimal.Decimal `json:"requested"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf(
		"insufficient stock for ingredient %d: available %s, requested %s",
		e.IngredientID, e.Available.String(), e.Requested.String(),
	)
}

func NewInsufficientStockError(ingredientID int, available, requested decimal.Decimal) *InsufficientStockError {
	return &InsufficientStockError{
		IngredientID: ingredientID,
		Available:    available,
		Requested:    requested,
	}
}
