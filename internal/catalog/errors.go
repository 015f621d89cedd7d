package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError reports malformed caller input, e.g. an empty product
// id or a negative refill amount. It never indicates a storage problem.
type ValidationError struct {
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "invalid input: " + e.Reason
}

// IsValidation returns true if err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalidf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// InsufficientStockError rejects an order whose aggregated demand for a
// product exceeds its current stock. No deduction has happened when this
// is returned.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

// Error implements the error interface.
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// IsInsufficientStock returns true if err is a stock rejection.
// Uses errors.As to handle wrapped errors.
func IsInsufficientStock(err error) bool {
	var se *InsufficientStockError
	return errors.As(err, &se)
}

// InsufficientIngredientError rejects an order whose aggregated recipe
// demand for one ingredient exceeds the inventory on hand. Ingredient
// names the first insufficient ingredient in order traversal order, for
// diagnostic messages.
type InsufficientIngredientError struct {
	Ingredient string
	Needed     decimal.Decimal
	Available  decimal.Decimal
	Unit       string
}

// Error implements the error interface.
func (e *InsufficientIngredientError) Error() string {
	return fmt.Sprintf("insufficient %s: need %s%s, have %s%s",
		e.Ingredient, e.Needed, e.Unit, e.Available, e.Unit)
}

// IsInsufficientIngredient returns true if err is an ingredient rejection.
// Uses errors.As to handle wrapped errors.
func IsInsufficientIngredient(err error) bool {
	var ie *InsufficientIngredientError
	return errors.As(err, &ie)
}

// ErrNotFound is returned by lookups for unknown products, inventory
// items or accounts.
var ErrNotFound = errors.New("not found")
