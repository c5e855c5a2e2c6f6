package service

import (
	"errors"
	"fmt"
)

// ErrValidation is the common ancestor of every input validation failure.
// Callers that only care whether input was bad can errors.Is against it
// instead of enumerating the family.
var ErrValidation = errors.New("invalid input")

var (
	ErrEmptyName           = fmt.Errorf("%w: product name is empty", ErrValidation)
	ErrNameHasDelimiter    = fmt.Errorf("%w: product name contains a delimiter", ErrValidation)
	ErrThresholdOrder      = fmt.Errorf("%w: threshold 1 must be greater than threshold 2", ErrValidation)
	ErrNonPositiveQuantity = fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
	ErrNegativeUnitPrice   = fmt.Errorf("%w: unit price must not be negative", ErrValidation)
	ErrUnknownKind         = fmt.Errorf("%w: unknown transaction kind", ErrValidation)
)

// ErrProductNotFound is returned when an id has no product in the record set
// an operation requires it in.
var ErrProductNotFound = errors.New("product not found")

// ErrInsufficientStock is the sentinel behind InsufficientStockError.
var ErrInsufficientStock = errors.New("insufficient stock")

// InsufficientStockError reports a sell that would drive quantity below zero.
// It satisfies errors.Is(err, ErrInsufficientStock).
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: %d available, %d requested", e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
