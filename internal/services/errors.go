package services

import "errors"

// Business rule violations surfaced to handlers. Repository errors pass
// through wrapped, so errors.Is still finds the repository sentinels.
var (
	// ErrInsufficientFunds is returned when a debit would overdraw a
	// child's balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidState is returned when an operation is not allowed in the
	// entity's current lifecycle state.
	ErrInvalidState = errors.New("invalid state for operation")

	// ErrValidation is returned when request data fails validation.
	ErrValidation = errors.New("validation failed")
)

// IsInsufficientFunds checks if an error is an insufficient funds error
func IsInsufficientFunds(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsInvalidState checks if an error is an invalid state error
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
