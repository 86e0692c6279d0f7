package store

import (
	"errors"
	"fmt"
)

var (
	ErrAuthentication        = errors.New("invalid email or password")
	ErrNotAuthenticated      = errors.New("no active session")
	ErrInsufficientBalance   = errors.New("insufficient cashback balance")
	ErrInvalidAmount         = errors.New("amount must be greater than zero")
	ErrItemNotFound          = errors.New("cart item not found")
	ErrOperationPending      = errors.New("operation already in progress")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrAddressNotFound       = errors.New("address not found")
)

// ValidationError reports malformed or missing input for a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// RestaurantMismatchError is returned when an item from another restaurant is
// added without asking to replace the current cart.
type RestaurantMismatchError struct {
	CurrentID   string
	CurrentName string
	IncomingID  string
}

func (e *RestaurantMismatchError) Error() string {
	return fmt.Sprintf("cart already holds items from %s; replace it to add items from restaurant %s", e.CurrentName, e.IncomingID)
}
