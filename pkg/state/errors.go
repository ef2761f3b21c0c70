package state

import "errors"

var (
	// ErrUserNotFound indicates the login target is not in the synced
	// user list.
	ErrUserNotFound = errors.New("user not found")
	// ErrPINMismatch indicates a failed PIN check. Nothing is mutated
	// and nothing is queued.
	ErrPINMismatch = errors.New("incorrect PIN")
	// ErrEmptyCart indicates checkout was attempted with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNoPaymentMethod indicates checkout without a selected method.
	ErrNoPaymentMethod = errors.New("no payment method selected")
	// ErrCustomerNotFound indicates a credit checkout referenced an
	// unknown customer.
	ErrCustomerNotFound = errors.New("credit customer not found")
	// ErrMissingFields indicates a record form was submitted without
	// its required fields.
	ErrMissingFields = errors.New("missing required fields")
)
