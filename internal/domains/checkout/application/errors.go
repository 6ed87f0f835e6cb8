package application

import (
	"errors"
	"fmt"
)

// ErrInvalidInput wraps validation failures from the checkout request.
var ErrInvalidInput = errors.New("invalid input")

// ErrEmptyCart is returned when checkout is attempted against a cart with no
// lines. No payment intent and no order result from such an attempt.
var ErrEmptyCart = errors.New("cart is empty")

// PaymentDeclinedError reports that the gateway did not confirm the payment.
// The cart is left untouched so the customer can retry.
type PaymentDeclinedError struct {
	Reason string
}

func (e *PaymentDeclinedError) Error() string {
	return fmt.Sprintf("payment declined: %s", e.Reason)
}

// PersistenceError reports that payment was captured but the order could not
// be written. The payment reference is carried for manual reconciliation.
type PersistenceError struct {
	PaymentRef string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("order persistence failed for payment %s: %v", e.PaymentRef, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
