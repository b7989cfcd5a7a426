package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrAccountNotFound     = errors.New("account not found")
	ErrDuplicateDocument   = errors.New("document already registered")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")

	// ErrConflict marks transient store-level write contention. The ledger
	// service retries on it before surfacing it to the caller.
	ErrConflict = errors.New("write conflict")
)

// NotActiveError is returned when a balance-changing operation targets an
// account that is not ACTIVE. It carries the current status for diagnostics.
type NotActiveError struct {
	Status AccountStatus
}

func (e *NotActiveError) Error() string {
	return fmt.Sprintf("account is not active: current status %s", e.Status)
}

// TransitionError is returned for an illegal status change.
type TransitionError struct {
	Current   AccountStatus
	Requested AccountStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.Current, e.Requested)
}
