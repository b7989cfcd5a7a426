package domain

// Transition validates a status change. CLOSED is terminal and requesting
// the current status again is invalid; every other move between ACTIVE,
// BLOCKED and CLOSED is allowed.
func Transition(current, requested AccountStatus) error {
	if current == AccountStatusClosed || current == requested {
		return &TransitionError{Current: current, Requested: requested}
	}
	return nil
}

// EnsureActive gates every balance-changing operation.
func EnsureActive(account Account) error {
	if account.Status != AccountStatusActive {
		return &NotActiveError{Status: account.Status}
	}
	return nil
}
