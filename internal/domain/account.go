package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountStatusActive  AccountStatus = "ACTIVE"
	AccountStatusBlocked AccountStatus = "BLOCKED"
	AccountStatusClosed  AccountStatus = "CLOSED"
)

// Account is the sole persisted entity. Balance is never negative and is
// mutated only through the ledger operations; Status only through the
// lifecycle transitions.
type Account struct {
	ID         string
	Document   string
	HolderName string
	Balance    decimal.Decimal
	Status     AccountStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
