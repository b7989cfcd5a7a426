package repo_interfaces

import (
	"context"

	"github.com/finbase/account-service/internal/domain"
)

// AccountRepository is the store contract consumed by the services.
//
// UpdateAccount and UpdateAccountPair are the transactional units of work:
// the callback receives the current row(s) under a lock that holds until the
// update commits, so a check-then-write sequence inside the callback cannot
// be interleaved by a concurrent writer. A non-nil error from the callback
// rolls the transaction back with nothing persisted. Pair updates lock the
// two rows in ascending id order regardless of argument order.
type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByDocument(ctx context.Context, document string) (domain.Account, error)
	GetByID(ctx context.Context, id string) (domain.Account, error)
	// List returns a page of accounts ordered by id ascending. Pages are
	// 1-based.
	List(ctx context.Context, page, pageSize int) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, document string, apply func(account *domain.Account) error) error
	UpdateAccountPair(ctx context.Context, documentA, documentB string, apply func(a, b *domain.Account) error) error
}
