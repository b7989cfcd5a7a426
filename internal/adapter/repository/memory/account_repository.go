// Package memory backs tests and local runs with a mutex-guarded account
// store that honors the same contract as the Postgres repository, ordered
// pair locking included.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finbase/account-service/internal/domain"
)

const maxPageSize = 100

type accountRecord struct {
	// id duplicates account.ID so pair updates can pick their lock order
	// without touching the mutex-guarded account. Immutable after Create.
	id string

	mu      sync.Mutex
	account domain.Account
}

type AccountRepository struct {
	mu         sync.RWMutex
	byDocument map[string]*accountRecord
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byDocument: make(map[string]*accountRecord),
	}
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byDocument[account.Document]; exists {
		return domain.Account{}, domain.ErrDuplicateDocument
	}

	now := time.Now().UTC()
	account.ID = uuid.NewString()
	account.CreatedAt = now
	account.UpdatedAt = now

	r.byDocument[account.Document] = &accountRecord{id: account.ID, account: account}
	return account, nil
}

func (r *AccountRepository) GetByDocument(_ context.Context, document string) (domain.Account, error) {
	record, err := r.lookup(document)
	if err != nil {
		return domain.Account{}, err
	}

	record.mu.Lock()
	defer record.mu.Unlock()
	return record.account, nil
}

func (r *AccountRepository) GetByID(_ context.Context, id string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.byDocument {
		record.mu.Lock()
		account := record.account
		record.mu.Unlock()
		if account.ID == id {
			return account, nil
		}
	}
	return domain.Account{}, domain.ErrAccountNotFound
}

func (r *AccountRepository) List(_ context.Context, page, pageSize int) ([]domain.Account, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	} else if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	r.mu.RLock()
	records := make([]*accountRecord, 0, len(r.byDocument))
	for _, record := range r.byDocument {
		records = append(records, record)
	}
	r.mu.RUnlock()

	accounts := make([]domain.Account, 0, len(records))
	for _, record := range records {
		record.mu.Lock()
		accounts = append(accounts, record.account)
		record.mu.Unlock()
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].ID < accounts[j].ID
	})

	start := (page - 1) * pageSize
	if start >= len(accounts) {
		return []domain.Account{}, nil
	}
	end := start + pageSize
	if end > len(accounts) {
		end = len(accounts)
	}
	return accounts[start:end], nil
}

func (r *AccountRepository) UpdateAccount(_ context.Context, document string, apply func(account *domain.Account) error) error {
	record, err := r.lookup(document)
	if err != nil {
		return err
	}

	record.mu.Lock()
	defer record.mu.Unlock()

	// Mutate a copy so a failed apply leaves the stored account untouched.
	updated := record.account
	if err := apply(&updated); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now().UTC()
	record.account = updated
	return nil
}

func (r *AccountRepository) UpdateAccountPair(_ context.Context, documentA, documentB string, apply func(a, b *domain.Account) error) error {
	recordA, err := r.lookup(documentA)
	if err != nil {
		return fmt.Errorf("account %s: %w", documentA, err)
	}
	recordB, err := r.lookup(documentB)
	if err != nil {
		return fmt.Errorf("account %s: %w", documentB, err)
	}

	// Same deadlock rule as the Postgres store: always lock ascending by id.
	first, second := recordA, recordB
	if second.id < first.id {
		first, second = second, first
	}

	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	updatedA := recordA.account
	updatedB := recordB.account
	if err := apply(&updatedA, &updatedB); err != nil {
		return err
	}

	now := time.Now().UTC()
	updatedA.UpdatedAt = now
	updatedB.UpdatedAt = now
	recordA.account = updatedA
	recordB.account = updatedB
	return nil
}

func (r *AccountRepository) lookup(document string) (*accountRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byDocument[document]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return record, nil
}
