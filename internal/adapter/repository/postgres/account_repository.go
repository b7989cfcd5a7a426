package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/finbase/account-service/internal/domain"
	"github.com/finbase/account-service/internal/logger"
)

const maxPageSize = 100

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, document, holder_name, balance, status, created_at, updated_at`

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"document": account.Document,
	})

	const query = `
INSERT INTO accounts (document, holder_name, balance, status)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.Document,
		account.HolderName,
		account.Balance,
		account.Status,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt); err != nil {
		mapped := mapError(err)
		logger.Error("account repository create failed", mapped, logger.Fields{
			"document": account.Document,
		})
		if errors.Is(mapped, domain.ErrDuplicateDocument) {
			return domain.Account{}, mapped
		}
		return domain.Account{}, fmt.Errorf("create account: %w", mapped)
	}

	logger.Info("account repository create success", logger.Fields{
		"accountId": account.ID,
		"document":  account.Document,
	})

	return account, nil
}

func (r *AccountRepository) GetByDocument(ctx context.Context, document string) (domain.Account, error) {
	const query = `
SELECT ` + accountColumns + `
FROM accounts
WHERE document = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, document))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			logger.Info("account repository record not found", logger.Fields{
				"document": document,
			})
			return domain.Account{}, domain.ErrAccountNotFound
		}
		logger.Error("account repository get failed", err, logger.Fields{
			"document": document,
		})
		return domain.Account{}, fmt.Errorf("get account by document: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (domain.Account, error) {
	const query = `
SELECT ` + accountColumns + `
FROM accounts
WHERE id = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			logger.Info("account repository record not found", logger.Fields{
				"accountId": id,
			})
			return domain.Account{}, domain.ErrAccountNotFound
		}
		logger.Error("account repository get by id failed", err, logger.Fields{
			"accountId": id,
		})
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) List(ctx context.Context, page, pageSize int) ([]domain.Account, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	} else if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	// Ordering by id keeps pages stable between calls.
	const query = `
SELECT ` + accountColumns + `
FROM accounts
ORDER BY id
LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		logger.Error("account repository list failed", err, logger.Fields{
			"page":     page,
			"pageSize": pageSize,
		})
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0, pageSize)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) UpdateAccount(ctx context.Context, document string, apply func(account *domain.Account) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("account repository begin tx failed", err, nil)
		return fmt.Errorf("begin account transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const lockQuery = `
SELECT ` + accountColumns + `
FROM accounts
WHERE document = $1
FOR UPDATE`

	var account domain.Account
	account, err = scanAccount(tx.QueryRowContext(ctx, lockQuery, document))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrAccountNotFound
		}
		return fmt.Errorf("lock account: %w", err)
	}

	if err = apply(&account); err != nil {
		return err
	}

	if err = writeAccount(ctx, tx, account); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		mapped := mapError(err)
		logger.Error("account repository commit tx failed", mapped, logger.Fields{
			"document": document,
		})
		err = mapped
		return mapped
	}

	return nil
}

func (r *AccountRepository) UpdateAccountPair(ctx context.Context, documentA, documentB string, apply func(a, b *domain.Account) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("account repository begin pair tx failed", err, nil)
		return fmt.Errorf("begin account pair transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Ordering by id makes concurrent pair updates acquire their row locks
	// in a globally consistent order, so opposing transfers between the same
	// two accounts cannot deadlock.
	const lockQuery = `
SELECT ` + accountColumns + `
FROM accounts
WHERE document IN ($1, $2)
ORDER BY id
FOR UPDATE`

	rows, err := tx.QueryContext(ctx, lockQuery, documentA, documentB)
	if err != nil {
		err = mapError(err)
		return fmt.Errorf("lock account pair: %w", err)
	}

	locked := make(map[string]domain.Account, 2)
	for rows.Next() {
		var account domain.Account
		account, err = scanAccount(rows)
		if err != nil {
			rows.Close()
			return fmt.Errorf("scan locked account: %w", err)
		}
		locked[account.Document] = account
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterate locked accounts: %w", err)
	}
	rows.Close()

	a, ok := locked[documentA]
	if !ok {
		err = fmt.Errorf("account %s: %w", documentA, domain.ErrAccountNotFound)
		return err
	}
	b, ok := locked[documentB]
	if !ok {
		err = fmt.Errorf("account %s: %w", documentB, domain.ErrAccountNotFound)
		return err
	}

	if err = apply(&a, &b); err != nil {
		return err
	}

	if err = writeAccount(ctx, tx, a); err != nil {
		return err
	}
	if err = writeAccount(ctx, tx, b); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		mapped := mapError(err)
		logger.Error("account repository commit pair tx failed", mapped, logger.Fields{
			"documentA": documentA,
			"documentB": documentB,
		})
		err = mapped
		return mapped
	}

	return nil
}

func writeAccount(ctx context.Context, tx *sql.Tx, account domain.Account) error {
	const query = `
UPDATE accounts
SET balance = $2,
    status = $3,
    updated_at = NOW()
WHERE id = $1`

	if _, err := tx.ExecContext(ctx, query, account.ID, account.Balance, account.Status); err != nil {
		return fmt.Errorf("write account %s: %w", account.Document, mapError(err))
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.Document,
		&account.HolderName,
		&account.Balance,
		&account.Status,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, mapError(err)
	}
	return account, nil
}

// mapError translates driver errors into the domain vocabulary: unique
// violations on the document index become ErrDuplicateDocument, and
// serialization failures or detected deadlocks become the retryable
// ErrConflict.
func mapError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case "23505":
		return domain.ErrDuplicateDocument
	case "40001", "40P01":
		return domain.ErrConflict
	default:
		return err
	}
}
