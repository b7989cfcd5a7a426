package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"

	"github.com/finbase/account-service/internal/adapter/repository/repo_interfaces"
	"github.com/finbase/account-service/internal/domain"
	"github.com/finbase/account-service/internal/logger"
)

const (
	conflictMaxRetries      = 3
	conflictInitialInterval = 10 * time.Millisecond
)

// LedgerService applies the balance-changing operations. Every operation
// runs inside exactly one store unit of work; transient write conflicts are
// retried with backoff before ErrConflict surfaces.
type LedgerService struct {
	accountRepo repo_interfaces.AccountRepository
}

func NewLedgerService(accountRepo repo_interfaces.AccountRepository) *LedgerService {
	return &LedgerService{accountRepo: accountRepo}
}

func (s *LedgerService) Deposit(ctx context.Context, document string, amount decimal.Decimal) error {
	document = strings.TrimSpace(document)
	if err := validateAmount(amount); err != nil {
		return err
	}

	err := s.withConflictRetry(ctx, func() error {
		return s.accountRepo.UpdateAccount(ctx, document, func(account *domain.Account) error {
			if err := domain.EnsureActive(*account); err != nil {
				return err
			}
			account.Balance = account.Balance.Add(amount)
			return nil
		})
	})
	if err != nil {
		logger.Error("ledger service deposit failed", err, logger.Fields{
			"document": document,
			"amount":   amount,
		})
		return err
	}

	logger.Info("ledger service deposit success", logger.Fields{
		"document": document,
		"amount":   amount,
	})
	return nil
}

func (s *LedgerService) Withdraw(ctx context.Context, document string, amount decimal.Decimal) error {
	document = strings.TrimSpace(document)
	if err := validateAmount(amount); err != nil {
		return err
	}

	err := s.withConflictRetry(ctx, func() error {
		return s.accountRepo.UpdateAccount(ctx, document, func(account *domain.Account) error {
			if err := domain.EnsureActive(*account); err != nil {
				return err
			}
			if account.Balance.LessThan(amount) {
				return domain.ErrInsufficientBalance
			}
			account.Balance = account.Balance.Sub(amount)
			return nil
		})
	})
	if err != nil {
		logger.Error("ledger service withdraw failed", err, logger.Fields{
			"document": document,
			"amount":   amount,
		})
		return err
	}

	logger.Info("ledger service withdraw success", logger.Fields{
		"document": document,
		"amount":   amount,
	})
	return nil
}

func (s *LedgerService) Transfer(ctx context.Context, fromDocument, toDocument string, amount decimal.Decimal) error {
	fromDocument = strings.TrimSpace(fromDocument)
	toDocument = strings.TrimSpace(toDocument)

	if err := validateAmount(amount); err != nil {
		return err
	}
	if fromDocument == toDocument {
		return domain.ErrSameAccountTransfer
	}

	err := s.withConflictRetry(ctx, func() error {
		return s.accountRepo.UpdateAccountPair(ctx, fromDocument, toDocument, func(sender, receiver *domain.Account) error {
			if err := domain.EnsureActive(*sender); err != nil {
				return fmt.Errorf("debit account %s: %w", sender.Document, err)
			}
			if err := domain.EnsureActive(*receiver); err != nil {
				return fmt.Errorf("credit account %s: %w", receiver.Document, err)
			}
			if sender.Balance.LessThan(amount) {
				return domain.ErrInsufficientBalance
			}
			sender.Balance = sender.Balance.Sub(amount)
			receiver.Balance = receiver.Balance.Add(amount)
			return nil
		})
	})
	if err != nil {
		logger.Error("ledger service transfer failed", err, logger.Fields{
			"fromDocument": fromDocument,
			"toDocument":   toDocument,
			"amount":       amount,
		})
		return err
	}

	logger.Info("ledger service transfer success", logger.Fields{
		"fromDocument": fromDocument,
		"toDocument":   toDocument,
		"amount":       amount,
	})
	return nil
}

// withConflictRetry re-runs the whole unit of work on ErrConflict; business
// errors abort immediately.
func (s *LedgerService) withConflictRetry(ctx context.Context, op func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = conflictInitialInterval

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if errors.Is(err, domain.ErrConflict) {
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(backoff.WithMaxRetries(policy, conflictMaxRetries), ctx))
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	return nil
}
