package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finbase/account-service/internal/adapter/repository/repo_interfaces"
	"github.com/finbase/account-service/internal/domain"
	"github.com/finbase/account-service/internal/logger"
)

const (
	documentMinLen   = 11
	documentMaxLen   = 14
	holderNameMinLen = 3
	holderNameMaxLen = 100
)

type AccountService struct {
	accountRepo repo_interfaces.AccountRepository
}

func NewAccountService(accountRepo repo_interfaces.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// CreateAccount opens an account with a zero balance and ACTIVE status. The
// opening balance is never caller-supplied, so no funds can enter the ledger
// outside a deposit.
func (s *AccountService) CreateAccount(ctx context.Context, document, holderName string) (domain.Account, error) {
	logger.Info("account service create account request", logger.Fields{
		"document": document,
	})

	document = strings.TrimSpace(document)
	holderName = strings.TrimSpace(holderName)

	if len(document) < documentMinLen || len(document) > documentMaxLen {
		err := fmt.Errorf("%w: document must be between %d and %d characters", domain.ErrValidation, documentMinLen, documentMaxLen)
		logger.Error("account service create account validation failed", err, nil)
		return domain.Account{}, err
	}
	if len(holderName) < holderNameMinLen || len(holderName) > holderNameMaxLen {
		err := fmt.Errorf("%w: holderName must be between %d and %d characters", domain.ErrValidation, holderNameMinLen, holderNameMaxLen)
		logger.Error("account service create account validation failed", err, nil)
		return domain.Account{}, err
	}

	created, err := s.accountRepo.Create(ctx, domain.Account{
		Document:   document,
		HolderName: holderName,
		Balance:    decimal.Zero,
		Status:     domain.AccountStatusActive,
	})
	if err != nil {
		logger.Error("account service create account repository failed", err, logger.Fields{
			"document": document,
		})
		return domain.Account{}, err
	}

	logger.Info("account service create account success", logger.Fields{
		"accountId": created.ID,
		"document":  created.Document,
	})

	return created, nil
}

func (s *AccountService) GetAccount(ctx context.Context, document string) (domain.Account, error) {
	account, err := s.accountRepo.GetByDocument(ctx, strings.TrimSpace(document))
	if err != nil {
		logger.Error("account service get account failed", err, logger.Fields{
			"document": document,
		})
		return domain.Account{}, err
	}
	return account, nil
}

func (s *AccountService) ListAccounts(ctx context.Context, page, pageSize int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.List(ctx, page, pageSize)
	if err != nil {
		logger.Error("account service list accounts failed", err, logger.Fields{
			"page":     page,
			"pageSize": pageSize,
		})
		return nil, err
	}
	return accounts, nil
}

func (s *AccountService) SetBlocked(ctx context.Context, document string) error {
	return s.setStatus(ctx, document, domain.AccountStatusBlocked)
}

func (s *AccountService) SetActive(ctx context.Context, document string) error {
	return s.setStatus(ctx, document, domain.AccountStatusActive)
}

func (s *AccountService) SetClosed(ctx context.Context, document string) error {
	return s.setStatus(ctx, document, domain.AccountStatusClosed)
}

func (s *AccountService) setStatus(ctx context.Context, document string, requested domain.AccountStatus) error {
	document = strings.TrimSpace(document)

	err := s.accountRepo.UpdateAccount(ctx, document, func(account *domain.Account) error {
		if err := domain.Transition(account.Status, requested); err != nil {
			return err
		}
		account.Status = requested
		return nil
	})
	if err != nil {
		logger.Error("account service set status failed", err, logger.Fields{
			"document":  document,
			"requested": requested,
		})
		return err
	}

	logger.Info("account service set status success", logger.Fields{
		"document": document,
		"status":   requested,
	})
	return nil
}
