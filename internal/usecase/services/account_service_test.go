package services_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/finbase/account-service/internal/adapter/repository/memory"
	"github.com/finbase/account-service/internal/domain"
	"github.com/finbase/account-service/internal/usecase/services"
)

func TestAccountServiceCreateAccount(t *testing.T) {
	svc := services.NewAccountService(memory.NewAccountRepository())

	account, err := svc.CreateAccount(context.Background(), "12345678900", "Ana Silva")
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	if account.ID == "" {
		t.Error("expected store-assigned id")
	}
	if !account.Balance.IsZero() {
		t.Errorf("expected zero opening balance, got %s", account.Balance)
	}
	if account.Status != domain.AccountStatusActive {
		t.Errorf("expected ACTIVE status, got %s", account.Status)
	}
	if account.CreatedAt.IsZero() {
		t.Error("expected creation timestamp")
	}
}

func TestAccountServiceCreateAccountValidation(t *testing.T) {
	svc := services.NewAccountService(memory.NewAccountRepository())

	cases := []struct {
		name       string
		document   string
		holderName string
	}{
		{"empty document", "", "Ana Silva"},
		{"document too short", "1234567890", "Ana Silva"},
		{"document too long", "123456789012345", "Ana Silva"},
		{"empty holder name", "12345678900", ""},
		{"holder name too short", "12345678900", "An"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateAccount(context.Background(), tc.document, tc.holderName)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAccountServiceCreateAccountDuplicateDocument(t *testing.T) {
	svc := services.NewAccountService(memory.NewAccountRepository())

	if _, err := svc.CreateAccount(context.Background(), "12345678900", "Ana Silva"); err != nil {
		t.Fatalf("create account: %v", err)
	}

	_, err := svc.CreateAccount(context.Background(), "12345678900", "Outro Titular")
	if !errors.Is(err, domain.ErrDuplicateDocument) {
		t.Fatalf("expected duplicate document error, got %v", err)
	}
}

func TestAccountServiceGetAccountIdempotentRead(t *testing.T) {
	svc := services.NewAccountService(memory.NewAccountRepository())

	created, err := svc.CreateAccount(context.Background(), "12345678900", "Ana Silva")
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	first, err := svc.GetAccount(context.Background(), "12345678900")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	second, err := svc.GetAccount(context.Background(), "12345678900")
	if err != nil {
		t.Fatalf("get account again: %v", err)
	}

	if first.ID != created.ID || first.ID != second.ID || !first.Balance.Equal(second.Balance) || first.Status != second.Status {
		t.Errorf("reads diverged: %+v vs %+v", first, second)
	}
}

func TestAccountServiceGetAccountNotFound(t *testing.T) {
	svc := services.NewAccountService(memory.NewAccountRepository())

	_, err := svc.GetAccount(context.Background(), "00000000000")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected account not found, got %v", err)
	}
}

func TestAccountServiceListAccountsOrderedByID(t *testing.T) {
	svc := services.NewAccountService(memory.NewAccountRepository())

	documents := []string{"12345678900", "98765432100", "55544433322"}
	for _, document := range documents {
		if _, err := svc.CreateAccount(context.Background(), document, "Titular Conta"); err != nil {
			t.Fatalf("create account %s: %v", document, err)
		}
	}

	accounts, err := svc.ListAccounts(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	if len(accounts) != len(documents) {
		t.Fatalf("expected %d accounts, got %d", len(documents), len(accounts))
	}

	ids := make([]string, 0, len(accounts))
	for _, account := range accounts {
		ids = append(ids, account.ID)
	}
	if !sort.StringsAreSorted(ids) {
		t.Errorf("expected accounts ordered by id, got %v", ids)
	}

	page2, err := svc.ListAccounts(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if len(page2) != 1 {
		t.Errorf("expected 1 account on second page, got %d", len(page2))
	}
}

func TestAccountServiceStatusTransitions(t *testing.T) {
	svc := services.NewAccountService(memory.NewAccountRepository())
	ctx := context.Background()

	if _, err := svc.CreateAccount(ctx, "12345678900", "Ana Silva"); err != nil {
		t.Fatalf("create account: %v", err)
	}

	if err := svc.SetBlocked(ctx, "12345678900"); err != nil {
		t.Fatalf("block account: %v", err)
	}
	if err := svc.SetActive(ctx, "12345678900"); err != nil {
		t.Fatalf("reactivate account: %v", err)
	}

	// Re-requesting the current status is invalid.
	err := svc.SetActive(ctx, "12345678900")
	var transition *domain.TransitionError
	if !errors.As(err, &transition) {
		t.Fatalf("expected transition error activating an active account, got %v", err)
	}

	if err := svc.SetClosed(ctx, "12345678900"); err != nil {
		t.Fatalf("close account: %v", err)
	}

	// CLOSED is terminal.
	for _, op := range []func(context.Context, string) error{svc.SetActive, svc.SetBlocked, svc.SetClosed} {
		if err := op(ctx, "12345678900"); !errors.As(err, &transition) {
			t.Fatalf("expected transition error on closed account, got %v", err)
		}
	}
}

func TestAccountServiceStatusChangeNotFound(t *testing.T) {
	svc := services.NewAccountService(memory.NewAccountRepository())

	if err := svc.SetBlocked(context.Background(), "00000000000"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected account not found, got %v", err)
	}
}
