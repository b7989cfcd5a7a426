package domain_test

import (
	"errors"
	"testing"

	"github.com/finbase/account-service/internal/domain"
)

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		current   domain.AccountStatus
		requested domain.AccountStatus
		allowed   bool
	}{
		{domain.AccountStatusActive, domain.AccountStatusActive, false},
		{domain.AccountStatusActive, domain.AccountStatusBlocked, true},
		{domain.AccountStatusActive, domain.AccountStatusClosed, true},
		{domain.AccountStatusBlocked, domain.AccountStatusActive, true},
		{domain.AccountStatusBlocked, domain.AccountStatusBlocked, false},
		{domain.AccountStatusBlocked, domain.AccountStatusClosed, true},
		{domain.AccountStatusClosed, domain.AccountStatusActive, false},
		{domain.AccountStatusClosed, domain.AccountStatusBlocked, false},
		{domain.AccountStatusClosed, domain.AccountStatusClosed, false},
	}

	for _, tc := range cases {
		err := domain.Transition(tc.current, tc.requested)
		if tc.allowed && err != nil {
			t.Errorf("transition %s -> %s: unexpected error %v", tc.current, tc.requested, err)
		}
		if !tc.allowed {
			var transition *domain.TransitionError
			if !errors.As(err, &transition) {
				t.Errorf("transition %s -> %s: expected TransitionError, got %v", tc.current, tc.requested, err)
				continue
			}
			if transition.Current != tc.current || transition.Requested != tc.requested {
				t.Errorf("transition %s -> %s: error carries %s -> %s", tc.current, tc.requested, transition.Current, transition.Requested)
			}
		}
	}
}

func TestEnsureActive(t *testing.T) {
	if err := domain.EnsureActive(domain.Account{Status: domain.AccountStatusActive}); err != nil {
		t.Fatalf("active account rejected: %v", err)
	}

	err := domain.EnsureActive(domain.Account{Status: domain.AccountStatusBlocked})
	var notActive *domain.NotActiveError
	if !errors.As(err, &notActive) {
		t.Fatalf("expected NotActiveError, got %v", err)
	}
	if notActive.Status != domain.AccountStatusBlocked {
		t.Fatalf("expected current status BLOCKED in error, got %s", notActive.Status)
	}
}
