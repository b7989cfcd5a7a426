package models

import (
	"time"

	"github.com/finbase/account-service/internal/commons"
	"github.com/finbase/account-service/internal/domain"
)

type CreateAccountRequest struct {
	Document   string `json:"document" validate:"required,min=11,max=14"`
	HolderName string `json:"holderName" validate:"required,min=3,max=100"`
}

func (r CreateAccountRequest) Validate() error {
	return commons.ValidateInput(r)
}

type AccountResponse struct {
	ID         string `json:"id"`
	Document   string `json:"document"`
	HolderName string `json:"holderName"`
	Balance    string `json:"balance"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

func NewAccountResponse(account domain.Account) AccountResponse {
	return AccountResponse{
		ID:         account.ID,
		Document:   account.Document,
		HolderName: account.HolderName,
		Balance:    account.Balance.StringFixed(2),
		Status:     string(account.Status),
		CreatedAt:  account.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  account.UpdatedAt.Format(time.RFC3339),
	}
}
