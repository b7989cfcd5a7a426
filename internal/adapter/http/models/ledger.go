package models

import (
	"github.com/shopspring/decimal"

	"github.com/finbase/account-service/internal/commons"
)

type BalanceOperationRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

func (r BalanceOperationRequest) Validate() error {
	return commons.ValidateInput(r)
}

type TransferRequest struct {
	FromDocument string          `json:"fromDocument" validate:"required,min=11,max=14"`
	ToDocument   string          `json:"toDocument" validate:"required,min=11,max=14"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
}

func (r TransferRequest) Validate() error {
	return commons.ValidateInput(r)
}

type BalanceOperationResponse struct {
	Document string `json:"document"`
	Amount   string `json:"amount"`
}
