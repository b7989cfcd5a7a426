package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/finbase/account-service/internal/adapter/http/models"
	"github.com/finbase/account-service/internal/commons"
)

type LedgerService interface {
	Deposit(ctx context.Context, document string, amount decimal.Decimal) error
	Withdraw(ctx context.Context, document string, amount decimal.Decimal) error
	Transfer(ctx context.Context, fromDocument, toDocument string, amount decimal.Decimal) error
}

type LedgerController struct {
	service LedgerService
}

func NewLedgerController(service LedgerService) *LedgerController {
	return &LedgerController{service: service}
}

func (c *LedgerController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("PATCH /accounts/{document}/deposit", c.deposit)
	mux.HandleFunc("PATCH /accounts/{document}/withdraw", c.withdraw)
	mux.HandleFunc("POST /accounts/transfer", c.transfer)
}

func (c *LedgerController) deposit(w http.ResponseWriter, r *http.Request) {
	c.applyBalanceOperation(w, r, c.service.Deposit)
}

func (c *LedgerController) withdraw(w http.ResponseWriter, r *http.Request) {
	c.applyBalanceOperation(w, r, c.service.Withdraw)
}

func (c *LedgerController) applyBalanceOperation(w http.ResponseWriter, r *http.Request, op func(context.Context, string, decimal.Decimal) error) {
	var req models.BalanceOperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.BalanceOperationResponse]("invalid request body", err.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.BalanceOperationResponse]("validation failed", err.Error()))
		return
	}

	document := r.PathValue("document")
	if err := op(r.Context(), document, req.Amount); err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[models.BalanceOperationResponse]("failed to post operation", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("operation posted successfully", models.BalanceOperationResponse{
		Document: document,
		Amount:   req.Amount.StringFixed(2),
	}))
}

func (c *LedgerController) transfer(w http.ResponseWriter, r *http.Request) {
	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[struct{}]("invalid request body", err.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[struct{}]("validation failed", err.Error()))
		return
	}

	if err := c.service.Transfer(r.Context(), req.FromDocument, req.ToDocument, req.Amount); err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[struct{}]("failed to transfer", err.Error()))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
