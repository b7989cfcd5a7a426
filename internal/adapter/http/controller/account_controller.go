package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/finbase/account-service/internal/adapter/http/models"
	"github.com/finbase/account-service/internal/commons"
	"github.com/finbase/account-service/internal/domain"
)

type AccountService interface {
	CreateAccount(ctx context.Context, document, holderName string) (domain.Account, error)
	GetAccount(ctx context.Context, document string) (domain.Account, error)
	ListAccounts(ctx context.Context, page, pageSize int) ([]domain.Account, error)
	SetBlocked(ctx context.Context, document string) error
	SetActive(ctx context.Context, document string) error
	SetClosed(ctx context.Context, document string) error
}

type AccountController struct {
	service AccountService
}

func NewAccountController(service AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /accounts", c.createAccount)
	mux.HandleFunc("GET /accounts", c.listAccounts)
	mux.HandleFunc("GET /accounts/{document}", c.getAccount)
	mux.HandleFunc("PATCH /accounts/{document}/set_blocked", c.setBlocked)
	mux.HandleFunc("PATCH /accounts/{document}/set_active", c.setActive)
	mux.HandleFunc("PATCH /accounts/{document}/set_closed", c.setClosed)
}

func (c *AccountController) createAccount(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	account, err := c.service.CreateAccount(r.Context(), req.Document, req.HolderName)
	if err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[models.AccountResponse]("failed to create account", err.Error()))
		return
	}

	writeJSON(w, http.StatusCreated, commons.SuccessResponse("account created successfully", models.NewAccountResponse(account)))
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	account, err := c.service.GetAccount(r.Context(), r.PathValue("document"))
	if err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[models.AccountResponse]("failed to get account", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("account fetched successfully", models.NewAccountResponse(account)))
}

func (c *AccountController) listAccounts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if size < 1 {
		size = 50
	}

	accounts, err := c.service.ListAccounts(r.Context(), page, size)
	if err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[commons.Page[models.AccountResponse]]("failed to list accounts", err.Error()))
		return
	}

	items := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		items = append(items, models.NewAccountResponse(account))
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("accounts fetched successfully", commons.Page[models.AccountResponse]{
		Page:  page,
		Size:  size,
		Items: items,
	}))
}

func (c *AccountController) setBlocked(w http.ResponseWriter, r *http.Request) {
	c.applyStatusChange(w, r, c.service.SetBlocked)
}

func (c *AccountController) setActive(w http.ResponseWriter, r *http.Request) {
	c.applyStatusChange(w, r, c.service.SetActive)
}

func (c *AccountController) setClosed(w http.ResponseWriter, r *http.Request) {
	c.applyStatusChange(w, r, c.service.SetClosed)
}

func (c *AccountController) applyStatusChange(w http.ResponseWriter, r *http.Request, op func(context.Context, string) error) {
	if err := op(r.Context(), r.PathValue("document")); err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[struct{}]("failed to change account status", err.Error()))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
