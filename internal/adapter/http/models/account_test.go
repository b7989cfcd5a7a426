package models_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finbase/account-service/internal/adapter/http/models"
)

func TestCreateAccountRequestValidate(t *testing.T) {
	valid := models.CreateAccountRequest{Document: "12345678900", HolderName: "Ana Silva"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	cases := []models.CreateAccountRequest{
		{Document: "", HolderName: "Ana Silva"},
		{Document: "123", HolderName: "Ana Silva"},
		{Document: "123456789012345", HolderName: "Ana Silva"},
		{Document: "12345678900", HolderName: ""},
		{Document: "12345678900", HolderName: "An"},
	}
	for _, req := range cases {
		if err := req.Validate(); err == nil {
			t.Errorf("expected validation error for %+v", req)
		}
	}
}

func TestTransferRequestValidate(t *testing.T) {
	valid := models.TransferRequest{
		FromDocument: "12345678900",
		ToDocument:   "98765432100",
		Amount:       decimal.NewFromInt(10),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	if err := (models.TransferRequest{}).Validate(); err == nil {
		t.Error("expected validation error for empty transfer request")
	}
}
