package contracts

import (
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/bankaccount"

	"github.com/shopspring/decimal"
)

type BankAccountCreateRequest struct {
	Name           string          `json:"name" binding:"required,max=100"`
	Type           string          `json:"type" binding:"required,oneof=CHECKING SAVINGS MONEY_MARKET OTHER"`
	BankName       string          `json:"bank_name" binding:"omitempty,max=100"`
	LastFourDigits string          `json:"last_four_digits" binding:"omitempty,max=4"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Currency       string          `json:"currency" binding:"omitempty,len=3"`
}

type BankAccountUpdateRequest struct {
	Name           *string          `json:"name" binding:"omitempty,max=100"`
	Type           *string          `json:"type" binding:"omitempty,oneof=CHECKING SAVINGS MONEY_MARKET OTHER"`
	BankName       *string          `json:"bank_name" binding:"omitempty,max=100"`
	LastFourDigits *string          `json:"last_four_digits" binding:"omitempty,max=4"`
	Balance        *decimal.Decimal `json:"balance"`
	IsActive       *bool            `json:"is_active" binding:"omitempty"`
}

type BankAccountCreateResponse struct {
	Message string                   `json:"message"`
	Account *bankaccount.BankAccount `json:"account"`
}

type BankAccountSingleResponse struct {
	Account *bankaccount.BankAccount `json:"account"`
}

type BankAccountTotalBalanceResponse struct {
	TotalBalance decimal.Decimal `json:"totalBalance"`
}
