package contracts

import (
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/creditcard"

	"github.com/shopspring/decimal"
)

type CreditCardCreateRequest struct {
	Name                    string          `json:"name" binding:"required,max=100"`
	Brand                   string          `json:"brand" binding:"required,oneof=VISA MASTERCARD ELO AMEX HIPERCARD OTHER"`
	CreditLimit             decimal.Decimal `json:"credit_limit"`
	Currency                string          `json:"currency" binding:"omitempty,len=3"`
	InvoiceCloseDay         int             `json:"invoice_close_day" binding:"required,min=1,max=31"`
	PaymentDueDay           int             `json:"payment_due_day" binding:"required,min=1,max=60"`
	DefaultPaymentAccountId *string         `json:"default_payment_account_id" binding:"omitempty"`
	LastFourDigits          string          `json:"last_four_digits" binding:"omitempty,max=4"`
}

type CreditCardUpdateRequest struct {
	Name                    *string          `json:"name" binding:"omitempty,max=100"`
	Brand                   *string          `json:"brand" binding:"omitempty,oneof=VISA MASTERCARD ELO AMEX HIPERCARD OTHER"`
	CreditLimit             *decimal.Decimal `json:"credit_limit"`
	InvoiceCloseDay         *int             `json:"invoice_close_day" binding:"omitempty,min=1,max=31"`
	PaymentDueDay           *int             `json:"payment_due_day" binding:"omitempty,min=1,max=60"`
	DefaultPaymentAccountId *string          `json:"default_payment_account_id" binding:"omitempty"`
	LastFourDigits          *string          `json:"last_four_digits" binding:"omitempty,max=4"`
	IsActive                *bool            `json:"is_active" binding:"omitempty"`
}

type CreditCardBalanceUpdateRequest struct {
	Balance decimal.Decimal `json:"balance"`
}

type CreditCardCreateResponse struct {
	Message    string                 `json:"message"`
	CreditCard *creditcard.CreditCard `json:"creditCard"`
}

type CreditCardSingleResponse struct {
	CreditCard *creditcard.CreditCard `json:"creditCard"`
}

type CreditCardTotalDebtResponse struct {
	TotalDebt decimal.Decimal `json:"totalDebt"`
}

type BillingCycleResponse struct {
	Cycle *creditcard.BillingCycle `json:"cycle"`
}

type StatementResponse struct {
	Statement *creditcard.StatementSummary `json:"statement"`
}

type InvoiceHistoryResponse struct {
	Invoices []*creditcard.StatementSummary `json:"invoices"`
	Total    int                            `json:"total"`
}

type PlannedPaymentsSyncResponse struct {
	Message string `json:"message"`
}
