package creditcard

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type CreditCard struct {
	Id     ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId ulid.ULID `gorm:"type:varchar(26);index:idx_credit_cards_user_id;not null" json:"userId"`
	Name   string    `gorm:"type:varchar(100);not null" json:"name"`
	Brand  CardBrand `gorm:"type:varchar(20);not null" json:"brand"`

	CreditLimit    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"creditLimit"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"currentBalance"`
	Currency       string          `gorm:"type:varchar(3);not null;default:'BRL'" json:"currency"`

	// InvoiceCloseDay é o dia do mês em que a fatura fecha (1 a 31, limitado
	// ao tamanho real do mês). PaymentDueDay é um deslocamento em dias
	// somado à data de fechamento, não um dia do mês.
	InvoiceCloseDay int `gorm:"not null;check:invoice_close_day >= 1 AND invoice_close_day <= 31" json:"invoiceCloseDay"`
	PaymentDueDay   int `gorm:"not null;check:payment_due_day >= 1" json:"paymentDueDay"`

	// DefaultPaymentAccountId é a conta bancária usada como origem dos
	// pagamentos planejados da fatura.
	DefaultPaymentAccountId *ulid.ULID `gorm:"type:varchar(26)" json:"defaultPaymentAccountId,omitempty"`

	LastFourDigits string    `gorm:"type:varchar(4)" json:"lastFourDigits"`
	IsActive       bool      `gorm:"not null;default:true;index:idx_credit_cards_active" json:"isActive"`
	CreatedAt      time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (CreditCard) TableName() string {
	return "credit_cards"
}

// AvailableCredit é o limite restante; nunca negativo.
func (c *CreditCard) AvailableCredit() decimal.Decimal {
	available := c.CreditLimit.Sub(c.CurrentBalance)
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}

// Utilization é o percentual do limite em uso (0 quando o limite é zero).
func (c *CreditCard) Utilization() decimal.Decimal {
	if c.CreditLimit.IsZero() {
		return decimal.Zero
	}
	return c.CurrentBalance.Div(c.CreditLimit).Mul(decimal.NewFromInt(100)).Round(2)
}

type CardBrand string

const (
	BrandVisa       CardBrand = "VISA"
	BrandMastercard CardBrand = "MASTERCARD"
	BrandElo        CardBrand = "ELO"
	BrandAmex       CardBrand = "AMEX"
	BrandHipercard  CardBrand = "HIPERCARD"
	BrandOther      CardBrand = "OTHER"
)

func (b CardBrand) IsValid() bool {
	switch b {
	case BrandVisa, BrandMastercard, BrandElo, BrandAmex, BrandHipercard, BrandOther:
		return true
	}
	return false
}
