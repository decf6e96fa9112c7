package payment

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Payment representa um compromisso financeiro, único ou recorrente.
// Pagamentos recorrentes sempre carregam Frequency e StartDate; pagamentos
// únicos carregam DueDate e nunca Frequency.
type Payment struct {
	Id          ulid.ULID       `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId      ulid.ULID       `gorm:"type:varchar(26);index:idx_payments_user_id;not null" json:"userId"`
	Type        PaymentType     `gorm:"type:varchar(15);not null" json:"type"`
	Description string          `gorm:"type:varchar(255);not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'BRL'" json:"currency"`
	Category    Category        `gorm:"type:varchar(20)" json:"category"`

	// Referências de conta: par (tipo, id); qualquer lado pode estar ausente
	// para contrapartes externas.
	FromAccountKind *AccountKind `gorm:"type:varchar(15)" json:"fromAccountKind,omitempty"`
	FromAccountId   *ulid.ULID   `gorm:"type:varchar(26);index:idx_payments_from_account" json:"fromAccountId,omitempty"`
	ToAccountKind   *AccountKind `gorm:"type:varchar(15)" json:"toAccountKind,omitempty"`
	ToAccountId     *ulid.ULID   `gorm:"type:varchar(26);index:idx_payments_to_account" json:"toAccountId,omitempty"`

	// Pagamento único.
	DueDate *time.Time `gorm:"type:date;index:idx_payments_due_date" json:"dueDate,omitempty"`

	// Pagamento recorrente.
	Frequency   *Frequency `gorm:"type:varchar(15)" json:"frequency,omitempty"`
	StartDate   *time.Time `gorm:"type:date" json:"startDate,omitempty"`
	EndDate     *time.Time `gorm:"type:date" json:"endDate,omitempty"`
	NextDueDate *time.Time `gorm:"type:date" json:"nextDueDate,omitempty"`

	Status         Status     `gorm:"type:varchar(15);not null;default:'pending'" json:"status"`
	ProcessedDate  *time.Time `gorm:"type:date" json:"processedDate,omitempty"`
	ReconciledDate *time.Time `gorm:"type:date" json:"reconciledDate,omitempty"`

	Notes     string    `gorm:"type:text" json:"notes"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Payment) TableName() string {
	return "payments"
}

// ReferencesCard informa se o cartão aparece como origem ou destino.
func (p *Payment) ReferencesCard(cardID ulid.ULID) bool {
	return p.IsCardSource(cardID) || p.IsCardDestination(cardID)
}

func (p *Payment) IsCardSource(cardID ulid.ULID) bool {
	return p.FromAccountKind != nil && *p.FromAccountKind == KindCreditCard &&
		p.FromAccountId != nil && *p.FromAccountId == cardID
}

// IsCardDestination indica um pagamento de fatura: o cartão recebe o valor,
// reduzindo o saldo devedor.
func (p *Payment) IsCardDestination(cardID ulid.ULID) bool {
	return p.ToAccountKind != nil && *p.ToAccountKind == KindCreditCard &&
		p.ToAccountId != nil && *p.ToAccountId == cardID
}

type PaymentType string

const (
	TypeOneTime   PaymentType = "one_time"
	TypeRecurring PaymentType = "recurring"
)

func (t PaymentType) IsValid() bool {
	switch t {
	case TypeOneTime, TypeRecurring:
		return true
	}
	return false
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusScheduled  Status = "scheduled"
	StatusProcessed  Status = "processed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
	StatusReconciled Status = "reconciled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusScheduled, StatusProcessed, StatusFailed, StatusCancelled, StatusReconciled:
		return true
	}
	return false
}

type Category string

const (
	CategoryBill         Category = "bill"
	CategorySubscription Category = "subscription"
	CategoryLoan         Category = "loan"
	CategoryTransfer     Category = "transfer"
	CategoryExpense      Category = "expense"
	CategoryIncome       Category = "income"
	CategoryOther        Category = "other"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryBill, CategorySubscription, CategoryLoan, CategoryTransfer, CategoryExpense, CategoryIncome, CategoryOther, "":
		return true
	}
	return false
}

type AccountKind string

const (
	KindBankAccount AccountKind = "bank_account"
	KindCreditCard  AccountKind = "credit_card"
)

func (k AccountKind) IsValid() bool {
	switch k {
	case KindBankAccount, KindCreditCard:
		return true
	}
	return false
}
