package payment

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// RecurringPaymentOverride é uma regra de modificação delimitada no tempo,
// anexada a um pagamento recorrente. Uma data é afetada quando
// data >= effective_date, (sem end_date OU data <= end_date) e
// (sem target_date OU data == target_date).
type RecurringPaymentOverride struct {
	Id        ulid.ULID    `gorm:"type:varchar(26);primaryKey" json:"id"`
	PaymentId ulid.ULID    `gorm:"type:varchar(26);index:idx_overrides_payment_id;not null" json:"paymentId"`
	Type      OverrideType `gorm:"type:varchar(20);not null;column:override_type" json:"overrideType"`

	// TargetDate restringe a exceção a uma única ocorrência.
	TargetDate    *time.Time `gorm:"type:date" json:"targetDate,omitempty"`
	EffectiveDate time.Time  `gorm:"type:date;not null" json:"effectiveDate"`
	EndDate       *time.Time `gorm:"type:date" json:"endDate,omitempty"`
	// OccurrenceCount é armazenado mas não aplicado na geração.
	OccurrenceCount *int `gorm:"" json:"occurrenceCount,omitempty"`

	NewAmount  *decimal.Decimal `gorm:"type:decimal(15,2)" json:"newAmount,omitempty"`
	NewDueDate *time.Time       `gorm:"type:date" json:"newDueDate,omitempty"`

	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (RecurringPaymentOverride) TableName() string {
	return "recurring_payment_overrides"
}

type OverrideType string

const (
	OverrideSkip         OverrideType = "skip"
	OverrideChangeAmount OverrideType = "change_amount"
	OverrideChangeDate   OverrideType = "change_date"
	OverrideCancel       OverrideType = "cancel"
)

func (t OverrideType) IsValid() bool {
	switch t {
	case OverrideSkip, OverrideChangeAmount, OverrideChangeDate, OverrideCancel:
		return true
	}
	return false
}
