package payment

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// PaymentOccurrence é uma instância datada concreta de um pagamento, a
// unidade exibida em calendários e faturas. Vale no máximo uma ocorrência
// por (pagamento, data agendada); o gerador garante isso consultando as
// datas existentes antes de inserir.
type PaymentOccurrence struct {
	Id            ulid.ULID       `gorm:"type:varchar(26);primaryKey" json:"id"`
	PaymentId     ulid.ULID       `gorm:"type:varchar(26);index:idx_occurrences_payment_id;not null" json:"paymentId"`
	ScheduledDate time.Time       `gorm:"type:date;not null;index:idx_occurrences_scheduled_date" json:"scheduledDate"`
	DueDate       *time.Time      `gorm:"type:date" json:"dueDate,omitempty"`
	// Amount pode divergir do valor base do pagamento por causa de exceções
	// de recorrência.
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Status         Status          `gorm:"type:varchar(15);not null;default:'scheduled'" json:"status"`
	ProcessedDate  *time.Time      `gorm:"type:date" json:"processedDate,omitempty"`
	ReconciledDate *time.Time      `gorm:"type:date" json:"reconciledDate,omitempty"`
	Notes          string          `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time       `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (PaymentOccurrence) TableName() string {
	return "payment_occurrences"
}
