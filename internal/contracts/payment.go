package contracts

import (
	"time"

	"github.com/DanielUlisses/organizador-financeiro/internal/domain/payment"

	"github.com/shopspring/decimal"
)

type PaymentCreateRequest struct {
	Type        string          `json:"type" binding:"required,oneof=one_time recurring"`
	Description string          `json:"description" binding:"required,max=255"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency" binding:"omitempty,len=3"`
	Category    string          `json:"category" binding:"omitempty,oneof=bill subscription loan transfer expense income other"`

	FromAccountKind *string `json:"from_account_kind" binding:"omitempty,oneof=bank_account credit_card"`
	FromAccountId   *string `json:"from_account_id" binding:"omitempty"`
	ToAccountKind   *string `json:"to_account_kind" binding:"omitempty,oneof=bank_account credit_card"`
	ToAccountId     *string `json:"to_account_id" binding:"omitempty"`

	// Pagamento único.
	DueDate *time.Time `json:"due_date" binding:"omitempty"`

	// Pagamento recorrente.
	Frequency *string    `json:"frequency" binding:"omitempty,oneof=daily weekly monthly quarterly yearly"`
	StartDate *time.Time `json:"start_date" binding:"omitempty"`
	EndDate   *time.Time `json:"end_date" binding:"omitempty"`

	Notes string `json:"notes" binding:"omitempty"`
}

type PaymentUpdateRequest struct {
	Description    *string          `json:"description" binding:"omitempty,max=255"`
	Amount         *decimal.Decimal `json:"amount"`
	Category       *string          `json:"category" binding:"omitempty,oneof=bill subscription loan transfer expense income other"`
	Status         *string          `json:"status" binding:"omitempty,oneof=pending scheduled processed failed cancelled reconciled"`
	DueDate        *time.Time       `json:"due_date" binding:"omitempty"`
	Frequency      *string          `json:"frequency" binding:"omitempty,oneof=daily weekly monthly quarterly yearly"`
	StartDate      *time.Time       `json:"start_date" binding:"omitempty"`
	EndDate        *time.Time       `json:"end_date" binding:"omitempty"`
	Notes          *string          `json:"notes" binding:"omitempty"`
	ProcessedDate  *time.Time       `json:"processed_date" binding:"omitempty"`
	ReconciledDate *time.Time       `json:"reconciled_date" binding:"omitempty"`
	IsActive       *bool            `json:"is_active" binding:"omitempty"`
}

type PaymentCreateResponse struct {
	Message string           `json:"message"`
	Payment *payment.Payment `json:"payment"`
}

type PaymentSingleResponse struct {
	Payment *payment.Payment `json:"payment"`
}

type OccurrenceCreateRequest struct {
	ScheduledDate time.Time        `json:"scheduled_date" binding:"required"`
	DueDate       *time.Time       `json:"due_date" binding:"omitempty"`
	Amount        *decimal.Decimal `json:"amount"`
	Status        *string          `json:"status" binding:"omitempty,oneof=pending scheduled processed failed cancelled reconciled"`
	Notes         string           `json:"notes" binding:"omitempty"`
}

type OccurrenceUpdateRequest struct {
	ScheduledDate  *time.Time       `json:"scheduled_date" binding:"omitempty"`
	DueDate        *time.Time       `json:"due_date" binding:"omitempty"`
	Amount         *decimal.Decimal `json:"amount"`
	Status         *string          `json:"status" binding:"omitempty,oneof=pending scheduled processed failed cancelled reconciled"`
	ProcessedDate  *time.Time       `json:"processed_date" binding:"omitempty"`
	ReconciledDate *time.Time       `json:"reconciled_date" binding:"omitempty"`
	Notes          *string          `json:"notes" binding:"omitempty"`
}

type OccurrenceCreateResponse struct {
	Message    string                     `json:"message"`
	Occurrence *payment.PaymentOccurrence `json:"occurrence"`
}

type OccurrenceListResponse struct {
	Occurrences []*payment.PaymentOccurrence `json:"occurrences"`
	Total       int                          `json:"total"`
}

type OverrideCreateRequest struct {
	Type            string           `json:"type" binding:"required,oneof=skip change_amount change_date cancel"`
	TargetDate      *time.Time       `json:"target_date" binding:"omitempty"`
	EffectiveDate   time.Time        `json:"effective_date" binding:"required"`
	EndDate         *time.Time       `json:"end_date" binding:"omitempty"`
	OccurrenceCount *int             `json:"occurrence_count" binding:"omitempty,min=1"`
	NewAmount       *decimal.Decimal `json:"new_amount"`
	NewDueDate      *time.Time       `json:"new_due_date" binding:"omitempty"`
	Notes           string           `json:"notes" binding:"omitempty"`
}

type OverrideUpdateRequest struct {
	TargetDate    *time.Time       `json:"target_date" binding:"omitempty"`
	EffectiveDate *time.Time       `json:"effective_date" binding:"omitempty"`
	EndDate       *time.Time       `json:"end_date" binding:"omitempty"`
	NewAmount     *decimal.Decimal `json:"new_amount"`
	NewDueDate    *time.Time       `json:"new_due_date" binding:"omitempty"`
	IsActive      *bool            `json:"is_active" binding:"omitempty"`
	Notes         *string          `json:"notes" binding:"omitempty"`
}

type OverrideCreateResponse struct {
	Message  string                            `json:"message"`
	Override *payment.RecurringPaymentOverride `json:"override"`
}

type OverrideListResponse struct {
	Overrides []*payment.RecurringPaymentOverride `json:"overrides"`
	Total     int                                 `json:"total"`
}

type OccurrenceGenerateRequest struct {
	UpTo *time.Time `json:"up_to" binding:"omitempty"`
}

type OccurrenceGenerateResponse struct {
	Message     string                       `json:"message"`
	Generated   int                          `json:"generated"`
	Occurrences []*payment.PaymentOccurrence `json:"occurrences"`
}
