package payment

import (
	"context"
	"time"

	"github.com/DanielUlisses/organizador-financeiro/internal/pkg"

	"github.com/oklog/ulid/v2"
)

// PaymentFilter restringe listagens de pagamentos.
type PaymentFilter struct {
	Type     *PaymentType
	Status   *Status
	DateFrom *time.Time
	DateTo   *time.Time
}

// CardOccurrence é uma ocorrência acompanhada do pagamento pai, usada na
// agregação de fatura, onde a classificação depende das referências de conta
// do pai.
type CardOccurrence struct {
	Occurrence *PaymentOccurrence
	Payment    *Payment
}

type Repository interface {
	CreatePayment(ctx context.Context, p *Payment) error
	// CreatePaymentWithOccurrence insere pagamento e ocorrência inicial em
	// uma única transação.
	CreatePaymentWithOccurrence(ctx context.Context, p *Payment, occ *PaymentOccurrence) error
	UpdatePayment(ctx context.Context, p *Payment) error
	// DeletePayment remove o pagamento, suas ocorrências e exceções em uma
	// transação (cascata explícita).
	DeletePayment(ctx context.Context, paymentID, userID ulid.ULID) error
	GetPaymentByID(ctx context.Context, paymentID, userID ulid.ULID) (*Payment, error)
	GetPaymentsByUserID(ctx context.Context, userID ulid.ULID, filter *PaymentFilter, pagination *pkg.PaginationParams) ([]*Payment, int64, error)

	CreateOccurrence(ctx context.Context, occ *PaymentOccurrence) error
	// CreateOccurrences persiste o lote gerado em uma única transação.
	CreateOccurrences(ctx context.Context, occs []*PaymentOccurrence) error
	UpdateOccurrence(ctx context.Context, occ *PaymentOccurrence) error
	DeleteOccurrence(ctx context.Context, occurrenceID, userID ulid.ULID) error
	GetOccurrenceByID(ctx context.Context, occurrenceID, userID ulid.ULID) (*PaymentOccurrence, error)
	GetOccurrencesByPaymentID(ctx context.Context, paymentID ulid.ULID, status *Status, from, to *time.Time) ([]*PaymentOccurrence, error)
	// GetOccurrenceDates devolve o conjunto de datas agendadas existentes do
	// pagamento, usado para garantir no máximo uma ocorrência por data.
	GetOccurrenceDates(ctx context.Context, paymentID ulid.ULID) (map[time.Time]struct{}, error)
	GetOccurrencesInRange(ctx context.Context, userID ulid.ULID, from, to time.Time) ([]*PaymentOccurrence, error)

	CreateOverride(ctx context.Context, o *RecurringPaymentOverride) error
	UpdateOverride(ctx context.Context, o *RecurringPaymentOverride) error
	DeleteOverride(ctx context.Context, overrideID, userID ulid.ULID) error
	GetOverrideByID(ctx context.Context, overrideID, userID ulid.ULID) (*RecurringPaymentOverride, error)
	GetActiveOverrides(ctx context.Context, paymentID ulid.ULID) ([]*RecurringPaymentOverride, error)

	// Consultas do ciclo de fatura de cartão.
	GetCardOccurrencesInRange(ctx context.Context, cardID, userID ulid.ULID, from, to time.Time) ([]*CardOccurrence, error)
	GetOneTimeCardPaymentsInRange(ctx context.Context, cardID, userID ulid.ULID, from, to time.Time) ([]*Payment, error)
	// GetCardPaymentsByDueDates busca pagamentos com o cartão como destino e
	// vencimento em uma das datas informadas, excluindo cancelados/falhos.
	GetCardPaymentsByDueDates(ctx context.Context, cardID, userID ulid.ULID, dueDates []time.Time) ([]*Payment, error)
	// ApplyPlannedChanges aplica criações, atualizações e remoções da
	// sincronização de pagamentos planejados em uma única transação.
	ApplyPlannedChanges(ctx context.Context, creates []*Payment, updates []*Payment, deleteIDs []ulid.ULID) error
}
