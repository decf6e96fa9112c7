package creditcard

import (
	"sort"
	"time"

	"github.com/DanielUlisses/organizador-financeiro/internal/domain/payment"
	"github.com/DanielUlisses/organizador-financeiro/internal/pkg/dates"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	// KindCharge aumenta o saldo devedor da fatura.
	KindCharge TransactionKind = "charge"
	// KindPayment reduz o saldo devedor: o cartão é o destino do valor.
	KindPayment TransactionKind = "payment"
)

// StatementTransaction é uma linha da fatura. SignedAmount carrega o sinal
// da classificação: positivo para compras, negativo para pagamentos.
type StatementTransaction struct {
	PaymentId    ulid.ULID       `json:"paymentId"`
	OccurrenceId *ulid.ULID      `json:"occurrenceId,omitempty"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description"`
	Kind         TransactionKind `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	SignedAmount decimal.Decimal `json:"signedAmount"`
}

// StatementSummary é o resultado agregado de um ciclo de fatura. Derivado,
// nunca persistido.
type StatementSummary struct {
	Cycle            BillingCycle            `json:"cycle"`
	TransactionCount int                     `json:"transactionCount"`
	ChargesTotal     decimal.Decimal         `json:"chargesTotal"`
	PaymentsTotal    decimal.Decimal         `json:"paymentsTotal"`
	StatementBalance decimal.Decimal         `json:"statementBalance"`
	Transactions     []*StatementTransaction `json:"transactions"`
}

// buildStatement agrega as ocorrências e os pagamentos únicos sem ocorrência
// de um ciclo. Pagamentos cujo id já apareceu em uma ocorrência não entram
// de novo. Ordenação por data crescente; saldo = compras - pagamentos.
// Função pura: segura para chamar repetidamente.
func buildStatement(cardID ulid.ULID, cycle BillingCycle, occurrences []*payment.CardOccurrence, oneTimePayments []*payment.Payment) *StatementSummary {
	summary := &StatementSummary{
		Cycle:            cycle,
		ChargesTotal:     decimal.Zero,
		PaymentsTotal:    decimal.Zero,
		StatementBalance: decimal.Zero,
		Transactions:     []*StatementTransaction{},
	}

	counted := make(map[ulid.ULID]struct{}, len(occurrences))

	for _, co := range occurrences {
		if co.Occurrence == nil || co.Payment == nil {
			continue
		}
		if isExcludedStatus(co.Occurrence.Status) {
			continue
		}
		counted[co.Payment.Id] = struct{}{}

		occID := co.Occurrence.Id
		tx := &StatementTransaction{
			PaymentId:    co.Payment.Id,
			OccurrenceId: &occID,
			Date:         dates.DayOf(co.Occurrence.ScheduledDate),
			Description:  co.Payment.Description,
			Amount:       co.Occurrence.Amount,
		}
		classify(tx, co.Payment, cardID)
		summary.appendTransaction(tx)
	}

	for _, p := range oneTimePayments {
		if _, seen := counted[p.Id]; seen {
			continue
		}
		if isExcludedStatus(p.Status) || p.DueDate == nil {
			continue
		}

		tx := &StatementTransaction{
			PaymentId:   p.Id,
			Date:        dates.DayOf(*p.DueDate),
			Description: p.Description,
			Amount:      p.Amount,
		}
		classify(tx, p, cardID)
		summary.appendTransaction(tx)
	}

	sort.SliceStable(summary.Transactions, func(i, j int) bool {
		return summary.Transactions[i].Date.Before(summary.Transactions[j].Date)
	})

	summary.TransactionCount = len(summary.Transactions)
	summary.StatementBalance = summary.ChargesTotal.Sub(summary.PaymentsTotal)

	return summary
}

func (s *StatementSummary) appendTransaction(tx *StatementTransaction) {
	switch tx.Kind {
	case KindPayment:
		s.PaymentsTotal = s.PaymentsTotal.Add(tx.Amount)
	default:
		s.ChargesTotal = s.ChargesTotal.Add(tx.Amount)
	}
	s.Transactions = append(s.Transactions, tx)
}

func classify(tx *StatementTransaction, p *payment.Payment, cardID ulid.ULID) {
	if p.IsCardDestination(cardID) {
		tx.Kind = KindPayment
		tx.SignedAmount = tx.Amount.Neg()
		return
	}
	tx.Kind = KindCharge
	tx.SignedAmount = tx.Amount
}

func isExcludedStatus(s payment.Status) bool {
	return s == payment.StatusCancelled || s == payment.StatusFailed
}
