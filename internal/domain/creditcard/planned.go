package creditcard

import (
	"fmt"
	"strings"
	"time"

	"github.com/DanielUlisses/organizador-financeiro/internal/domain/payment"
	"github.com/DanielUlisses/organizador-financeiro/internal/pkg"
	"github.com/DanielUlisses/organizador-financeiro/internal/pkg/dates"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// plannedPaymentPrefix marca pagamentos planejados gerenciados pelo sistema
// no campo de notas. Notas de usuário nunca devem começar com esse prefixo.
const plannedPaymentPrefix = "planned_payment"

// PlannedPaymentMarker devolve o marcador reservado de um cartão.
func PlannedPaymentMarker(cardID ulid.ULID) string {
	return fmt.Sprintf("%s:card_id=%s", plannedPaymentPrefix, cardID.String())
}

// IsPlannedPayment informa se o pagamento é um placeholder gerenciado pelo
// sistema para o cartão.
func IsPlannedPayment(p *payment.Payment, cardID ulid.ULID) bool {
	return strings.Contains(p.Notes, PlannedPaymentMarker(cardID))
}

// syncPlan é o conjunto de mudanças que leva os placeholders existentes ao
// estado desejado. Um plano vazio significa que o horizonte já está em dia.
type syncPlan struct {
	creates   []*payment.Payment
	updates   []*payment.Payment
	deleteIDs []ulid.ULID
}

func (p *syncPlan) isEmpty() bool {
	return len(p.creates) == 0 && len(p.updates) == 0 && len(p.deleteIDs) == 0
}

// computeSyncPlan reconcilia os pagamentos existentes com destino no cartão
// contra o mapa desejado (vencimento -> valor). Regras, por vencimento:
// um pagamento de usuário (sem marcador) ocupa a data e placeholders
// conflitantes são removidos; valor desejado zero remove o placeholder;
// placeholder existente com valor positivo é atualizado apenas quando algo
// mudou, preservando a idempotência; data vaga com valor positivo gera um
// placeholder novo. Função pura.
func computeSyncPlan(card *CreditCard, sourceAccountID ulid.ULID, desired map[time.Time]decimal.Decimal, existing []*payment.Payment) *syncPlan {
	plan := &syncPlan{}

	byDueDate := make(map[time.Time][]*payment.Payment)
	for _, p := range existing {
		if p.DueDate == nil {
			continue
		}
		due := dates.DayOf(*p.DueDate)
		byDueDate[due] = append(byDueDate[due], p)
	}

	sourceKind := payment.KindBankAccount
	cardKind := payment.KindCreditCard
	cardID := card.Id

	for due, amount := range desired {
		due = dates.DayOf(due)
		occupants := byDueDate[due]

		var placeholders []*payment.Payment
		userAuthored := false
		for _, p := range occupants {
			if IsPlannedPayment(p, card.Id) {
				placeholders = append(placeholders, p)
				continue
			}
			userAuthored = true
		}

		// Pagamento de usuário na data vence sempre; placeholders
		// remanescentes na mesma data seriam duplicatas conflitantes.
		if userAuthored {
			for _, ph := range placeholders {
				plan.deleteIDs = append(plan.deleteIDs, ph.Id)
			}
			continue
		}

		if !amount.IsPositive() {
			for _, ph := range placeholders {
				plan.deleteIDs = append(plan.deleteIDs, ph.Id)
			}
			continue
		}

		if len(placeholders) > 0 {
			keep := placeholders[0]
			for _, extra := range placeholders[1:] {
				plan.deleteIDs = append(plan.deleteIDs, extra.Id)
			}
			if placeholderChanged(keep, amount, sourceAccountID, card) {
				keep.Amount = amount
				keep.Description = plannedDescription(card)
				keep.FromAccountKind = &sourceKind
				keep.FromAccountId = &sourceAccountID
				keep.Status = payment.StatusPending
				keep.UpdatedAt = pkg.SetTimestamps()
				plan.updates = append(plan.updates, keep)
			}
			continue
		}

		dueCopy := due
		sourceID := sourceAccountID
		now := pkg.SetTimestamps()
		plan.creates = append(plan.creates, &payment.Payment{
			Id:              pkg.GenerateULIDObject(),
			UserId:          card.UserId,
			Type:            payment.TypeOneTime,
			Description:     plannedDescription(card),
			Amount:          amount,
			Currency:        card.Currency,
			Category:        payment.CategoryBill,
			FromAccountKind: &sourceKind,
			FromAccountId:   &sourceID,
			ToAccountKind:   &cardKind,
			ToAccountId:     &cardID,
			DueDate:         &dueCopy,
			Status:          payment.StatusPending,
			Notes:           PlannedPaymentMarker(card.Id),
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}

	return plan
}

func placeholderChanged(p *payment.Payment, amount decimal.Decimal, sourceAccountID ulid.ULID, card *CreditCard) bool {
	if !p.Amount.Equal(amount) {
		return true
	}
	if p.Description != plannedDescription(card) {
		return true
	}
	if p.FromAccountId == nil || *p.FromAccountId != sourceAccountID {
		return true
	}
	if p.Status != payment.StatusPending {
		return true
	}
	return false
}

func plannedDescription(card *CreditCard) string {
	return fmt.Sprintf("Pagamento fatura %s", card.Name)
}
