package creditcard

import (
	"time"

	"github.com/DanielUlisses/organizador-financeiro/internal/domain/payment"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Costuras para os testes externos do pacote.
var (
	BuildStatement     = buildStatement
	PlannedDescription = plannedDescription
)

func ComputeSyncPlan(card *CreditCard, sourceAccountID ulid.ULID, desired map[time.Time]decimal.Decimal, existing []*payment.Payment) (creates, updates []*payment.Payment, deleteIDs []ulid.ULID) {
	plan := computeSyncPlan(card, sourceAccountID, desired, existing)
	return plan.creates, plan.updates, plan.deleteIDs
}
