package creditcard_test

import (
	"testing"
	"time"

	"github.com/DanielUlisses/organizador-financeiro/internal/domain/creditcard"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/payment"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

func plannedTestCard() *creditcard.CreditCard {
	return &creditcard.CreditCard{
		Id:       ulid.Make(),
		UserId:   ulid.Make(),
		Name:     "Nubank",
		Currency: "BRL",
	}
}

func placeholderAt(card *creditcard.CreditCard, due time.Time, amount decimal.Decimal, sourceID ulid.ULID) *payment.Payment {
	sourceKind := payment.KindBankAccount
	cardKind := payment.KindCreditCard
	cardID := card.Id
	dueCopy := due
	return &payment.Payment{
		Id:              ulid.Make(),
		UserId:          card.UserId,
		Type:            payment.TypeOneTime,
		Description:     creditcard.PlannedDescription(card),
		Amount:          amount,
		FromAccountKind: &sourceKind,
		FromAccountId:   &sourceID,
		ToAccountKind:   &cardKind,
		ToAccountId:     &cardID,
		DueDate:         &dueCopy,
		Status:          payment.StatusPending,
		Notes:           creditcard.PlannedPaymentMarker(card.Id),
	}
}

func userPaymentAt(card *creditcard.CreditCard, due time.Time, amount decimal.Decimal) *payment.Payment {
	cardKind := payment.KindCreditCard
	cardID := card.Id
	dueCopy := due
	return &payment.Payment{
		Id:            ulid.Make(),
		UserId:        card.UserId,
		Type:          payment.TypeOneTime,
		Description:   "Pagamento manual",
		Amount:        amount,
		ToAccountKind: &cardKind,
		ToAccountId:   &cardID,
		DueDate:       &dueCopy,
		Status:        payment.StatusPending,
		Notes:         "pago pelo app do banco",
	}
}

func TestPlannedPaymentMarker(t *testing.T) {
	t.Parallel()

	card := plannedTestCard()
	marker := creditcard.PlannedPaymentMarker(card.Id)

	if !creditcard.IsPlannedPayment(&payment.Payment{Notes: marker}, card.Id) {
		t.Fatalf("marker not recognized")
	}
	if creditcard.IsPlannedPayment(&payment.Payment{Notes: "nota qualquer"}, card.Id) {
		t.Fatalf("plain note recognized as marker")
	}
	if creditcard.IsPlannedPayment(&payment.Payment{Notes: creditcard.PlannedPaymentMarker(ulid.Make())}, card.Id) {
		t.Fatalf("marker of another card recognized")
	}
}

func TestComputeSyncPlan(t *testing.T) {
	t.Parallel()

	card := plannedTestCard()
	sourceID := ulid.Make()
	due := time.Date(2026, time.April, 25, 0, 0, 0, 0, time.UTC)

	t.Run("creates placeholder for vacant due date", func(t *testing.T) {
		desired := map[time.Time]decimal.Decimal{due: money("350.00")}
		creates, updates, deletes := creditcard.ComputeSyncPlan(card, sourceID, desired, nil)

		if len(creates) != 1 || len(updates) != 0 || len(deletes) != 0 {
			t.Fatalf("plan = %d creates, %d updates, %d deletes", len(creates), len(updates), len(deletes))
		}
		created := creates[0]
		if !created.Amount.Equal(money("350.00")) {
			t.Fatalf("amount = %s", created.Amount)
		}
		if created.Status != payment.StatusPending {
			t.Fatalf("status = %s", created.Status)
		}
		if !created.IsCardDestination(card.Id) {
			t.Fatalf("created payment does not target the card")
		}
		if created.FromAccountId == nil || *created.FromAccountId != sourceID {
			t.Fatalf("source account not set")
		}
		if !creditcard.IsPlannedPayment(created, card.Id) {
			t.Fatalf("created payment lacks marker")
		}
	})

	t.Run("updates placeholder when amount changed", func(t *testing.T) {
		existing := placeholderAt(card, due, money("350.00"), sourceID)
		desired := map[time.Time]decimal.Decimal{due: money("420.00")}

		creates, updates, deletes := creditcard.ComputeSyncPlan(card, sourceID, desired, []*payment.Payment{existing})

		if len(creates) != 0 || len(updates) != 1 || len(deletes) != 0 {
			t.Fatalf("plan = %d creates, %d updates, %d deletes", len(creates), len(updates), len(deletes))
		}
		if !updates[0].Amount.Equal(money("420.00")) {
			t.Fatalf("amount = %s", updates[0].Amount)
		}
	})

	t.Run("unchanged placeholder produces empty plan", func(t *testing.T) {
		existing := placeholderAt(card, due, money("350.00"), sourceID)
		desired := map[time.Time]decimal.Decimal{due: money("350.00")}

		creates, updates, deletes := creditcard.ComputeSyncPlan(card, sourceID, desired, []*payment.Payment{existing})

		if len(creates) != 0 || len(updates) != 0 || len(deletes) != 0 {
			t.Fatalf("expected empty plan, got %d creates, %d updates, %d deletes", len(creates), len(updates), len(deletes))
		}
	})

	t.Run("zero desired amount deletes placeholder", func(t *testing.T) {
		existing := placeholderAt(card, due, money("350.00"), sourceID)
		desired := map[time.Time]decimal.Decimal{due: decimal.Zero}

		creates, updates, deletes := creditcard.ComputeSyncPlan(card, sourceID, desired, []*payment.Payment{existing})

		if len(deletes) != 1 || deletes[0] != existing.Id {
			t.Fatalf("expected deletion of placeholder, got %v", deletes)
		}
		if len(creates) != 0 || len(updates) != 0 {
			t.Fatalf("unexpected creates/updates")
		}
	})

	t.Run("zero desired amount with no placeholder is a no-op", func(t *testing.T) {
		desired := map[time.Time]decimal.Decimal{due: decimal.Zero}
		creates, updates, deletes := creditcard.ComputeSyncPlan(card, sourceID, desired, nil)
		if len(creates) != 0 || len(updates) != 0 || len(deletes) != 0 {
			t.Fatalf("expected empty plan")
		}
	})

	t.Run("user payment wins and stale placeholder is removed", func(t *testing.T) {
		user := userPaymentAt(card, due, money("100.00"))
		stale := placeholderAt(card, due, money("350.00"), sourceID)
		desired := map[time.Time]decimal.Decimal{due: money("420.00")}

		creates, updates, deletes := creditcard.ComputeSyncPlan(card, sourceID, desired, []*payment.Payment{user, stale})

		if len(creates) != 0 || len(updates) != 0 {
			t.Fatalf("user-authored payment must not be touched")
		}
		if len(deletes) != 1 || deletes[0] != stale.Id {
			t.Fatalf("expected stale placeholder deletion, got %v", deletes)
		}
	})

	t.Run("duplicate placeholders keep one and delete the rest", func(t *testing.T) {
		first := placeholderAt(card, due, money("350.00"), sourceID)
		second := placeholderAt(card, due, money("350.00"), sourceID)
		desired := map[time.Time]decimal.Decimal{due: money("350.00")}

		creates, updates, deletes := creditcard.ComputeSyncPlan(card, sourceID, desired, []*payment.Payment{first, second})

		if len(deletes) != 1 || deletes[0] != second.Id {
			t.Fatalf("expected deletion of duplicate, got %v", deletes)
		}
		if len(creates) != 0 || len(updates) != 0 {
			t.Fatalf("unexpected creates/updates")
		}
	})

	t.Run("source account change triggers update", func(t *testing.T) {
		existing := placeholderAt(card, due, money("350.00"), ulid.Make())
		desired := map[time.Time]decimal.Decimal{due: money("350.00")}

		_, updates, _ := creditcard.ComputeSyncPlan(card, sourceID, desired, []*payment.Payment{existing})

		if len(updates) != 1 {
			t.Fatalf("expected update, got %d", len(updates))
		}
		if updates[0].FromAccountId == nil || *updates[0].FromAccountId != sourceID {
			t.Fatalf("source account not updated")
		}
	})
}
