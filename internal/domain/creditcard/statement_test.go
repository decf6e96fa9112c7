package creditcard_test

import (
	"testing"
	"time"

	"github.com/DanielUlisses/organizador-financeiro/internal/domain/creditcard"
	"github.com/DanielUlisses/organizador-financeiro/internal/domain/payment"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

func statementDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func chargePayment(cardID ulid.ULID, description string) *payment.Payment {
	kind := payment.KindCreditCard
	id := cardID
	return &payment.Payment{
		Id:              ulid.Make(),
		Description:     description,
		FromAccountKind: &kind,
		FromAccountId:   &id,
	}
}

func payoffPayment(cardID ulid.ULID, description string) *payment.Payment {
	kind := payment.KindCreditCard
	id := cardID
	return &payment.Payment{
		Id:            ulid.Make(),
		Description:   description,
		ToAccountKind: &kind,
		ToAccountId:   &id,
	}
}

func cardOccurrence(p *payment.Payment, date time.Time, amount decimal.Decimal, status payment.Status) *payment.CardOccurrence {
	return &payment.CardOccurrence{
		Payment: p,
		Occurrence: &payment.PaymentOccurrence{
			Id:            ulid.Make(),
			PaymentId:     p.Id,
			ScheduledDate: date,
			Amount:        amount,
			Status:        status,
		},
	}
}

func testCycle() creditcard.BillingCycle {
	return creditcard.CycleFor(15, 10, statementDay(2026, time.March, 10))
}

func TestBuildStatementClassifiesAndTotals(t *testing.T) {
	t.Parallel()

	cardID := ulid.Make()
	cycle := testCycle()

	occurrences := []*payment.CardOccurrence{
		cardOccurrence(chargePayment(cardID, "Streaming"), statementDay(2026, time.March, 5), money("120.00"), payment.StatusScheduled),
		cardOccurrence(payoffPayment(cardID, "Pagamento fatura"), statementDay(2026, time.March, 1), money("70.00"), payment.StatusProcessed),
	}

	summary := creditcard.BuildStatement(cardID, cycle, occurrences, nil)

	if summary.TransactionCount != 2 {
		t.Fatalf("count = %d, want 2", summary.TransactionCount)
	}
	if !summary.ChargesTotal.Equal(money("120.00")) {
		t.Fatalf("charges = %s", summary.ChargesTotal)
	}
	if !summary.PaymentsTotal.Equal(money("70.00")) {
		t.Fatalf("payments = %s", summary.PaymentsTotal)
	}
	if !summary.StatementBalance.Equal(money("50.00")) {
		t.Fatalf("balance = %s, want 50.00", summary.StatementBalance)
	}

	// Ordenação por data crescente: pagamento (1/mar) antes da compra (5/mar).
	if summary.Transactions[0].Kind != creditcard.KindPayment {
		t.Fatalf("first transaction kind = %s", summary.Transactions[0].Kind)
	}
	if !summary.Transactions[0].SignedAmount.Equal(money("-70.00")) {
		t.Fatalf("payment signed = %s", summary.Transactions[0].SignedAmount)
	}
	if !summary.Transactions[1].SignedAmount.Equal(money("120.00")) {
		t.Fatalf("charge signed = %s", summary.Transactions[1].SignedAmount)
	}
}

func TestBuildStatementExcludesCancelledAndFailed(t *testing.T) {
	t.Parallel()

	cardID := ulid.Make()
	cycle := testCycle()

	occurrences := []*payment.CardOccurrence{
		cardOccurrence(chargePayment(cardID, "Compra"), statementDay(2026, time.March, 2), money("10.00"), payment.StatusCancelled),
		cardOccurrence(chargePayment(cardID, "Compra"), statementDay(2026, time.March, 3), money("20.00"), payment.StatusFailed),
		cardOccurrence(chargePayment(cardID, "Compra"), statementDay(2026, time.March, 4), money("30.00"), payment.StatusScheduled),
	}

	summary := creditcard.BuildStatement(cardID, cycle, occurrences, nil)

	if summary.TransactionCount != 1 {
		t.Fatalf("count = %d, want 1", summary.TransactionCount)
	}
	if !summary.ChargesTotal.Equal(money("30.00")) {
		t.Fatalf("charges = %s", summary.ChargesTotal)
	}
}

func TestBuildStatementDedupsOneTimePaymentsByID(t *testing.T) {
	t.Parallel()

	cardID := ulid.Make()
	cycle := testCycle()

	// Pagamento único com ocorrência já contada no passo das ocorrências.
	withOccurrence := chargePayment(cardID, "Compra parcelada")
	due := statementDay(2026, time.March, 6)
	withOccurrence.DueDate = &due
	withOccurrence.Amount = money("40.00")

	// Pagamento único sem linha de ocorrência.
	withoutOccurrence := chargePayment(cardID, "Compra avulsa")
	due2 := statementDay(2026, time.March, 8)
	withoutOccurrence.DueDate = &due2
	withoutOccurrence.Amount = money("25.00")

	occurrences := []*payment.CardOccurrence{
		cardOccurrence(withOccurrence, due, money("40.00"), payment.StatusScheduled),
	}

	summary := creditcard.BuildStatement(cardID, cycle, occurrences, []*payment.Payment{withOccurrence, withoutOccurrence})

	if summary.TransactionCount != 2 {
		t.Fatalf("count = %d, want 2", summary.TransactionCount)
	}
	if !summary.ChargesTotal.Equal(money("65.00")) {
		t.Fatalf("charges = %s, want 65.00", summary.ChargesTotal)
	}
}

func TestBuildStatementNetCreditYieldsNegativeBalance(t *testing.T) {
	t.Parallel()

	cardID := ulid.Make()
	cycle := testCycle()

	occurrences := []*payment.CardOccurrence{
		cardOccurrence(payoffPayment(cardID, "Pagamento"), statementDay(2026, time.March, 1), money("200.00"), payment.StatusProcessed),
		cardOccurrence(chargePayment(cardID, "Compra"), statementDay(2026, time.March, 2), money("50.00"), payment.StatusScheduled),
	}

	summary := creditcard.BuildStatement(cardID, cycle, occurrences, nil)

	if !summary.StatementBalance.Equal(money("-150.00")) {
		t.Fatalf("balance = %s, want -150.00", summary.StatementBalance)
	}
}
