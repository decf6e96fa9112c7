package payment_test

import (
	"testing"
	"time"

	"github.com/DanielUlisses/organizador-financeiro/internal/domain/payment"

	"github.com/shopspring/decimal"
)

func resolverDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amountPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestOverrideAffects(t *testing.T) {
	t.Parallel()

	effective := resolverDay(2026, time.February, 1)
	end := resolverDay(2026, time.April, 30)
	target := resolverDay(2026, time.March, 15)

	tests := []struct {
		name     string
		override *payment.RecurringPaymentOverride
		date     time.Time
		want     bool
	}{
		{
			name:     "before effective date",
			override: &payment.RecurringPaymentOverride{EffectiveDate: effective},
			date:     resolverDay(2026, time.January, 31),
			want:     false,
		},
		{
			name:     "on effective date",
			override: &payment.RecurringPaymentOverride{EffectiveDate: effective},
			date:     effective,
			want:     true,
		},
		{
			name:     "after end date",
			override: &payment.RecurringPaymentOverride{EffectiveDate: effective, EndDate: &end},
			date:     resolverDay(2026, time.May, 1),
			want:     false,
		},
		{
			name:     "on end date",
			override: &payment.RecurringPaymentOverride{EffectiveDate: effective, EndDate: &end},
			date:     end,
			want:     true,
		},
		{
			name:     "target date match",
			override: &payment.RecurringPaymentOverride{EffectiveDate: effective, TargetDate: &target},
			date:     target,
			want:     true,
		},
		{
			name:     "target date mismatch",
			override: &payment.RecurringPaymentOverride{EffectiveDate: effective, TargetDate: &target},
			date:     resolverDay(2026, time.March, 16),
			want:     false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := payment.OverrideAffects(tt.date, tt.override); got != tt.want {
				t.Fatalf("OverrideAffects(%v) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestResolveOverrides(t *testing.T) {
	t.Parallel()

	base := decimal.RequireFromString("100.00")
	date := resolverDay(2026, time.March, 10)

	t.Run("no overrides keeps base amount", func(t *testing.T) {
		res := payment.ResolveOverrides(date, base, nil)
		if res.Skip {
			t.Fatalf("unexpected skip")
		}
		if !res.Amount.Equal(base) {
			t.Fatalf("amount = %s, want %s", res.Amount, base)
		}
	})

	t.Run("skip wins over change_amount", func(t *testing.T) {
		overrides := []*payment.RecurringPaymentOverride{
			{
				Type:          payment.OverrideChangeAmount,
				EffectiveDate: resolverDay(2026, time.January, 1),
				NewAmount:     amountPtr("150.00"),
				IsActive:      true,
			},
			{
				Type:          payment.OverrideSkip,
				EffectiveDate: resolverDay(2026, time.February, 1),
				IsActive:      true,
			},
		}
		res := payment.ResolveOverrides(date, base, overrides)
		if !res.Skip {
			t.Fatalf("expected skip")
		}
	})

	t.Run("last change_amount by effective date wins", func(t *testing.T) {
		overrides := []*payment.RecurringPaymentOverride{
			// Fora de ordem de propósito: a resolução ordena por
			// effective_date antes de aplicar.
			{
				Type:          payment.OverrideChangeAmount,
				EffectiveDate: resolverDay(2026, time.March, 1),
				NewAmount:     amountPtr("200.00"),
				IsActive:      true,
			},
			{
				Type:          payment.OverrideChangeAmount,
				EffectiveDate: resolverDay(2026, time.January, 1),
				NewAmount:     amountPtr("150.00"),
				IsActive:      true,
			},
		}
		res := payment.ResolveOverrides(date, base, overrides)
		if res.Skip {
			t.Fatalf("unexpected skip")
		}
		if want := decimal.RequireFromString("200.00"); !res.Amount.Equal(want) {
			t.Fatalf("amount = %s, want %s", res.Amount, want)
		}
	})

	t.Run("inactive override is ignored", func(t *testing.T) {
		overrides := []*payment.RecurringPaymentOverride{
			{
				Type:          payment.OverrideSkip,
				EffectiveDate: resolverDay(2026, time.January, 1),
				IsActive:      false,
			},
		}
		res := payment.ResolveOverrides(date, base, overrides)
		if res.Skip {
			t.Fatalf("inactive skip should not apply")
		}
	})

	t.Run("change_date and cancel do not affect generation", func(t *testing.T) {
		newDue := resolverDay(2026, time.March, 20)
		overrides := []*payment.RecurringPaymentOverride{
			{
				Type:          payment.OverrideChangeDate,
				EffectiveDate: resolverDay(2026, time.January, 1),
				NewDueDate:    &newDue,
				IsActive:      true,
			},
			{
				Type:          payment.OverrideCancel,
				EffectiveDate: resolverDay(2026, time.January, 1),
				IsActive:      true,
			},
		}
		res := payment.ResolveOverrides(date, base, overrides)
		if res.Skip {
			t.Fatalf("unexpected skip")
		}
		if !res.Amount.Equal(base) {
			t.Fatalf("amount = %s, want %s", res.Amount, base)
		}
	})
}
