package payment_test

import (
	"testing"
	"time"

	"github.com/DanielUlisses/organizador-financeiro/internal/domain/payment"
	appErrors "github.com/DanielUlisses/organizador-financeiro/internal/errors"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewScheduleRejectsUnknownFrequency(t *testing.T) {
	t.Parallel()

	_, err := payment.NewSchedule(payment.Frequency("biweekly"))
	if err == nil {
		t.Fatalf("expected error")
	}
	appErr, ok := appErrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %s", appErr.Code)
	}
}

func TestScheduleAdvance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		frequency payment.Frequency
		start     time.Time
		n         int
		want      time.Time
	}{
		{
			name:      "daily",
			frequency: payment.FrequencyDaily,
			start:     day(2026, time.January, 15),
			n:         10,
			want:      day(2026, time.January, 25),
		},
		{
			name:      "weekly crosses month",
			frequency: payment.FrequencyWeekly,
			start:     day(2026, time.January, 28),
			n:         2,
			want:      day(2026, time.February, 11),
		},
		{
			name:      "monthly clamps to february",
			frequency: payment.FrequencyMonthly,
			start:     day(2026, time.January, 31),
			n:         1,
			want:      day(2026, time.February, 28),
		},
		{
			name:      "monthly recovers day 31 in march",
			frequency: payment.FrequencyMonthly,
			start:     day(2026, time.January, 31),
			n:         2,
			want:      day(2026, time.March, 31),
		},
		{
			name:      "monthly clamps to april 30",
			frequency: payment.FrequencyMonthly,
			start:     day(2026, time.January, 31),
			n:         3,
			want:      day(2026, time.April, 30),
		},
		{
			name:      "monthly leap february keeps day 29",
			frequency: payment.FrequencyMonthly,
			start:     day(2028, time.January, 31),
			n:         1,
			want:      day(2028, time.February, 29),
		},
		{
			name:      "quarterly",
			frequency: payment.FrequencyQuarterly,
			start:     day(2026, time.November, 30),
			n:         1,
			want:      day(2027, time.February, 28),
		},
		{
			name:      "yearly on leap day",
			frequency: payment.FrequencyYearly,
			start:     day(2028, time.February, 29),
			n:         1,
			want:      day(2029, time.February, 28),
		},
		{
			name:      "n zero returns the start",
			frequency: payment.FrequencyMonthly,
			start:     day(2026, time.January, 31),
			n:         0,
			want:      day(2026, time.January, 31),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			sched, err := payment.NewSchedule(tt.frequency)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := sched.Advance(tt.start, tt.n)
			if !got.Equal(tt.want) {
				t.Fatalf("Advance(%v, %d) = %v, want %v", tt.start, tt.n, got, tt.want)
			}
		})
	}
}

func TestScheduleNextEqualsAdvanceOne(t *testing.T) {
	t.Parallel()

	sched, err := payment.NewSchedule(payment.FrequencyMonthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := day(2026, time.March, 31)
	if got, want := sched.Next(start), sched.Advance(start, 1); !got.Equal(want) {
		t.Fatalf("Next = %v, Advance(1) = %v", got, want)
	}
}
