package dates_test

import (
	"testing"
	"time"

	"github.com/DanielUlisses/organizador-financeiro/internal/pkg/dates"
)

func TestAddMonthsClampsToMonthLength(t *testing.T) {
	cases := []struct {
		name string
		from time.Time
		n    int
		want time.Time
	}{
		{"jan31 to feb28", dates.At(2026, time.January, 31), 1, dates.At(2026, time.February, 28)},
		{"jan31 to leap feb29", dates.At(2024, time.January, 31), 1, dates.At(2024, time.February, 29)},
		{"feb28 keeps day", dates.At(2026, time.February, 28), 1, dates.At(2026, time.March, 28)},
		{"mar31 to apr30", dates.At(2026, time.March, 31), 1, dates.At(2026, time.April, 30)},
		{"quarter from nov30", dates.At(2025, time.November, 30), 3, dates.At(2026, time.February, 28)},
		{"year boundary", dates.At(2025, time.December, 15), 1, dates.At(2026, time.January, 15)},
		{"backwards", dates.At(2026, time.March, 31), -1, dates.At(2026, time.February, 28)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := dates.AddMonths(tc.from, tc.n)
			if !got.Equal(tc.want) {
				t.Errorf("AddMonths(%v, %d) = %v, esperado %v", tc.from, tc.n, got, tc.want)
			}
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	if got := dates.DaysInMonth(2026, time.April); got != 30 {
		t.Errorf("abril deveria ter 30 dias, obteve %d", got)
	}
	if got := dates.DaysInMonth(2026, time.February); got != 28 {
		t.Errorf("fevereiro 2026 deveria ter 28 dias, obteve %d", got)
	}
	if got := dates.DaysInMonth(2024, time.February); got != 29 {
		t.Errorf("fevereiro 2024 deveria ter 29 dias, obteve %d", got)
	}
}

func TestClampDay(t *testing.T) {
	got := dates.ClampDay(2026, time.April, 31)
	if want := dates.At(2026, time.April, 30); !got.Equal(want) {
		t.Errorf("ClampDay(2026, abril, 31) = %v, esperado %v", got, want)
	}

	got = dates.ClampDay(2026, time.April, 15)
	if want := dates.At(2026, time.April, 15); !got.Equal(want) {
		t.Errorf("dia dentro do mês não deveria ser alterado: %v", got)
	}
}

func TestDayOfNormalizes(t *testing.T) {
	loc := time.FixedZone("X", -3*3600)
	in := time.Date(2026, time.May, 10, 23, 45, 0, 0, loc)
	got := dates.DayOf(in)
	if want := dates.At(2026, time.May, 10); !got.Equal(want) {
		t.Errorf("DayOf = %v, esperado %v", got, want)
	}
}
