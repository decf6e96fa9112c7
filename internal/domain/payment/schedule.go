package payment

import (
	"time"

	appErrors "github.com/DanielUlisses/organizador-financeiro/internal/errors"
	"github.com/DanielUlisses/organizador-financeiro/internal/pkg/dates"
)

type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// Schedule é uma frequência de recorrência validada na construção; uma
// frequência desconhecida é erro de configuração e nunca chega ao cálculo.
type Schedule struct {
	frequency Frequency
}

func NewSchedule(f Frequency) (Schedule, error) {
	if !f.IsValid() {
		return Schedule{}, appErrors.NewValidationError("frequency", "frequência inválida")
	}
	return Schedule{frequency: f}, nil
}

// Next calcula a próxima data da sequência a partir de d.
func (s Schedule) Next(d time.Time) time.Time {
	return s.Advance(d, 1)
}

// Advance calcula a n-ésima data da sequência ancorada em start. Ancorar no
// início preserva o dia original do mês através de meses curtos: uma série
// mensal iniciada em 31/jan produz 28/fev (limitado), 31/mar e 30/abr.
// Avançar a partir da data limitada anterior perderia o dia 31.
func (s Schedule) Advance(start time.Time, n int) time.Time {
	switch s.frequency {
	case FrequencyDaily:
		return start.AddDate(0, 0, n)
	case FrequencyWeekly:
		return start.AddDate(0, 0, 7*n)
	case FrequencyMonthly:
		return dates.AddMonths(start, n)
	case FrequencyQuarterly:
		return dates.AddMonths(start, 3*n)
	case FrequencyYearly:
		return dates.AddMonths(start, 12*n)
	}
	// inalcançável: NewSchedule rejeita frequências desconhecidas
	return start
}
