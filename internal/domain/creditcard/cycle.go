package creditcard

import (
	"time"

	"github.com/DanielUlisses/organizador-financeiro/internal/pkg/dates"
)

// BillingCycle é a janela de dias atribuída a uma fatura, delimitada por
// datas de fechamento consecutivas. Derivado, nunca persistido.
type BillingCycle struct {
	CycleStartDate time.Time `json:"cycleStartDate"`
	CycleEndDate   time.Time `json:"cycleEndDate"`
	CloseDate      time.Time `json:"closeDate"`
	DueDate        time.Time `json:"dueDate"`
}

// CycleFor calcula o ciclo de fatura que contém a data de referência.
// O fechamento de um mês é o dia de fechamento do cartão limitado ao
// tamanho do mês. Uma referência no próprio dia de fechamento pertence ao
// ciclo que termina nesse dia, não ao seguinte. O vencimento é o fechamento
// mais o deslocamento em dias do cartão. Função pura, sem I/O.
func CycleFor(invoiceCloseDay, paymentDueDay int, reference time.Time) BillingCycle {
	reference = dates.DayOf(reference)
	thisClose := closeDateOf(reference.Year(), reference.Month(), invoiceCloseDay)

	var start, end time.Time
	if !reference.After(thisClose) {
		prevMonth := dates.At(reference.Year(), reference.Month(), 1).AddDate(0, -1, 0)
		prevClose := closeDateOf(prevMonth.Year(), prevMonth.Month(), invoiceCloseDay)
		start = prevClose.AddDate(0, 0, 1)
		end = thisClose
	} else {
		nextMonth := dates.At(reference.Year(), reference.Month(), 1).AddDate(0, 1, 0)
		nextClose := closeDateOf(nextMonth.Year(), nextMonth.Month(), invoiceCloseDay)
		start = thisClose.AddDate(0, 0, 1)
		end = nextClose
	}

	return BillingCycle{
		CycleStartDate: start,
		CycleEndDate:   end,
		CloseDate:      end,
		DueDate:        end.AddDate(0, 0, paymentDueDay),
	}
}

func closeDateOf(year int, month time.Month, closeDay int) time.Time {
	return dates.ClampDay(year, month, closeDay)
}
