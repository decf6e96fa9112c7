// Package dates concentra a aritmética de datas de calendário usada pelo
// motor de recorrência e de ciclo de fatura. Todas as funções são puras;
// "hoje" é sempre passado como parâmetro pelos chamadores.
package dates

import "time"

// At constrói uma data de calendário (meia-noite UTC).
func At(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DayOf normaliza um instante para a data de calendário correspondente.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysInMonth retorna o número de dias do mês informado.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay retorna uma data no mês informado com o dia limitado ao último
// dia do mês (dia 31 em abril vira 30).
func ClampDay(year int, month time.Month, day int) time.Time {
	last := DaysInMonth(year, month)
	if day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return At(year, month, day)
}

// AddMonths avança n meses preservando o dia quando possível e limitando
// ao último dia do mês de destino (31/jan + 1 mês = 28/fev, não 3/mar,
// que seria o resultado de time.AddDate).
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return ClampDay(first.Year(), first.Month(), day)
}

// MidMonth retorna o dia 15 do mês da data informada, usado como data de
// referência estável para projeção de ciclos de fatura.
func MidMonth(t time.Time) time.Time {
	return At(t.Year(), t.Month(), 15)
}
