package payment

import (
	"sort"
	"time"

	"github.com/DanielUlisses/organizador-financeiro/internal/pkg/dates"

	"github.com/shopspring/decimal"
)

// overrideResolution é o efeito líquido das exceções ativas sobre uma data
// candidata da série.
type overrideResolution struct {
	Skip   bool
	Amount decimal.Decimal
}

// overrideAffects aplica o invariante de alcance da exceção:
// data >= effective_date, dentro de end_date quando presente, e igual a
// target_date quando presente.
func overrideAffects(date time.Time, o *RecurringPaymentOverride) bool {
	date = dates.DayOf(date)
	if date.Before(dates.DayOf(o.EffectiveDate)) {
		return false
	}
	if o.EndDate != nil && date.After(dates.DayOf(*o.EndDate)) {
		return false
	}
	if o.TargetDate != nil {
		return date.Equal(dates.DayOf(*o.TargetDate))
	}
	return true
}

// resolveOverrides avalia todas as exceções ativas que alcançam a data.
// Exceções são ordenadas por effective_date crescente para que o resultado
// seja reprodutível: a última change_amount vigente vence. Uma exceção skip
// vence imediatamente, mesmo que uma change_amount também alcance a data.
// change_date e cancel são aceitas e armazenadas, mas não alteram a geração.
func resolveOverrides(date time.Time, baseAmount decimal.Decimal, overrides []*RecurringPaymentOverride) overrideResolution {
	sorted := make([]*RecurringPaymentOverride, len(overrides))
	copy(sorted, overrides)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EffectiveDate.Before(sorted[j].EffectiveDate)
	})

	result := overrideResolution{Amount: baseAmount}
	for _, o := range sorted {
		if !o.IsActive || !overrideAffects(date, o) {
			continue
		}
		switch o.Type {
		case OverrideSkip:
			result.Skip = true
			return result
		case OverrideChangeAmount:
			if o.NewAmount != nil {
				result.Amount = *o.NewAmount
			}
		case OverrideChangeDate, OverrideCancel:
			// sem efeito na geração
		}
	}
	return result
}
