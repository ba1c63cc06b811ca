/*
month.go - Reference-month labels

PURPOSE:
  Transactions are bucketed by a human-readable reference month ("Janeiro
  2026") rather than by their literal date, because pay often lands in a
  different month than the work. Extra-duty (AC-4) income uses a two-month
  forward shift: a shift worked in January is paid on the March sheet.
*/
package finance

import (
	"fmt"
	"time"
)

var monthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril",
	"Maio", "Junho", "Julho", "Agosto",
	"Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthLabel formats t as a "Janeiro 2026" style reference-month label.
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", monthNames[int(t.Month())-1], t.Year())
}

// ShiftedReferenceMonth returns the reference month a transaction dated at t
// belongs to. Extra-duty income is shifted two months forward; everything
// else books into its own month.
func ShiftedReferenceMonth(t time.Time, category string, txType TransactionType) string {
	if txType == TypeIncome && category == CategoryExtraDuty {
		return monthLabelOffset(t, 2)
	}
	return MonthLabel(t)
}

// monthLabelOffset shifts by whole months without day-of-month normalization,
// so Dec 31 + 2 months is still "Fevereiro", never a spilled-over March.
func monthLabelOffset(t time.Time, months int) string {
	idx := t.Year()*12 + int(t.Month()) - 1 + months
	return fmt.Sprintf("%s %d", monthNames[idx%12], idx/12)
}
