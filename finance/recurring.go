/*
recurring.go - Recurring-bill duplication

PURPOSE:
  Recurring transactions (rent, utilities) are entered once and rolled
  forward month by month: any recurring entry from last month's reference
  sheet that has no same description+category entry on the current sheet is
  cloned into the current month, keeping the day of month (clamped to the
  month's length) and resetting status to Pendente.

  The check is pure over an in-memory transaction list; the api scheduler
  decides when to run it and persists whatever it returns.
*/
package finance

import (
	"time"
)

// DuplicateRecurring returns the clones needed to roll last month's recurring
// transactions onto the current reference month. Already-present entries
// (same description and category on the current sheet) are not duplicated.
func DuplicateRecurring(transactions []Transaction, now time.Time) []Transaction {
	currentMonth := MonthLabel(now)
	lastMonth := monthLabelOffset(now, -1)

	var carryOver []Transaction
	for _, tx := range transactions {
		if tx.Recurring && tx.ReferenceMonth == lastMonth {
			carryOver = append(carryOver, tx)
		}
	}
	if len(carryOver) == 0 {
		return nil
	}

	existing := make(map[string]bool)
	for _, tx := range transactions {
		if tx.ReferenceMonth == currentMonth {
			existing[tx.Description+"|"+tx.Category] = true
		}
	}

	var clones []Transaction
	for _, tx := range carryOver {
		if existing[tx.Description+"|"+tx.Category] {
			continue
		}

		day := dayOfMonth(tx.Date)
		if last := lastDayOfMonth(now); day > last {
			day = last
		}
		date := time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, now.Location())

		clones = append(clones, Transaction{
			OwnerID:        tx.OwnerID,
			Type:           tx.Type,
			Description:    tx.Description,
			Category:       tx.Category,
			Amount:         tx.Amount,
			Date:           date.Format("2006-01-02"),
			ReferenceMonth: currentMonth,
			Status:         StatusPending,
			Recurring:      true,
		})
	}

	return clones
}

// dayOfMonth extracts the day from a "YYYY-MM-DD" key; malformed dates
// default to the 1st.
func dayOfMonth(dateKey string) int {
	t, err := time.Parse("2006-01-02", dateKey)
	if err != nil {
		return 1
	}
	return t.Day()
}

func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
