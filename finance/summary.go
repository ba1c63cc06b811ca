/*
summary.go - Monthly aggregation and spending signals

PURPOSE:
  Pure aggregation over a transaction list for one reference month: totals
  per type, per-category expense breakdown, and a few derived signals
  (weekend-heavy spending, above/below the monthly average, top category).
  Output is data only; presentation belongs to whatever shell consumes it.
*/
package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// MonthSummary aggregates one reference month.
type MonthSummary struct {
	Month             string
	Income            decimal.Decimal
	Expense           decimal.Decimal
	Balance           decimal.Decimal
	ExpenseByCategory map[string]decimal.Decimal
}

// Summarize totals the transactions booked into the given reference month.
func Summarize(transactions []Transaction, month string) MonthSummary {
	s := MonthSummary{
		Month:             month,
		Income:            decimal.Zero,
		Expense:           decimal.Zero,
		ExpenseByCategory: make(map[string]decimal.Decimal),
	}

	for _, tx := range transactions {
		if tx.ReferenceMonth != month {
			continue
		}
		switch tx.Type {
		case TypeIncome:
			s.Income = s.Income.Add(tx.Amount)
		case TypeExpense:
			s.Expense = s.Expense.Add(tx.Amount)
			cur := s.ExpenseByCategory[tx.Category]
			s.ExpenseByCategory[tx.Category] = cur.Add(tx.Amount)
		}
	}

	s.Balance = s.Income.Sub(s.Expense)
	return s
}

// =============================================================================
// INSIGHTS
// =============================================================================

// InsightKind tags a derived spending signal.
type InsightKind string

const (
	InsightWeekendSpending InsightKind = "weekend_spending"
	InsightBelowAverage    InsightKind = "below_average"
	InsightAboveAverage    InsightKind = "above_average"
	InsightTopCategory     InsightKind = "top_category"
)

// Insight is one derived signal over a month's expenses.
type Insight struct {
	Kind     InsightKind
	Category string          // set for InsightTopCategory
	Amount   decimal.Decimal // saved/excess/top-category amount
}

// Insights derives spending signals for the selected reference month against
// the full transaction history.
func Insights(transactions []Transaction, month string) []Insight {
	var out []Insight

	var expenses []Transaction
	for _, tx := range transactions {
		if tx.Type == TypeExpense {
			expenses = append(expenses, tx)
		}
	}
	if len(expenses) == 0 {
		return out
	}

	// Weekend-heavy spending: the most frequent expense weekday is Sat/Sun.
	dayCounts := make(map[time.Weekday]int)
	for _, tx := range expenses {
		if t, err := time.Parse("2006-01-02", tx.Date); err == nil {
			dayCounts[t.Weekday()]++
		}
	}
	var busiest time.Weekday
	max := 0
	for day, n := range dayCounts {
		if n > max || (n == max && day < busiest) {
			max = n
			busiest = day
		}
	}
	if max > 0 && (busiest == time.Saturday || busiest == time.Sunday) {
		out = append(out, Insight{Kind: InsightWeekendSpending})
	}

	// Current month vs the all-months average: below 90% is savings, above
	// 110% is overspending.
	monthly := make(map[string]decimal.Decimal)
	for _, tx := range expenses {
		cur := monthly[tx.ReferenceMonth]
		monthly[tx.ReferenceMonth] = cur.Add(tx.Amount)
	}
	if len(monthly) > 0 {
		total := decimal.Zero
		for _, v := range monthly {
			total = total.Add(v)
		}
		avg := total.Div(decimal.NewFromInt(int64(len(monthly))))
		current := monthly[month]

		if current.IsPositive() && current.LessThan(avg.Mul(decimal.NewFromFloat(0.9))) {
			out = append(out, Insight{Kind: InsightBelowAverage, Amount: avg.Sub(current).Round(2)})
		} else if current.GreaterThan(avg.Mul(decimal.NewFromFloat(1.1))) {
			out = append(out, Insight{Kind: InsightAboveAverage, Amount: current.Sub(avg).Round(2)})
		}
	}

	// Top expense category of the selected month.
	byCat := make(map[string]decimal.Decimal)
	for _, tx := range expenses {
		if tx.ReferenceMonth == month {
			cur := byCat[tx.Category]
			byCat[tx.Category] = cur.Add(tx.Amount)
		}
	}
	if len(byCat) > 0 {
		cats := make([]string, 0, len(byCat))
		for c := range byCat {
			cats = append(cats, c)
		}
		sort.Slice(cats, func(i, j int) bool {
			a, b := byCat[cats[i]], byCat[cats[j]]
			if !a.Equal(b) {
				return a.GreaterThan(b)
			}
			return cats[i] < cats[j]
		})
		top := cats[0]
		out = append(out, Insight{Kind: InsightTopCategory, Category: top, Amount: byCat[top]})
	}

	return out
}
