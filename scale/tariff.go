/*
tariff.go - Hour-bucketed pay calculation for extra-duty shifts

PURPOSE:
  Computes the monetary value of a worked interval under the AC-4 tariff
  table: four rates keyed by night/day and weekend/weekday. The billing
  unit is the started hour, not the minute.

THE OPERATIONAL DAY:
  Tariff lookup does not use the literal calendar day for deep-night hours.
  A slot between 00:00 and 04:59 belongs to the previous day's night: the
  small hours of Saturday are priced as Friday night, Sunday's as Saturday,
  Monday's as Sunday. Weekend pricing covers Friday, Saturday and Sunday
  for both the day and night tables, so Friday daytime is already
  weekend-priced and Sunday night (into Monday) still is.

CONTRACT:
  - start >= end returns zero; never an error, never negative.
  - Iteration is capped at one week of hourly slots; anything longer is
    treated as malformed input and the accumulated value is returned as-is.
  - Rounding to 2 decimal places happens once, on the final sum.
*/
package scale

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rates is the tariff table for one hour of extra duty.
type Rates struct {
	NightWeekend decimal.Decimal `json:"nightWeekend"`
	NightWeekday decimal.Decimal `json:"nightWeekday"`
	DayWeekend   decimal.Decimal `json:"dayWeekend"`
	DayWeekday   decimal.Decimal `json:"dayWeekday"`
}

// DefaultRates returns the standard AC-4 hourly tariff table.
func DefaultRates() Rates {
	return Rates{
		NightWeekend: decimal.NewFromFloat(41.38),
		NightWeekday: decimal.NewFromFloat(29.80),
		DayWeekend:   decimal.NewFromFloat(36.41),
		DayWeekday:   decimal.NewFromFloat(26.47),
	}
}

// maxTariffHours caps the slot iteration at one week.
const maxTariffHours = 24 * 7

// CalculateValue returns the value of the interval [start, end) under the
// given tariff table. Each hour slot touched by the interval contributes one
// full rate regardless of partial occupancy.
func CalculateValue(start, end time.Time, rates Rates) decimal.Decimal {
	total := decimal.Zero
	if !start.Before(end) {
		return total
	}

	// Floor to the start of the hour; "hora iniciada" billing.
	slot := time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), 0, 0, 0, start.Location())

	for steps := 0; slot.Before(end) && steps < maxTariffHours; steps++ {
		total = total.Add(slotRate(slot, rates))
		slot = slot.Add(time.Hour)
	}

	return total.Round(2)
}

// slotRate classifies one hour slot and picks its rate.
func slotRate(slot time.Time, rates Rates) decimal.Decimal {
	h := slot.Hour()
	night := h >= 22 || h < 5

	// Operational day: the small hours count against the previous day.
	day := slot.Weekday()
	if h < 5 {
		day = (day + 6) % 7
	}
	weekend := day == time.Friday || day == time.Saturday || day == time.Sunday

	switch {
	case night && weekend:
		return rates.NightWeekend
	case night:
		return rates.NightWeekday
	case weekend:
		return rates.DayWeekend
	default:
		return rates.DayWeekday
	}
}
