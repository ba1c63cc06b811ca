package scale_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantao/shift-engine/scale"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// at builds a local time on the given 2026 calendar day.
func at(month time.Month, day, hour, minute int) time.Time {
	return time.Date(2026, month, day, hour, minute, 0, 0, time.UTC)
}

// =============================================================================
// RATE CLASSIFICATION TESTS
// =============================================================================

func TestCalculateValue_WeekdayDaytime(t *testing.T) {
	// GIVEN: Two daytime hours on a Monday
	// WHEN: Valuing the interval
	// THEN: Two weekday-day rates

	rates := scale.DefaultRates()

	// 2026-01-05 is a Monday
	value := scale.CalculateValue(at(time.January, 5, 8, 0), at(time.January, 5, 10, 0), rates)

	assert.Equal(t, "52.94", value.StringFixed(2))
}

func TestCalculateValue_NightCrossingIntoSaturday(t *testing.T) {
	// GIVEN: Friday 23:00 to Saturday 01:00
	// WHEN: Valuing the interval
	// THEN: Both hours price as weekend night; the small hours of Saturday
	//       belong to Friday's operational day

	rates := scale.DefaultRates()

	// 2026-01-09 is a Friday
	value := scale.CalculateValue(at(time.January, 9, 23, 0), at(time.January, 10, 1, 0), rates)

	assert.Equal(t, "82.76", value.StringFixed(2))
}

func TestCalculateValue_SundayNightIntoMonday(t *testing.T) {
	// GIVEN: Sunday 22:00 to Monday 05:00
	// WHEN: Valuing the interval
	// THEN: All seven hours price as weekend night; Monday's small hours
	//       still belong to Sunday

	rates := scale.DefaultRates()

	// 2026-01-11 is a Sunday
	value := scale.CalculateValue(at(time.January, 11, 22, 0), at(time.January, 12, 5, 0), rates)

	// 7 hours at 41.38
	assert.Equal(t, "289.66", value.StringFixed(2))
}

func TestCalculateValue_NightBoundaryAt22(t *testing.T) {
	// GIVEN: Monday 21:00 to 23:00
	// WHEN: Valuing the interval
	// THEN: 21:00 is a day slot, 22:00 is a night slot

	rates := scale.DefaultRates()

	value := scale.CalculateValue(at(time.January, 5, 21, 0), at(time.January, 5, 23, 0), rates)

	// 26.47 + 29.80
	assert.Equal(t, "56.27", value.StringFixed(2))
}

func TestCalculateValue_FullNightShift(t *testing.T) {
	// GIVEN: A weekday N12 interval, Monday 20:00 to Tuesday 08:00
	// WHEN: Valuing the interval
	// THEN: 5 weekday-day hours (20, 21, 05, 06, 07) plus 7 weekday-night
	//       hours (22 through 04)

	rates := scale.DefaultRates()

	value := scale.CalculateValue(at(time.January, 5, 20, 0), at(time.January, 6, 8, 0), rates)

	// 5*26.47 + 7*29.80
	assert.Equal(t, "340.95", value.StringFixed(2))
}

// =============================================================================
// STARTED-HOUR BILLING TESTS
// =============================================================================

func TestCalculateValue_PartialHoursBillAsFull(t *testing.T) {
	// GIVEN: Monday 08:30 to 09:10, touching two hour slots
	// WHEN: Valuing the interval
	// THEN: Both started hours bill in full

	rates := scale.DefaultRates()

	value := scale.CalculateValue(at(time.January, 5, 8, 30), at(time.January, 5, 9, 10), rates)

	assert.Equal(t, "52.94", value.StringFixed(2))
}

// =============================================================================
// CONTRACT TESTS
// =============================================================================

func TestCalculateValue_EmptyAndInvertedIntervals(t *testing.T) {
	// GIVEN: Zero-length and inverted intervals
	// WHEN: Valuing them
	// THEN: Zero, never negative, never an error

	rates := scale.DefaultRates()
	start := at(time.January, 5, 8, 0)

	require.True(t, scale.CalculateValue(start, start, rates).IsZero())
	require.True(t, scale.CalculateValue(start, start.Add(-time.Hour), rates).IsZero())
}

func TestCalculateValue_CapsAtOneWeek(t *testing.T) {
	// GIVEN: A malformed two-week interval
	// WHEN: Valuing it
	// THEN: Accumulation stops after one week of hourly slots

	rates := scale.DefaultRates()
	start := at(time.January, 5, 0, 0)

	oneWeek := scale.CalculateValue(start, start.Add(7*24*time.Hour), rates)
	twoWeeks := scale.CalculateValue(start, start.Add(14*24*time.Hour), rates)

	assert.True(t, oneWeek.Equal(twoWeeks), "two-week interval should cap at the one-week value")
}
