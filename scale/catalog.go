/*
catalog.go - Immutable shift-type catalog

PURPOSE:
  Holds the process-wide set of shift types a generator can resolve. The
  catalog is built once at startup and injected; nothing mutates it after
  construction, so generated snapshots stay stable.

USAGE:
  catalog := scale.DefaultCatalog()
  st, ok := catalog.Lookup("plantao_noturno_12")
*/
package scale

import (
	"fmt"
	"time"
)

// Catalog is an immutable lookup of shift types by id.
type Catalog struct {
	byID  map[string]ShiftType
	order []string
}

// NewCatalog builds a catalog from the given types. Later duplicates of the
// same id overwrite earlier ones.
func NewCatalog(types []ShiftType) *Catalog {
	c := &Catalog{byID: make(map[string]ShiftType, len(types))}
	for _, st := range types {
		if _, seen := c.byID[st.ID]; !seen {
			c.order = append(c.order, st.ID)
		}
		c.byID[st.ID] = st
	}
	return c
}

// Lookup returns the shift type for id.
func (c *Catalog) Lookup(id string) (ShiftType, bool) {
	st, ok := c.byID[id]
	return st, ok
}

// Types returns all entries in declaration order.
func (c *Catalog) Types() []ShiftType {
	out := make([]ShiftType, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// DefaultCatalog returns the built-in shift types.
func DefaultCatalog() *Catalog {
	return NewCatalog([]ShiftType{
		{
			ID:           "plantao_diurno_12",
			Name:         "Plantão Diurno 12h",
			Code:         "D12",
			Color:        "#FBBF24",
			Hours:        12,
			IsNightShift: false,
			StartTime:    "08:00",
			EndTime:      "20:00",
		},
		{
			ID:           "plantao_diurno_10",
			Name:         "Plantão Diurno 10h",
			Code:         "D10",
			Color:        "#F59E0B",
			Hours:        10,
			IsNightShift: false,
			StartTime:    "08:00",
			EndTime:      "18:00",
		},
		{
			ID:           "plantao_noturno_12",
			Name:         "Plantão Noturno 12h",
			Code:         "N12",
			Color:        "#1E40AF",
			Hours:        12,
			IsNightShift: true,
			StartTime:    "20:00",
			EndTime:      "08:00",
		},
		{
			ID:           "plantao_24",
			Name:         "Plantão 24h",
			Code:         "24h",
			Color:        "#DC2626",
			Hours:        24,
			IsNightShift: true, // covers the night window
			StartTime:    "08:00",
			EndTime:      "08:00", // next day
		},
	})
}

// parseClock parses "HH:MM" into hour and minute components.
// Malformed input yields 00:00 rather than an error; the generator treats
// shift times as best-effort display data, not validated user input.
func parseClock(s string) (hour, minute int) {
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, 0
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0
	}
	return hour, minute
}

// shiftStart anchors a shift type's clock time onto the given calendar day.
func shiftStart(day time.Time, st ShiftType) time.Time {
	h, m := parseClock(st.StartTime)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location())
}
