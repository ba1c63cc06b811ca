/*
Package scale provides the core duty-shift scheduling engine.

PURPOSE:
  This package contains the types and algorithms for managing recurring
  duty-shift scales ("escalas"): expanding a recurring rule into concrete
  calendar occurrences, merging persisted per-day overrides, and computing
  the monetary value of a worked interval under an hour-bucketed tariff.

KEY CONCEPTS IN THIS FILE (types.go):
  - ShiftType:  A catalog entry describing one kind of shift (D12, N12, ...)
  - ShiftScale: The recurring rule a user configures once ("the rule")
  - ShiftEvent: One concrete calendar-dated occurrence ("the fact")

DESIGN PRINCIPLES:
  1. Determinism: generated occurrences carry the id "{date}-{scaleID}" so
     persisted overrides can supersede them by plain equality.
  2. Snapshots: occurrences embed a copy of their ShiftType; later catalog
     changes never rewrite history.
  3. Soft delete: cancellation is a status, not a removed record, so the
     override-precedence merge stays a single uniform rule.

SEE ALSO:
  - catalog.go:   Immutable shift-type catalog
  - generator.go: Rule expansion over a date range
  - tariff.go:    Hour-bucketed pay calculation
  - service.go:   Occurrence reconciliation and rule lifecycle
*/
package scale

import "time"

// =============================================================================
// SHIFT TYPE - Catalog entry (immutable, statically defined)
// =============================================================================

// ShiftType describes one kind of shift. Instances live in a Catalog and are
// copied into ShiftEvent snapshots at generation time.
type ShiftType struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	Color        string `json:"color"`
	Hours        int    `json:"hours"`
	IsNightShift bool   `json:"isNightShift"`
	IsExtraDuty  bool   `json:"isExtraDuty,omitempty"`
	StartTime    string `json:"startTime"` // "08:00"
	EndTime      string `json:"endTime"`   // "20:00" (may wrap past midnight)
}

// =============================================================================
// SHIFT SCALE - The recurring rule
// =============================================================================

// PatternType identifies the recurrence pattern of a scale.
type PatternType string

const (
	Pattern12x36  PatternType = "12x36" // work 12h, rest 36h (2-day cycle)
	Pattern24x72  PatternType = "24x72" // work 24h, rest 72h (4-day cycle)
	Pattern6x18   PatternType = "6x18"  // work 6h, rest 18h (every day)
	Pattern24x96  PatternType = "24x96" // work 24h, rest 96h (5-day cycle)
	PatternCustom PatternType = "custom"
)

// CycleLength returns the cycle length in days for fixed patterns.
// Custom patterns return 0; their length is user-defined on the scale.
func (p PatternType) CycleLength() int {
	switch p {
	case Pattern12x36:
		return 2
	case Pattern24x72:
		return 4
	case Pattern6x18:
		return 1
	case Pattern24x96:
		return 5
	default:
		return 0
	}
}

// ScaleCategory classifies what kind of duty a scale represents.
// Labels follow the finance categories the shifts feed into.
type ScaleCategory string

const (
	CategoryExtraDuty    ScaleCategory = "AC-4"
	CategoryDaily        ScaleCategory = "Diário"
	CategorySupplemental ScaleCategory = "Suplementar"
	CategorySwap         ScaleCategory = "Troca"
	CategoryOther        ScaleCategory = "Outros"
)

// ShiftScale is the rule: a recurring pattern (or a one-off duty) anchored at
// StartDate. For fixed patterns the work day is always cycle position 0; for
// custom patterns CycleMap assigns a shift type per cycle position.
type ShiftScale struct {
	ID                 string
	OwnerID            string
	Name               string
	Category           ScaleCategory
	IsOneOff           bool
	PatternType        PatternType
	StartDate          time.Time // cycle day zero, or the single occurrence date
	CycleLength        int       // days; >= 1 for recurring scales
	DefaultShiftTypeID string
	CycleMap           map[int]string // cycle position -> shift type id (custom only)
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ScalePatch carries a merge-patch over a persisted scale. Nil fields are
// left untouched; a non-nil CycleMap replaces the stored map wholesale.
type ScalePatch struct {
	Name               *string
	Category           *ScaleCategory
	IsOneOff           *bool
	PatternType        *PatternType
	StartDate          *time.Time
	CycleLength        *int
	DefaultShiftTypeID *string
	CycleMap           map[int]string
	IsActive           *bool
}

// Apply merges the patch into sc.
func (p ScalePatch) Apply(sc *ShiftScale) {
	if p.Name != nil {
		sc.Name = *p.Name
	}
	if p.Category != nil {
		sc.Category = *p.Category
	}
	if p.IsOneOff != nil {
		sc.IsOneOff = *p.IsOneOff
	}
	if p.PatternType != nil {
		sc.PatternType = *p.PatternType
	}
	if p.StartDate != nil {
		sc.StartDate = *p.StartDate
	}
	if p.CycleLength != nil {
		sc.CycleLength = *p.CycleLength
	}
	if p.DefaultShiftTypeID != nil {
		sc.DefaultShiftTypeID = *p.DefaultShiftTypeID
	}
	if p.CycleMap != nil {
		sc.CycleMap = p.CycleMap
	}
	if p.IsActive != nil {
		sc.IsActive = *p.IsActive
	}
}

// =============================================================================
// SHIFT EVENT - The occurrence
// =============================================================================

// ShiftStatus is the lifecycle state of an occurrence.
type ShiftStatus string

const (
	StatusScheduled ShiftStatus = "scheduled"
	StatusConfirmed ShiftStatus = "confirmed"
	StatusCompleted ShiftStatus = "completed"
	StatusCanceled  ShiftStatus = "canceled"
)

// ShiftEvent is one calendar-dated occurrence, either computed from a rule or
// persisted as a manual override. Generated events carry the deterministic id
// "{date}-{scaleID}"; a persisted override with the same id always wins.
type ShiftEvent struct {
	ID                string
	OwnerID           string
	ScaleID           string
	Date              string // "YYYY-MM-DD", the canonical lookup key
	StartTime         time.Time
	EndTime           time.Time
	ShiftTypeID       string
	ShiftTypeSnapshot ShiftType
	ScaleCategory     ScaleCategory
	IsManualOverride  bool
	Note              string
	Status            ShiftStatus
}

// EventID builds the deterministic occurrence id used as the merge key
// between generated candidates and persisted overrides.
func EventID(dateKey, scaleID string) string {
	return dateKey + "-" + scaleID
}

// =============================================================================
// DATE HELPERS
// =============================================================================

// DateKey formats t as the canonical "YYYY-MM-DD" lookup key. Keys compare
// lexically in calendar order, which the stores rely on for range queries.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the whole-day difference to - from, ignoring clock time.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
