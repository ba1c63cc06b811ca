/*
service.go - Occurrence reconciliation and rule lifecycle

PURPOSE:
  The Service produces the authoritative occurrence list for a period by
  merging generator output with persisted per-day overrides, and owns the
  create/update/delete/duplicate operations on rules and on individual
  occurrence overrides.

MERGE SEMANTICS (GetShiftsForPeriod):
  1. Load the owner's active rules.
  2. Expand each rule over the range; candidate ids are "{date}-{scaleID}".
  3. Load persisted overrides for the same date range.
  4. An override with a candidate's id supersedes the candidate and leaves
     the override pool.
  5. Overrides left in the pool (manual extra occurrences, or orphans from a
     deleted rule) are appended to the output.
  The output is a duplicate-free set keyed by id; ordering beyond that is
  not guaranteed.

FAILURE SEMANTICS:
  Store failures propagate wrapped; reads never degrade to an empty list.
  Not-found conditions surface as the scale/shift sentinel errors.

CONCURRENCY:
  The Service holds no mutable state beyond its injected collaborators.
  Concurrent period reads are independent and idempotent; concurrent
  override writes for the same id race at the store with last-write-wins.
*/
package scale

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Service reconciles generated occurrences with persisted overrides and
// manages rule and override lifecycle.
type Service struct {
	Scales  ScaleStore
	Shifts  ShiftStore
	Catalog *Catalog

	// Now is injectable for deterministic tests; defaults to time.Now.
	Now func() time.Time
}

// NewService wires a Service with the given stores and catalog.
func NewService(scales ScaleStore, shifts ShiftStore, catalog *Catalog) *Service {
	return &Service{Scales: scales, Shifts: shifts, Catalog: catalog, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// =============================================================================
// PERIOD RECONCILIATION
// =============================================================================

// GetShiftsForPeriod returns the consolidated occurrences (generated +
// overrides) for the owner within [start, end].
func (s *Service) GetShiftsForPeriod(ctx context.Context, ownerID string, start, end time.Time) ([]ShiftEvent, error) {
	scales, err := s.Scales.ActiveScalesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("loading scales: %w", err)
	}

	now := s.now()
	var generated []ShiftEvent
	for _, sc := range scales {
		generated = append(generated, GenerateShifts(sc, start, end, s.Catalog, now)...)
	}

	overrides, err := s.Shifts.ShiftEventsByDateRange(ctx, ownerID, DateKey(start), DateKey(end))
	if err != nil {
		return nil, fmt.Errorf("loading shift overrides: %w", err)
	}

	pool := make(map[string]ShiftEvent, len(overrides))
	for _, ov := range overrides {
		pool[ov.ID] = ov
	}

	merged := make([]ShiftEvent, 0, len(generated)+len(overrides))
	for _, gen := range generated {
		// Re-derive the id so the join key is stable even if a candidate was
		// built elsewhere with a stale id.
		gen.ID = EventID(gen.Date, gen.ScaleID)

		if ov, ok := pool[gen.ID]; ok {
			merged = append(merged, ov)
			delete(pool, gen.ID)
		} else {
			merged = append(merged, gen)
		}
	}

	// Leftovers: manual extra occurrences with no generated counterpart.
	extras := make([]ShiftEvent, 0, len(pool))
	for _, ov := range pool {
		extras = append(extras, ov)
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i].ID < extras[j].ID })
	merged = append(merged, extras...)

	return merged, nil
}

// =============================================================================
// RULE LIFECYCLE
// =============================================================================

// CreateScale validates and persists a new rule, returning it with the
// store-assigned id and fresh timestamps.
func (s *Service) CreateScale(ctx context.Context, sc ShiftScale) (ShiftScale, error) {
	if !sc.IsOneOff {
		if sc.CycleLength == 0 {
			sc.CycleLength = sc.PatternType.CycleLength()
		}
		if sc.CycleLength < 1 {
			return ShiftScale{}, fmt.Errorf("%w: cycle length must be >= 1", ErrInvalidScale)
		}
	}

	now := s.now()
	sc.StartDate = StartOfDay(sc.StartDate)
	sc.CreatedAt = now
	sc.UpdatedAt = now

	id, err := s.Scales.InsertScale(ctx, sc)
	if err != nil {
		return ShiftScale{}, fmt.Errorf("creating scale: %w", err)
	}
	sc.ID = id
	return sc, nil
}

// UpdateScale applies a merge-patch to the stored rule.
func (s *Service) UpdateScale(ctx context.Context, id string, patch ScalePatch) error {
	return s.Scales.UpdateScale(ctx, id, patch)
}

// DeleteScale hard-deletes the rule. Occurrences previously generated from it
// stop being generated; overrides tied to it remain and surface as extra
// occurrences. That detachment is a documented tradeoff, not repaired here.
func (s *Service) DeleteScale(ctx context.Context, id string) error {
	return s.Scales.DeleteScale(ctx, id)
}

// DuplicateScale copies an existing rule onto a new start date. The copy gets
// a " (Cópia)" name suffix, fresh timestamps, IsActive=true and a new id.
func (s *Service) DuplicateScale(ctx context.Context, id string, newStartDate time.Time) (ShiftScale, error) {
	original, err := s.Scales.GetScale(ctx, id)
	if err != nil {
		return ShiftScale{}, err
	}

	now := s.now()
	dup := original
	dup.ID = ""
	dup.Name = original.Name + " (Cópia)"
	dup.StartDate = StartOfDay(newStartDate)
	dup.IsActive = true
	dup.CreatedAt = now
	dup.UpdatedAt = now
	if original.CycleMap != nil {
		dup.CycleMap = make(map[int]string, len(original.CycleMap))
		for k, v := range original.CycleMap {
			dup.CycleMap[k] = v
		}
	}

	newID, err := s.Scales.InsertScale(ctx, dup)
	if err != nil {
		return ShiftScale{}, fmt.Errorf("duplicating scale: %w", err)
	}
	dup.ID = newID
	return dup, nil
}

// =============================================================================
// OVERRIDE LIFECYCLE
// =============================================================================

// SaveShiftEvent upserts an occurrence override. Events without an explicit
// id fall back to the deterministic "{date}-{scaleID}" key so edits to a
// generated occurrence overwrite rather than duplicate.
func (s *Service) SaveShiftEvent(ctx context.Context, ev ShiftEvent) (ShiftEvent, error) {
	if ev.ID == "" {
		ev.ID = EventID(ev.Date, ev.ScaleID)
	}
	if err := s.Shifts.UpsertShiftEvent(ctx, ev); err != nil {
		return ShiftEvent{}, fmt.Errorf("saving shift event: %w", err)
	}
	return ev, nil
}

// CancelShiftEvent is the documented soft delete: it persists the occurrence
// with canceled status so the merge keeps suppressing the generated version.
func (s *Service) CancelShiftEvent(ctx context.Context, ev ShiftEvent) (ShiftEvent, error) {
	ev.Status = StatusCanceled
	ev.IsManualOverride = true
	return s.SaveShiftEvent(ctx, ev)
}

// DeleteShiftEvent hard-deletes the override row only. A generated occurrence
// with the same id reappears on the next period read; callers wanting "remove
// this day" should use CancelShiftEvent instead.
func (s *Service) DeleteShiftEvent(ctx context.Context, id string) error {
	return s.Shifts.DeleteShiftEvent(ctx, id)
}
