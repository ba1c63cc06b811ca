/*
generator.go - Expands a scale rule into concrete calendar occurrences

PURPOSE:
  Pure expansion of a ShiftScale over a date range. No I/O, no mutation of
  inputs, deterministic for identical arguments, safe to call repeatedly for
  any range. The reconciler (service.go) layers persisted overrides on top
  of this output; the generator itself knows nothing about storage.

CYCLE ALIGNMENT:
  The cycle is anchored at the scale's StartDate (day zero). For a day D in
  the range, the cycle position is daysBetween(start, D) mod cycleLength.
  Fixed patterns work only at position 0 ("works day 0, rests the rest");
  custom patterns map each position to a shift type id explicitly.

EDGE BEHAVIOR:
  - Range entirely before the scale start: empty output.
  - Shift type id missing from the catalog: that day is skipped silently.
  - cycleLength < 1 on a recurring scale: empty output (malformed rule).
*/
package scale

import "time"

// GenerateShifts expands sc into the theoretical occurrences falling inside
// [rangeStart, rangeEnd]. now is used only to classify occurrences as
// completed (start before today) or scheduled.
func GenerateShifts(sc ShiftScale, rangeStart, rangeEnd time.Time, catalog *Catalog, now time.Time) []ShiftEvent {
	today := StartOfDay(now)

	startOfRange := StartOfDay(rangeStart)
	endOfRange := StartOfDay(rangeEnd)
	startOfScale := StartOfDay(sc.StartDate)

	if endOfRange.Before(startOfScale) {
		return nil
	}

	if sc.IsOneOff {
		return generateOneOff(sc, rangeStart, rangeEnd, catalog, today)
	}

	if sc.CycleLength < 1 {
		return nil
	}

	iter := startOfRange
	if iter.Before(startOfScale) {
		iter = startOfScale
	}

	var shifts []ShiftEvent
	for !iter.After(endOfRange) {
		// Iteration never starts before the scale start, so the position is
		// always non-negative.
		position := DaysBetween(startOfScale, iter) % sc.CycleLength

		var shiftTypeID string
		switch sc.PatternType {
		case Pattern12x36, Pattern24x72, Pattern6x18, Pattern24x96:
			if position == 0 {
				shiftTypeID = sc.DefaultShiftTypeID
			}
		case PatternCustom:
			shiftTypeID = sc.CycleMap[position]
		}

		if shiftTypeID != "" {
			if st, ok := catalog.Lookup(shiftTypeID); ok {
				shifts = append(shifts, buildEvent(sc, iter, st, today))
			}
		}

		iter = iter.AddDate(0, 0, 1)
	}

	return shifts
}

// generateOneOff emits the single occurrence of a one-off scale when its
// stored date lies within [rangeStart, rangeEnd]. The date-key comparison
// tolerates time-of-day noise in the range bounds.
func generateOneOff(sc ShiftScale, rangeStart, rangeEnd time.Time, catalog *Catalog, today time.Time) []ShiftEvent {
	day := sc.StartDate

	inRange := !day.Before(rangeStart) && !day.After(rangeEnd)
	if !inRange && DateKey(day) != DateKey(rangeStart) {
		return nil
	}

	st, ok := catalog.Lookup(sc.DefaultShiftTypeID)
	if !ok {
		return nil
	}

	return []ShiftEvent{buildEvent(sc, StartOfDay(day), st, today)}
}

// buildEvent assembles one occurrence on the given calendar day, snapshotting
// the shift type so later catalog changes never rewrite history.
func buildEvent(sc ShiftScale, day time.Time, st ShiftType, today time.Time) ShiftEvent {
	start := shiftStart(day, st)
	end := start.Add(time.Duration(st.Hours) * time.Hour) // may cross midnight

	status := StatusScheduled
	if start.Before(today) {
		status = StatusCompleted
	}

	dateKey := DateKey(day)
	return ShiftEvent{
		ID:                EventID(dateKey, sc.ID),
		OwnerID:           sc.OwnerID,
		ScaleID:           sc.ID,
		Date:              dateKey,
		StartTime:         start,
		EndTime:           end,
		ShiftTypeID:       st.ID,
		ShiftTypeSnapshot: st,
		ScaleCategory:     sc.Category,
		IsManualOverride:  false,
		Status:            status,
	}
}
