package scale_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantao/shift-engine/scale"
	"github.com/plantao/shift-engine/scale/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestService(now time.Time) (*scale.Service, *store.Memory) {
	mem := store.NewMemory()
	svc := scale.NewService(mem, mem, scale.DefaultCatalog())
	svc.Now = func() time.Time { return now }
	return svc, mem
}

// =============================================================================
// RECONCILIATION TESTS
// =============================================================================

func TestGetShiftsForPeriod_OverrideWinsByID(t *testing.T) {
	// GIVEN: A 12x36 scale and a canceled override for one generated day
	// WHEN: Reading the period
	// THEN: The override replaces the generated occurrence; no duplicate id

	now := day(2026, time.January, 1)
	svc, _ := newTestService(now)
	ctx := context.Background()

	created, err := svc.CreateScale(ctx, fixedScale12x36(""))
	require.NoError(t, err)

	_, err = svc.SaveShiftEvent(ctx, scale.ShiftEvent{
		OwnerID:          "owner-1",
		ScaleID:          created.ID,
		Date:             "2026-01-03",
		StartTime:        day(2026, time.January, 3).Add(8 * time.Hour),
		EndTime:          day(2026, time.January, 3).Add(20 * time.Hour),
		Status:           scale.StatusCanceled,
		IsManualOverride: true,
	})
	require.NoError(t, err)

	events, err := svc.GetShiftsForPeriod(ctx, "owner-1",
		day(2026, time.January, 1), day(2026, time.January, 10))
	require.NoError(t, err)

	seen := make(map[string]scale.ShiftEvent)
	for _, ev := range events {
		_, dup := seen[ev.ID]
		require.False(t, dup, "duplicate id %s", ev.ID)
		seen[ev.ID] = ev
	}

	jan3 := seen["2026-01-03-"+created.ID]
	assert.Equal(t, scale.StatusCanceled, jan3.Status)
	assert.True(t, jan3.IsManualOverride)

	jan5 := seen["2026-01-05-"+created.ID]
	assert.False(t, jan5.IsManualOverride, "untouched days stay generated")
}

func TestGetShiftsForPeriod_ExtraOccurrenceSurfaces(t *testing.T) {
	// GIVEN: A manual occurrence with no scale behind it
	// WHEN: Reading the period
	// THEN: It is appended to the generated set

	now := day(2026, time.January, 1)
	svc, _ := newTestService(now)
	ctx := context.Background()

	saved, err := svc.SaveShiftEvent(ctx, scale.ShiftEvent{
		ID:               "manual-1",
		OwnerID:          "owner-1",
		Date:             "2026-01-20",
		StartTime:        day(2026, time.January, 20).Add(8 * time.Hour),
		EndTime:          day(2026, time.January, 20).Add(18 * time.Hour),
		Status:           scale.StatusScheduled,
		IsManualOverride: true,
	})
	require.NoError(t, err)

	events, err := svc.GetShiftsForPeriod(ctx, "owner-1",
		day(2026, time.January, 1), day(2026, time.January, 31))
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, saved.ID, events[0].ID)
}

func TestGetShiftsForPeriod_OrphanOverridesSurviveScaleDeletion(t *testing.T) {
	// GIVEN: An override for a generated day, then the scale is deleted
	// WHEN: Reading the period
	// THEN: Generation stops but the override still surfaces as an extra

	now := day(2026, time.January, 1)
	svc, _ := newTestService(now)
	ctx := context.Background()

	created, err := svc.CreateScale(ctx, fixedScale12x36(""))
	require.NoError(t, err)

	_, err = svc.SaveShiftEvent(ctx, scale.ShiftEvent{
		OwnerID:          "owner-1",
		ScaleID:          created.ID,
		Date:             "2026-01-05",
		StartTime:        day(2026, time.January, 5).Add(8 * time.Hour),
		EndTime:          day(2026, time.January, 5).Add(20 * time.Hour),
		Status:           scale.StatusConfirmed,
		IsManualOverride: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteScale(ctx, created.ID))

	events, err := svc.GetShiftsForPeriod(ctx, "owner-1",
		day(2026, time.January, 1), day(2026, time.January, 10))
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "2026-01-05-"+created.ID, events[0].ID)
	assert.Equal(t, scale.StatusConfirmed, events[0].Status)
}

func TestGetShiftsForPeriod_StoreFailurePropagates(t *testing.T) {
	// GIVEN: A store that fails on every call
	// WHEN: Reading the period
	// THEN: The error propagates; the read never degrades to an empty list

	svc := scale.NewService(failingStore{}, failingStore{}, scale.DefaultCatalog())

	events, err := svc.GetShiftsForPeriod(context.Background(), "owner-1",
		day(2026, time.January, 1), day(2026, time.January, 31))

	require.Error(t, err)
	assert.Nil(t, events)
	assert.Contains(t, err.Error(), "loading scales")
}

// =============================================================================
// RULE LIFECYCLE TESTS
// =============================================================================

func TestCreateScale_DefaultsCycleLengthFromPattern(t *testing.T) {
	now := day(2026, time.January, 1)
	svc, _ := newTestService(now)

	sc := fixedScale12x36("")
	sc.CycleLength = 0

	created, err := svc.CreateScale(context.Background(), sc)
	require.NoError(t, err)
	assert.Equal(t, 2, created.CycleLength)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, now, created.CreatedAt)
}

func TestCreateScale_RejectsCustomWithoutCycleLength(t *testing.T) {
	now := day(2026, time.January, 1)
	svc, _ := newTestService(now)

	sc := scale.ShiftScale{
		OwnerID:     "owner-1",
		Name:        "Escala inválida",
		PatternType: scale.PatternCustom,
		StartDate:   now,
		CycleMap:    map[int]string{0: "plantao_diurno_12"},
		IsActive:    true,
	}

	_, err := svc.CreateScale(context.Background(), sc)
	require.Error(t, err)
	assert.True(t, scale.IsInvalid(err))
}

func TestDuplicateScale_CopiesWithSuffixAndNewStart(t *testing.T) {
	// GIVEN: A custom scale with a cycle map
	// WHEN: Duplicating it onto a new start date
	// THEN: The copy is active, renamed with " (Cópia)" and has its own map

	now := day(2026, time.January, 1)
	svc, _ := newTestService(now)
	ctx := context.Background()

	original, err := svc.CreateScale(ctx, scale.ShiftScale{
		OwnerID:     "owner-1",
		Name:        "Escala Hospital",
		PatternType: scale.PatternCustom,
		StartDate:   day(2026, time.January, 1),
		CycleLength: 4,
		CycleMap:    map[int]string{0: "plantao_noturno_12"},
		IsActive:    false,
	})
	require.NoError(t, err)

	dup, err := svc.DuplicateScale(ctx, original.ID, day(2026, time.March, 1))
	require.NoError(t, err)

	assert.Equal(t, "Escala Hospital (Cópia)", dup.Name)
	assert.Equal(t, day(2026, time.March, 1), dup.StartDate)
	assert.True(t, dup.IsActive)
	assert.NotEqual(t, original.ID, dup.ID)

	// The copy owns its cycle map
	dup.CycleMap[0] = "plantao_diurno_12"
	reloaded, err := svc.Scales.GetScale(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, "plantao_noturno_12", reloaded.CycleMap[0])
}

func TestDuplicateScale_UnknownID(t *testing.T) {
	now := day(2026, time.January, 1)
	svc, _ := newTestService(now)

	_, err := svc.DuplicateScale(context.Background(), "missing", now)
	require.Error(t, err)
	assert.True(t, scale.IsNotFound(err))
}

func TestUpdateScale_MergePatchLeavesOtherFields(t *testing.T) {
	now := day(2026, time.January, 1)
	svc, _ := newTestService(now)
	ctx := context.Background()

	created, err := svc.CreateScale(ctx, fixedScale12x36(""))
	require.NoError(t, err)

	name := "Plantão CER"
	require.NoError(t, svc.UpdateScale(ctx, created.ID, scale.ScalePatch{Name: &name}))

	reloaded, err := svc.Scales.GetScale(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plantão CER", reloaded.Name)
	assert.Equal(t, created.PatternType, reloaded.PatternType)
	assert.Equal(t, created.CycleLength, reloaded.CycleLength)
}

// =============================================================================
// OVERRIDE LIFECYCLE TESTS
// =============================================================================

func TestSaveShiftEvent_FallsBackToDeterministicID(t *testing.T) {
	now := day(2026, time.January, 1)
	svc, _ := newTestService(now)

	saved, err := svc.SaveShiftEvent(context.Background(), scale.ShiftEvent{
		OwnerID: "owner-1",
		ScaleID: "sc-9",
		Date:    "2026-01-03",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-01-03-sc-9", saved.ID)
}

func TestCancelShiftEvent_PersistsCanceledOverride(t *testing.T) {
	// GIVEN: A generated occurrence passed back by a client
	// WHEN: Cancelling it
	// THEN: It is stored canceled and flagged as a manual override, and the
	//       period read keeps suppressing the generated version

	now := day(2026, time.January, 1)
	svc, mem := newTestService(now)
	ctx := context.Background()

	created, err := svc.CreateScale(ctx, fixedScale12x36(""))
	require.NoError(t, err)

	canceled, err := svc.CancelShiftEvent(ctx, scale.ShiftEvent{
		OwnerID: "owner-1",
		ScaleID: created.ID,
		Date:    "2026-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, scale.StatusCanceled, canceled.Status)
	assert.True(t, canceled.IsManualOverride)

	stored, err := mem.GetShiftEvent(ctx, canceled.ID)
	require.NoError(t, err)
	assert.Equal(t, scale.StatusCanceled, stored.Status)

	events, err := svc.GetShiftsForPeriod(ctx, "owner-1",
		day(2026, time.January, 1), day(2026, time.January, 2))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, scale.StatusCanceled, events[0].Status)
}

func TestDeleteShiftEvent_GeneratedOccurrenceReappears(t *testing.T) {
	// GIVEN: A canceled override for a generated day
	// WHEN: Hard-deleting the override row
	// THEN: The generated occurrence comes back on the next read

	now := day(2026, time.January, 1)
	svc, _ := newTestService(now)
	ctx := context.Background()

	created, err := svc.CreateScale(ctx, fixedScale12x36(""))
	require.NoError(t, err)

	canceled, err := svc.CancelShiftEvent(ctx, scale.ShiftEvent{
		OwnerID: "owner-1",
		ScaleID: created.ID,
		Date:    "2026-01-01",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteShiftEvent(ctx, canceled.ID))

	events, err := svc.GetShiftsForPeriod(ctx, "owner-1",
		day(2026, time.January, 1), day(2026, time.January, 2))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, scale.StatusScheduled, events[0].Status)
	assert.False(t, events[0].IsManualOverride)
}

// =============================================================================
// FAILING STORE STUB
// =============================================================================

var errStoreDown = errors.New("store unavailable")

type failingStore struct{}

func (failingStore) InsertScale(context.Context, scale.ShiftScale) (string, error) {
	return "", errStoreDown
}

func (failingStore) GetScale(context.Context, string) (scale.ShiftScale, error) {
	return scale.ShiftScale{}, errStoreDown
}

func (failingStore) UpdateScale(context.Context, string, scale.ScalePatch) error {
	return errStoreDown
}

func (failingStore) DeleteScale(context.Context, string) error {
	return errStoreDown
}

func (failingStore) ActiveScalesByOwner(context.Context, string) ([]scale.ShiftScale, error) {
	return nil, errStoreDown
}

func (failingStore) UpsertShiftEvent(context.Context, scale.ShiftEvent) error {
	return errStoreDown
}

func (failingStore) GetShiftEvent(context.Context, string) (scale.ShiftEvent, error) {
	return scale.ShiftEvent{}, errStoreDown
}

func (failingStore) DeleteShiftEvent(context.Context, string) error {
	return errStoreDown
}

func (failingStore) ShiftEventsByDateRange(context.Context, string, string, string) ([]scale.ShiftEvent, error) {
	return nil, errStoreDown
}
