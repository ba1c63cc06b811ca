package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantao/shift-engine/finance"
	"github.com/plantao/shift-engine/scale"
	"github.com/plantao/shift-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestScaleRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sc := scale.ShiftScale{
		OwnerID:     "owner-1",
		Name:        "Escala Hospital",
		Category:    scale.CategoryExtraDuty,
		PatternType: scale.PatternCustom,
		StartDate:   time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		CycleLength: 4,
		CycleMap:    map[int]string{0: "plantao_noturno_12", 2: "plantao_diurno_10"},
		IsActive:    true,
		CreatedAt:   time.Date(2026, time.January, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, time.January, 1, 10, 0, 0, 0, time.UTC),
	}

	id, err := store.InsertScale(ctx, sc)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := store.GetScale(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, sc.Name, got.Name)
	assert.Equal(t, sc.PatternType, got.PatternType)
	assert.Equal(t, sc.CycleMap, got.CycleMap)
	assert.True(t, got.StartDate.Equal(sc.StartDate))
}

func TestGetScale_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetScale(context.Background(), "missing")
	assert.ErrorIs(t, err, scale.ErrScaleNotFound)
}

func TestUpdateScale_MergePatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.InsertScale(ctx, scale.ShiftScale{
		OwnerID:            "owner-1",
		Name:               "Plantão UPA",
		Category:           scale.CategoryExtraDuty,
		PatternType:        scale.Pattern12x36,
		StartDate:          time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		CycleLength:        2,
		DefaultShiftTypeID: "plantao_diurno_12",
		IsActive:           true,
	})
	require.NoError(t, err)

	inactive := false
	require.NoError(t, store.UpdateScale(ctx, id, scale.ScalePatch{IsActive: &inactive}))

	got, err := store.GetScale(ctx, id)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, "Plantão UPA", got.Name, "unpatched fields stay")

	active, err := store.ActiveScalesByOwner(ctx, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestUpsertShiftEvent_LastWriteWins(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ev := scale.ShiftEvent{
		ID:        "2026-01-03-sc-1",
		OwnerID:   "owner-1",
		ScaleID:   "sc-1",
		Date:      "2026-01-03",
		StartTime: time.Date(2026, time.January, 3, 8, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, time.January, 3, 20, 0, 0, 0, time.UTC),
		Status:    scale.StatusScheduled,
	}
	require.NoError(t, store.UpsertShiftEvent(ctx, ev))

	ev.Status = scale.StatusCanceled
	ev.IsManualOverride = true
	ev.Note = "Troca com colega"
	require.NoError(t, store.UpsertShiftEvent(ctx, ev))

	got, err := store.GetShiftEvent(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, scale.StatusCanceled, got.Status)
	assert.True(t, got.IsManualOverride)
	assert.Equal(t, "Troca com colega", got.Note)

	events, err := store.ShiftEventsByDateRange(ctx, "owner-1", "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	require.Len(t, events, 1, "upsert must not duplicate the row")
}

func TestShiftEventsByDateRange_Bounds(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, date := range []string{"2026-01-01", "2026-01-15", "2026-02-01"} {
		require.NoError(t, store.UpsertShiftEvent(ctx, scale.ShiftEvent{
			ID:        date + "-sc-1",
			OwnerID:   "owner-1",
			ScaleID:   "sc-1",
			Date:      date,
			StartTime: time.Date(2026, time.January, 1, 8, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, time.January, 1, 20, 0, 0, 0, time.UTC),
			Status:    scale.StatusScheduled,
		}))
	}

	events, err := store.ShiftEventsByDateRange(ctx, "owner-1", "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "2026-01-01", events[0].Date)
	assert.Equal(t, "2026-01-15", events[1].Date)
}

func TestTransactionRoundTripAndMonthQuery(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.InsertTransaction(ctx, finance.Transaction{
		OwnerID:        "owner-1",
		Type:           finance.TypeIncome,
		Description:    "Plantão N12 2026-01-09",
		Category:       finance.CategoryExtraDuty,
		Amount:         decimal.RequireFromString("82.76"),
		Date:           "2026-01-09",
		ReferenceMonth: "Março 2026",
		Status:         finance.StatusPending,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	march, err := store.TransactionsByMonth(ctx, "owner-1", "Março 2026")
	require.NoError(t, err)
	require.Len(t, march, 1)
	assert.Equal(t, "82.76", march[0].Amount.StringFixed(2), "amount survives the TEXT column exactly")

	january, err := store.TransactionsByMonth(ctx, "owner-1", "Janeiro 2026")
	require.NoError(t, err)
	assert.Empty(t, january)
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	store := newTestStore(t)

	desc := "x"
	err := store.UpdateTransaction(context.Background(), "missing", finance.TransactionPatch{Description: &desc})
	assert.ErrorIs(t, err, finance.ErrTransactionNotFound)
}

func TestOwnersWithRecurring(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.InsertTransaction(ctx, finance.Transaction{
		OwnerID: "owner-a", Type: finance.TypeExpense, Description: "Aluguel",
		Category: "Aluguel", Amount: decimal.NewFromInt(1500),
		Date: "2026-01-05", ReferenceMonth: "Janeiro 2026",
		Status: finance.StatusPaid, Recurring: true,
	})
	require.NoError(t, err)
	_, err = store.InsertTransaction(ctx, finance.Transaction{
		OwnerID: "owner-b", Type: finance.TypeExpense, Description: "Mercado",
		Category: "Outros", Amount: decimal.NewFromInt(200),
		Date: "2026-01-06", ReferenceMonth: "Janeiro 2026",
		Status: finance.StatusPaid,
	})
	require.NoError(t, err)

	owners, err := store.OwnersWithRecurring(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"owner-a"}, owners)
}

func TestSettings_DefaultsAndUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	got, err := store.GetSettings(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, finance.DefaultSettings(), got, "missing document falls back to defaults")

	custom := finance.Settings{
		IncomeCategories:  []string{"Salário", "AC-4"},
		ExpenseCategories: []string{"Aluguel", "Outros"},
	}
	require.NoError(t, store.SaveSettings(ctx, "owner-1", custom))
	require.NoError(t, store.SaveSettings(ctx, "owner-1", custom)) // upsert, not insert-only

	got, err = store.GetSettings(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, custom, got)
}
