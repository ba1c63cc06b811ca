// Package store provides ScaleStore/ShiftStore implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/plantao/shift-engine/scale"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu     sync.RWMutex
	scales map[string]scale.ShiftScale
	shifts map[string]scale.ShiftEvent
}

func NewMemory() *Memory {
	return &Memory{
		scales: make(map[string]scale.ShiftScale),
		shifts: make(map[string]scale.ShiftEvent),
	}
}

// InsertScale stores a new rule under a generated id.
func (m *Memory) InsertScale(_ context.Context, sc scale.ShiftScale) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sc.ID == "" {
		sc.ID = uuid.NewString()
	}
	m.scales[sc.ID] = sc
	return sc.ID, nil
}

func (m *Memory) GetScale(_ context.Context, id string) (scale.ShiftScale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sc, ok := m.scales[id]
	if !ok {
		return scale.ShiftScale{}, scale.ErrScaleNotFound
	}
	return sc, nil
}

func (m *Memory) UpdateScale(_ context.Context, id string, patch scale.ScalePatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sc, ok := m.scales[id]
	if !ok {
		return scale.ErrScaleNotFound
	}
	patch.Apply(&sc)
	sc.UpdatedAt = time.Now()
	m.scales[id] = sc
	return nil
}

func (m *Memory) DeleteScale(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.scales, id)
	return nil
}

func (m *Memory) ActiveScalesByOwner(_ context.Context, ownerID string) ([]scale.ShiftScale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []scale.ShiftScale
	for _, sc := range m.scales {
		if sc.OwnerID == ownerID && sc.IsActive {
			out = append(out, sc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpsertShiftEvent writes the override keyed by its id.
func (m *Memory) UpsertShiftEvent(_ context.Context, ev scale.ShiftEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.shifts[ev.ID] = ev
	return nil
}

func (m *Memory) GetShiftEvent(_ context.Context, id string) (scale.ShiftEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ev, ok := m.shifts[id]
	if !ok {
		return scale.ShiftEvent{}, scale.ErrShiftNotFound
	}
	return ev, nil
}

func (m *Memory) DeleteShiftEvent(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.shifts, id)
	return nil
}

// ShiftEventsByDateRange filters by the lexical "YYYY-MM-DD" key.
func (m *Memory) ShiftEventsByDateRange(_ context.Context, ownerID, fromKey, toKey string) ([]scale.ShiftEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []scale.ShiftEvent
	for _, ev := range m.shifts {
		if ev.OwnerID == ownerID && ev.Date >= fromKey && ev.Date <= toKey {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
