/*
store.go - Persistence interfaces for scales and shift overrides

PURPOSE:
  Defines the boundary between the engine and the database. The engine only
  needs document-store operations: insert, merge-patch update, get by id,
  delete by id, equality queries and a lexical date-range query over the
  "YYYY-MM-DD" date key.

COLLECTIONS:
  scales: ShiftScale rules
  shifts: ShiftEvent override rows (only manually edited/extra occurrences
          are ever persisted; generated occurrences exist in memory only)

ERROR CONTRACT:
  Get/Update on a missing id return ErrScaleNotFound/ErrShiftNotFound;
  deletes are idempotent and succeed on missing ids.
  Transport failures are returned wrapped, never swallowed; a period read
  must error rather than return an empty list, since "no rows" and "store
  down" are different answers.

IMPLEMENTATIONS:
  - store/memory.go:        In-memory, for tests and dev
  - store/sqlite/sqlite.go: Production SQLite
*/
package scale

import "context"

// ScaleStore persists ShiftScale rules.
type ScaleStore interface {
	// InsertScale persists a new rule and returns its generated id.
	InsertScale(ctx context.Context, sc ShiftScale) (string, error)

	// GetScale returns the rule with the given id, or ErrScaleNotFound.
	GetScale(ctx context.Context, id string) (ShiftScale, error)

	// UpdateScale applies a merge-patch to the stored rule and refreshes its
	// UpdatedAt timestamp. Returns ErrScaleNotFound for unknown ids.
	UpdateScale(ctx context.Context, id string, patch ScalePatch) error

	// DeleteScale hard-deletes the rule. Overrides generated under it are
	// left in place and surface as extra occurrences afterwards.
	DeleteScale(ctx context.Context, id string) error

	// ActiveScalesByOwner returns the owner's rules with IsActive=true.
	ActiveScalesByOwner(ctx context.Context, ownerID string) ([]ShiftScale, error)
}

// ShiftStore persists ShiftEvent override rows.
type ShiftStore interface {
	// UpsertShiftEvent writes the override keyed by ev.ID, replacing any
	// previous row with the same id. Idempotent.
	UpsertShiftEvent(ctx context.Context, ev ShiftEvent) error

	// GetShiftEvent returns the override with the given id, or ErrShiftNotFound.
	GetShiftEvent(ctx context.Context, id string) (ShiftEvent, error)

	// DeleteShiftEvent hard-deletes the override row. It does not resurrect
	// a generated occurrence; use a canceled-status upsert for that.
	DeleteShiftEvent(ctx context.Context, id string) error

	// ShiftEventsByDateRange returns the owner's overrides whose date key
	// falls within [fromKey, toKey] (lexical "YYYY-MM-DD" comparison).
	ShiftEventsByDateRange(ctx context.Context, ownerID, fromKey, toKey string) ([]ShiftEvent, error)
}
