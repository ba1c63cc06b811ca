/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements scale.ScaleStore, scale.ShiftStore, finance.TransactionStore and
  finance.SettingsStore on a single SQLite database. The same patterns apply
  to PostgreSQL with minor dialect changes.

KEY TABLES:
  scales:        ShiftScale rules
  shifts:        ShiftEvent override rows (generated occurrences are never
                 stored; only manual edits/extras land here)
  transactions:  Income/expense entries
  user_settings: One category-lists document per owner

DATE STORAGE:
  Instants are RFC3339 strings; calendar dates are "YYYY-MM-DD" strings,
  which sort lexically in calendar order and make the shift date-range
  query a plain BETWEEN over the key.

ERROR MAPPING:
  Missing rows map to the domain sentinels (scale.ErrScaleNotFound,
  scale.ErrShiftNotFound, finance.ErrTransactionNotFound) so callers can
  tell "not found" from transport failure. All other errors are wrapped.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of WAL mode. Concurrent
  override upserts for the same id resolve last-write-wins; there is no
  optimistic-concurrency token in this design.

USAGE:
  store, err := sqlite.New("./data/plantao.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - scale/store.go:   Interface definitions for the shift engine
  - finance/store.go: Interface definitions for the finance side
  - scale/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/plantao/shift-engine/finance"
	"github.com/plantao/shift-engine/scale"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Scale rules
	CREATE TABLE IF NOT EXISTS scales (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		is_one_off BOOLEAN NOT NULL DEFAULT FALSE,
		pattern_type TEXT NOT NULL,
		start_date TEXT NOT NULL,
		cycle_length INTEGER NOT NULL DEFAULT 0,
		default_shift_type_id TEXT,
		cycle_map_json TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scales_owner_active
		ON scales(owner_id, is_active);

	-- Shift event overrides (merge key: deterministic "{date}-{scaleId}" id)
	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		scale_id TEXT,
		date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		shift_type_id TEXT,
		shift_type_json TEXT,
		scale_category TEXT,
		is_manual_override BOOLEAN NOT NULL DEFAULT FALSE,
		note TEXT,
		status TEXT NOT NULL
	);

	-- Hot path: period fetch by owner over the lexical date key
	CREATE INDEX IF NOT EXISTS idx_shifts_owner_date
		ON shifts(owner_id, date);

	-- Transactions
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		tx_type TEXT NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL,
		amount TEXT NOT NULL,
		date TEXT NOT NULL,
		reference_month TEXT NOT NULL,
		status TEXT NOT NULL,
		recurring BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_owner_month
		ON transactions(owner_id, reference_month);
	CREATE INDEX IF NOT EXISTS idx_transactions_recurring
		ON transactions(recurring) WHERE recurring = TRUE;

	-- User settings (one document per owner)
	CREATE TABLE IF NOT EXISTS user_settings (
		owner_id TEXT PRIMARY KEY,
		income_categories_json TEXT NOT NULL,
		expense_categories_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SCALE STORE (scale.ScaleStore interface)
// =============================================================================

// InsertScale persists a new rule and returns its generated id.
func (s *Store) InsertScale(ctx context.Context, sc scale.ShiftScale) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sc.ID == "" {
		sc.ID = uuid.NewString()
	}

	cycleMapJSON, err := marshalCycleMap(sc.CycleMap)
	if err != nil {
		return "", fmt.Errorf("failed to encode cycle map: %w", err)
	}

	query := `
		INSERT INTO scales
		(id, owner_id, name, category, is_one_off, pattern_type, start_date,
		 cycle_length, default_shift_type_id, cycle_map_json, is_active,
		 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		sc.ID,
		sc.OwnerID,
		sc.Name,
		string(sc.Category),
		sc.IsOneOff,
		string(sc.PatternType),
		sc.StartDate.Format(time.RFC3339),
		sc.CycleLength,
		sc.DefaultShiftTypeID,
		cycleMapJSON,
		sc.IsActive,
		sc.CreatedAt.UTC().Format(time.RFC3339),
		sc.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert scale: %w", err)
	}

	return sc.ID, nil
}

// GetScale returns the rule with the given id.
func (s *Store) GetScale(ctx context.Context, id string) (scale.ShiftScale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getScale(ctx, id)
}

func (s *Store) getScale(ctx context.Context, id string) (scale.ShiftScale, error) {
	query := `
		SELECT id, owner_id, name, category, is_one_off, pattern_type, start_date,
		       cycle_length, default_shift_type_id, cycle_map_json, is_active,
		       created_at, updated_at
		FROM scales WHERE id = ?
	`

	sc, err := scanScale(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return scale.ShiftScale{}, scale.ErrScaleNotFound
	}
	if err != nil {
		return scale.ShiftScale{}, fmt.Errorf("failed to get scale: %w", err)
	}
	return sc, nil
}

// UpdateScale applies a merge-patch to the stored rule.
func (s *Store) UpdateScale(ctx context.Context, id string, patch scale.ScalePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, err := s.getScale(ctx, id)
	if err != nil {
		return err
	}
	patch.Apply(&sc)

	cycleMapJSON, err := marshalCycleMap(sc.CycleMap)
	if err != nil {
		return fmt.Errorf("failed to encode cycle map: %w", err)
	}

	query := `
		UPDATE scales SET
			name = ?, category = ?, is_one_off = ?, pattern_type = ?,
			start_date = ?, cycle_length = ?, default_shift_type_id = ?,
			cycle_map_json = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`

	_, err = s.db.ExecContext(ctx, query,
		sc.Name,
		string(sc.Category),
		sc.IsOneOff,
		string(sc.PatternType),
		sc.StartDate.Format(time.RFC3339),
		sc.CycleLength,
		sc.DefaultShiftTypeID,
		cycleMapJSON,
		sc.IsActive,
		time.Now().UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update scale: %w", err)
	}
	return nil
}

// DeleteScale hard-deletes the rule.
func (s *Store) DeleteScale(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM scales WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete scale: %w", err)
	}
	return nil
}

// ActiveScalesByOwner returns the owner's active rules.
func (s *Store) ActiveScalesByOwner(ctx context.Context, ownerID string) ([]scale.ShiftScale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, owner_id, name, category, is_one_off, pattern_type, start_date,
		       cycle_length, default_shift_type_id, cycle_map_json, is_active,
		       created_at, updated_at
		FROM scales
		WHERE owner_id = ? AND is_active = TRUE
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scales: %w", err)
	}
	defer rows.Close()

	var scales []scale.ShiftScale
	for rows.Next() {
		sc, err := scanScale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scale: %w", err)
		}
		scales = append(scales, sc)
	}
	return scales, rows.Err()
}

// rowScanner lets scan helpers accept both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanScale(row rowScanner) (scale.ShiftScale, error) {
	var (
		sc                 scale.ShiftScale
		category           string
		patternType        string
		startDate          string
		defaultShiftTypeID sql.NullString
		cycleMapJSON       sql.NullString
		createdAt          string
		updatedAt          string
	)

	err := row.Scan(
		&sc.ID, &sc.OwnerID, &sc.Name, &category, &sc.IsOneOff, &patternType,
		&startDate, &sc.CycleLength, &defaultShiftTypeID, &cycleMapJSON,
		&sc.IsActive, &createdAt, &updatedAt,
	)
	if err != nil {
		return sc, err
	}

	sc.Category = scale.ScaleCategory(category)
	sc.PatternType = scale.PatternType(patternType)
	sc.StartDate, _ = time.Parse(time.RFC3339, startDate)
	sc.DefaultShiftTypeID = defaultShiftTypeID.String
	sc.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	sc.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	if cycleMapJSON.Valid && cycleMapJSON.String != "" {
		if err := json.Unmarshal([]byte(cycleMapJSON.String), &sc.CycleMap); err != nil {
			return sc, fmt.Errorf("failed to decode cycle map: %w", err)
		}
	}

	return sc, nil
}

func marshalCycleMap(m map[int]string) (sql.NullString, error) {
	if len(m) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// =============================================================================
// SHIFT STORE (scale.ShiftStore interface)
// =============================================================================

// UpsertShiftEvent writes the override keyed by ev.ID.
func (s *Store) UpsertShiftEvent(ctx context.Context, ev scale.ShiftEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshotJSON, err := json.Marshal(ev.ShiftTypeSnapshot)
	if err != nil {
		return fmt.Errorf("failed to encode shift type snapshot: %w", err)
	}

	query := `
		INSERT INTO shifts
		(id, owner_id, scale_id, date, start_time, end_time, shift_type_id,
		 shift_type_json, scale_category, is_manual_override, note, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			scale_id = excluded.scale_id,
			date = excluded.date,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			shift_type_id = excluded.shift_type_id,
			shift_type_json = excluded.shift_type_json,
			scale_category = excluded.scale_category,
			is_manual_override = excluded.is_manual_override,
			note = excluded.note,
			status = excluded.status
	`

	_, err = s.db.ExecContext(ctx, query,
		ev.ID,
		ev.OwnerID,
		ev.ScaleID,
		ev.Date,
		ev.StartTime.Format(time.RFC3339),
		ev.EndTime.Format(time.RFC3339),
		ev.ShiftTypeID,
		string(snapshotJSON),
		string(ev.ScaleCategory),
		ev.IsManualOverride,
		nullString(ev.Note),
		string(ev.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert shift event: %w", err)
	}
	return nil
}

// GetShiftEvent returns the override with the given id.
func (s *Store) GetShiftEvent(ctx context.Context, id string) (scale.ShiftEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, owner_id, scale_id, date, start_time, end_time, shift_type_id,
		       shift_type_json, scale_category, is_manual_override, note, status
		FROM shifts WHERE id = ?
	`

	ev, err := scanShiftEvent(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return scale.ShiftEvent{}, scale.ErrShiftNotFound
	}
	if err != nil {
		return scale.ShiftEvent{}, fmt.Errorf("failed to get shift event: %w", err)
	}
	return ev, nil
}

// DeleteShiftEvent hard-deletes the override row.
func (s *Store) DeleteShiftEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM shifts WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete shift event: %w", err)
	}
	return nil
}

// ShiftEventsByDateRange returns the owner's overrides in [fromKey, toKey].
// The date key sorts lexically in calendar order, so a plain BETWEEN works.
func (s *Store) ShiftEventsByDateRange(ctx context.Context, ownerID, fromKey, toKey string) ([]scale.ShiftEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, owner_id, scale_id, date, start_time, end_time, shift_type_id,
		       shift_type_json, scale_category, is_manual_override, note, status
		FROM shifts
		WHERE owner_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID, fromKey, toKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift events: %w", err)
	}
	defer rows.Close()

	var events []scale.ShiftEvent
	for rows.Next() {
		ev, err := scanShiftEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func scanShiftEvent(row rowScanner) (scale.ShiftEvent, error) {
	var (
		ev            scale.ShiftEvent
		scaleID       sql.NullString
		startTime     string
		endTime       string
		shiftTypeID   sql.NullString
		snapshotJSON  sql.NullString
		scaleCategory sql.NullString
		note          sql.NullString
		status        string
	)

	err := row.Scan(
		&ev.ID, &ev.OwnerID, &scaleID, &ev.Date, &startTime, &endTime,
		&shiftTypeID, &snapshotJSON, &scaleCategory, &ev.IsManualOverride,
		&note, &status,
	)
	if err != nil {
		return ev, err
	}

	ev.ScaleID = scaleID.String
	ev.StartTime, _ = time.Parse(time.RFC3339, startTime)
	ev.EndTime, _ = time.Parse(time.RFC3339, endTime)
	ev.ShiftTypeID = shiftTypeID.String
	ev.ScaleCategory = scale.ScaleCategory(scaleCategory.String)
	ev.Note = note.String
	ev.Status = scale.ShiftStatus(status)

	if snapshotJSON.Valid && snapshotJSON.String != "" {
		if err := json.Unmarshal([]byte(snapshotJSON.String), &ev.ShiftTypeSnapshot); err != nil {
			return ev, fmt.Errorf("failed to decode shift type snapshot: %w", err)
		}
	}

	return ev, nil
}

// =============================================================================
// TRANSACTION STORE (finance.TransactionStore interface)
// =============================================================================

// InsertTransaction persists a new transaction and returns its id.
func (s *Store) InsertTransaction(ctx context.Context, tx finance.Transaction) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO transactions
		(id, owner_id, tx_type, description, category, amount, date,
		 reference_month, status, recurring, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		tx.ID,
		tx.OwnerID,
		string(tx.Type),
		tx.Description,
		tx.Category,
		tx.Amount.String(),
		tx.Date,
		tx.ReferenceMonth,
		string(tx.Status),
		tx.Recurring,
		tx.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert transaction: %w", err)
	}
	return tx.ID, nil
}

// UpdateTransaction applies a merge-patch to the stored transaction.
func (s *Store) UpdateTransaction(ctx context.Context, id string, patch finance.TransactionPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.getTransaction(ctx, id)
	if err != nil {
		return err
	}
	patch.Apply(&tx)

	query := `
		UPDATE transactions SET
			tx_type = ?, description = ?, category = ?, amount = ?, date = ?,
			reference_month = ?, status = ?, recurring = ?
		WHERE id = ?
	`

	_, err = s.db.ExecContext(ctx, query,
		string(tx.Type),
		tx.Description,
		tx.Category,
		tx.Amount.String(),
		tx.Date,
		tx.ReferenceMonth,
		string(tx.Status),
		tx.Recurring,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

// DeleteTransaction hard-deletes the transaction.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// TransactionsByOwner returns all of an owner's transactions.
func (s *Store) TransactionsByOwner(ctx context.Context, ownerID string) ([]finance.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, owner_id, tx_type, description, category, amount, date,
		       reference_month, status, recurring, created_at
		FROM transactions
		WHERE owner_id = ?
		ORDER BY date ASC, created_at ASC
	`

	return s.queryTransactions(ctx, query, ownerID)
}

// TransactionsByMonth returns the owner's transactions for a reference month.
func (s *Store) TransactionsByMonth(ctx context.Context, ownerID, month string) ([]finance.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, owner_id, tx_type, description, category, amount, date,
		       reference_month, status, recurring, created_at
		FROM transactions
		WHERE owner_id = ? AND reference_month = ?
		ORDER BY date ASC, created_at ASC
	`

	return s.queryTransactions(ctx, query, ownerID, month)
}

// OwnersWithRecurring lists owners that have recurring transactions.
func (s *Store) OwnersWithRecurring(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT owner_id FROM transactions WHERE recurring = TRUE ORDER BY owner_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring owners: %w", err)
	}
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var owner string
		if err := rows.Scan(&owner); err != nil {
			return nil, err
		}
		owners = append(owners, owner)
	}
	return owners, rows.Err()
}

func (s *Store) getTransaction(ctx context.Context, id string) (finance.Transaction, error) {
	query := `
		SELECT id, owner_id, tx_type, description, category, amount, date,
		       reference_month, status, recurring, created_at
		FROM transactions WHERE id = ?
	`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return finance.Transaction{}, finance.ErrTransactionNotFound
	}
	if err != nil {
		return finance.Transaction{}, fmt.Errorf("failed to get transaction: %w", err)
	}
	return tx, nil
}

func (s *Store) queryTransactions(ctx context.Context, query string, args ...any) ([]finance.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []finance.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

func scanTransaction(row rowScanner) (finance.Transaction, error) {
	var (
		tx        finance.Transaction
		txType    string
		amount    string
		status    string
		createdAt string
	)

	err := row.Scan(
		&tx.ID, &tx.OwnerID, &txType, &tx.Description, &tx.Category,
		&amount, &tx.Date, &tx.ReferenceMonth, &status, &tx.Recurring,
		&createdAt,
	)
	if err != nil {
		return tx, err
	}

	tx.Type = finance.TransactionType(txType)
	tx.Amount = parseDecimal(amount)
	tx.Status = finance.TransactionStatus(status)
	tx.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return tx, nil
}

// =============================================================================
// SETTINGS STORE (finance.SettingsStore interface)
// =============================================================================

// GetSettings returns the owner's settings, falling back to defaults when no
// document exists.
func (s *Store) GetSettings(ctx context.Context, ownerID string) (finance.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var incomeJSON, expenseJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT income_categories_json, expense_categories_json FROM user_settings WHERE owner_id = ?",
		ownerID,
	).Scan(&incomeJSON, &expenseJSON)

	if err == sql.ErrNoRows {
		return finance.DefaultSettings(), nil
	}
	if err != nil {
		return finance.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	var settings finance.Settings
	if err := json.Unmarshal([]byte(incomeJSON), &settings.IncomeCategories); err != nil {
		return finance.Settings{}, fmt.Errorf("failed to decode income categories: %w", err)
	}
	if err := json.Unmarshal([]byte(expenseJSON), &settings.ExpenseCategories); err != nil {
		return finance.Settings{}, fmt.Errorf("failed to decode expense categories: %w", err)
	}
	return settings, nil
}

// SaveSettings upserts the owner's settings document.
func (s *Store) SaveSettings(ctx context.Context, ownerID string, settings finance.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	incomeJSON, err := json.Marshal(settings.IncomeCategories)
	if err != nil {
		return fmt.Errorf("failed to encode income categories: %w", err)
	}
	expenseJSON, err := json.Marshal(settings.ExpenseCategories)
	if err != nil {
		return fmt.Errorf("failed to encode expense categories: %w", err)
	}

	query := `
		INSERT INTO user_settings (owner_id, income_categories_json, expense_categories_json, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET
			income_categories_json = excluded.income_categories_json,
			expense_categories_json = excluded.expense_categories_json,
			updated_at = excluded.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		ownerID, string(incomeJSON), string(expenseJSON),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
