/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Scales:
    ScaleDTO, CreateScaleRequest, ScalePatchRequest, DuplicateScaleRequest

  Shifts:
    ShiftEventDTO, SaveShiftRequest, ConfirmPayRequest, ConfirmPayResponse

  Finance:
    TransactionDTO, CreateTransactionRequest, TransactionPatchRequest,
    SummaryDTO, InsightDTO, SettingsDTO

AMOUNTS:
  Monetary values cross the wire as JSON numbers; internally they are
  decimal.Decimal and only converted at this boundary.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/plantao/shift-engine/finance"
	"github.com/plantao/shift-engine/scale"
)

// =============================================================================
// SCALE TYPES
// =============================================================================

// ScaleDTO represents a shift scale rule in API responses.
type ScaleDTO struct {
	ID                 string         `json:"id"`
	OwnerID            string         `json:"owner_id"`
	Name               string         `json:"name"`
	Category           string         `json:"category"`
	IsOneOff           bool           `json:"is_one_off"`
	PatternType        string         `json:"pattern_type"`
	StartDate          string         `json:"start_date"`
	CycleLength        int            `json:"cycle_length"`
	DefaultShiftTypeID string         `json:"default_shift_type_id,omitempty"`
	CycleMap           map[int]string `json:"cycle_map,omitempty"`
	IsActive           bool           `json:"is_active"`
	CreatedAt          string         `json:"created_at,omitempty"`
}

// CreateScaleRequest is the request to create a scale.
type CreateScaleRequest struct {
	OwnerID            string         `json:"owner_id"`
	Name               string         `json:"name"`
	Category           string         `json:"category"`
	IsOneOff           bool           `json:"is_one_off"`
	PatternType        string         `json:"pattern_type"`
	StartDate          string         `json:"start_date"` // "YYYY-MM-DD"
	CycleLength        int            `json:"cycle_length,omitempty"`
	DefaultShiftTypeID string         `json:"default_shift_type_id,omitempty"`
	CycleMap           map[int]string `json:"cycle_map,omitempty"`
}

// ScalePatchRequest is a merge-patch over a scale; absent fields stay as-is.
type ScalePatchRequest struct {
	Name               *string        `json:"name,omitempty"`
	Category           *string        `json:"category,omitempty"`
	IsOneOff           *bool          `json:"is_one_off,omitempty"`
	PatternType        *string        `json:"pattern_type,omitempty"`
	StartDate          *string        `json:"start_date,omitempty"`
	CycleLength        *int           `json:"cycle_length,omitempty"`
	DefaultShiftTypeID *string        `json:"default_shift_type_id,omitempty"`
	CycleMap           map[int]string `json:"cycle_map,omitempty"`
	IsActive           *bool          `json:"is_active,omitempty"`
}

// DuplicateScaleRequest is the request to duplicate a scale onto a new start.
type DuplicateScaleRequest struct {
	StartDate string `json:"start_date"` // "YYYY-MM-DD"
}

// =============================================================================
// SHIFT TYPES
// =============================================================================

// ShiftTypeDTO represents a catalog entry.
type ShiftTypeDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	Color        string `json:"color"`
	Hours        int    `json:"hours"`
	IsNightShift bool   `json:"is_night_shift"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// ShiftEventDTO represents one calendar occurrence, generated or overridden.
type ShiftEventDTO struct {
	ID               string       `json:"id"`
	OwnerID          string       `json:"owner_id"`
	ScaleID          string       `json:"scale_id,omitempty"`
	Date             string       `json:"date"`
	StartTime        string       `json:"start_time"`
	EndTime          string       `json:"end_time"`
	ShiftTypeID      string       `json:"shift_type_id,omitempty"`
	ShiftType        ShiftTypeDTO `json:"shift_type"`
	ScaleCategory    string       `json:"scale_category,omitempty"`
	IsManualOverride bool         `json:"is_manual_override"`
	Note             string       `json:"note,omitempty"`
	Status           string       `json:"status"`
	Value            float64      `json:"value"` // tariff value of the interval
}

// SaveShiftRequest upserts an occurrence override.
type SaveShiftRequest struct {
	ID            string `json:"id,omitempty"`
	OwnerID       string `json:"owner_id"`
	ScaleID       string `json:"scale_id,omitempty"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"` // RFC3339
	EndTime       string `json:"end_time"`   // RFC3339
	ShiftTypeID   string `json:"shift_type_id,omitempty"`
	ScaleCategory string `json:"scale_category,omitempty"`
	Note          string `json:"note,omitempty"`
	Status        string `json:"status,omitempty"`
}

// ConfirmPayRequest confirms pay for an extra-duty occurrence.
type ConfirmPayRequest struct {
	Event SaveShiftRequest `json:"event"`
}

// ConfirmPayResponse returns the confirmed occurrence and the income
// transaction it produced.
type ConfirmPayResponse struct {
	Event       ShiftEventDTO  `json:"event"`
	Transaction TransactionDTO `json:"transaction"`
}

// =============================================================================
// FINANCE TYPES
// =============================================================================

// TransactionDTO represents an income/expense entry.
type TransactionDTO struct {
	ID             string  `json:"id"`
	OwnerID        string  `json:"owner_id"`
	Type           string  `json:"type"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	Amount         float64 `json:"amount"`
	Date           string  `json:"date"`
	ReferenceMonth string  `json:"reference_month"`
	Status         string  `json:"status"`
	Recurring      bool    `json:"recurring"`
	CreatedAt      string  `json:"created_at,omitempty"`
}

// CreateTransactionRequest is the request to create a transaction.
type CreateTransactionRequest struct {
	OwnerID        string  `json:"owner_id"`
	Type           string  `json:"type"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	Amount         float64 `json:"amount"`
	Date           string  `json:"date"` // "YYYY-MM-DD"
	ReferenceMonth string  `json:"reference_month,omitempty"`
	Status         string  `json:"status,omitempty"`
	Recurring      bool    `json:"recurring"`
}

// TransactionPatchRequest is a merge-patch over a transaction.
type TransactionPatchRequest struct {
	Description    *string  `json:"description,omitempty"`
	Category       *string  `json:"category,omitempty"`
	Amount         *float64 `json:"amount,omitempty"`
	Date           *string  `json:"date,omitempty"`
	ReferenceMonth *string  `json:"reference_month,omitempty"`
	Status         *string  `json:"status,omitempty"`
	Recurring      *bool    `json:"recurring,omitempty"`
}

// SummaryDTO aggregates one reference month.
type SummaryDTO struct {
	Month             string             `json:"month"`
	Income            float64            `json:"income"`
	Expense           float64            `json:"expense"`
	Balance           float64            `json:"balance"`
	ExpenseByCategory map[string]float64 `json:"expense_by_category"`
}

// InsightDTO is one derived spending signal.
type InsightDTO struct {
	Kind     string  `json:"kind"`
	Category string  `json:"category,omitempty"`
	Amount   float64 `json:"amount,omitempty"`
}

// SettingsDTO carries a user's category lists.
type SettingsDTO struct {
	IncomeCategories  []string `json:"income_categories"`
	ExpenseCategories []string `json:"expense_categories"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toScaleDTO(sc scale.ShiftScale) ScaleDTO {
	return ScaleDTO{
		ID:                 sc.ID,
		OwnerID:            sc.OwnerID,
		Name:               sc.Name,
		Category:           string(sc.Category),
		IsOneOff:           sc.IsOneOff,
		PatternType:        string(sc.PatternType),
		StartDate:          sc.StartDate.Format("2006-01-02"),
		CycleLength:        sc.CycleLength,
		DefaultShiftTypeID: sc.DefaultShiftTypeID,
		CycleMap:           sc.CycleMap,
		IsActive:           sc.IsActive,
		CreatedAt:          sc.CreatedAt.Format(time.RFC3339),
	}
}

func toShiftTypeDTO(st scale.ShiftType) ShiftTypeDTO {
	return ShiftTypeDTO{
		ID:           st.ID,
		Name:         st.Name,
		Code:         st.Code,
		Color:        st.Color,
		Hours:        st.Hours,
		IsNightShift: st.IsNightShift,
		StartTime:    st.StartTime,
		EndTime:      st.EndTime,
	}
}

func toShiftEventDTO(ev scale.ShiftEvent, rates scale.Rates) ShiftEventDTO {
	value, _ := scale.CalculateValue(ev.StartTime, ev.EndTime, rates).Float64()
	return ShiftEventDTO{
		ID:               ev.ID,
		OwnerID:          ev.OwnerID,
		ScaleID:          ev.ScaleID,
		Date:             ev.Date,
		StartTime:        ev.StartTime.Format(time.RFC3339),
		EndTime:          ev.EndTime.Format(time.RFC3339),
		ShiftTypeID:      ev.ShiftTypeID,
		ShiftType:        toShiftTypeDTO(ev.ShiftTypeSnapshot),
		ScaleCategory:    string(ev.ScaleCategory),
		IsManualOverride: ev.IsManualOverride,
		Note:             ev.Note,
		Status:           string(ev.Status),
		Value:            value,
	}
}

func toTransactionDTO(tx finance.Transaction) TransactionDTO {
	amount, _ := tx.Amount.Float64()
	return TransactionDTO{
		ID:             tx.ID,
		OwnerID:        tx.OwnerID,
		Type:           string(tx.Type),
		Description:    tx.Description,
		Category:       tx.Category,
		Amount:         amount,
		Date:           tx.Date,
		ReferenceMonth: tx.ReferenceMonth,
		Status:         string(tx.Status),
		Recurring:      tx.Recurring,
		CreatedAt:      tx.CreatedAt.Format(time.RFC3339),
	}
}

func toTransactionDTOs(txs []finance.Transaction) []TransactionDTO {
	dtos := make([]TransactionDTO, len(txs))
	for i, tx := range txs {
		dtos[i] = toTransactionDTO(tx)
	}
	return dtos
}

func amountFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
