/*
handlers.go - HTTP API handlers for the shift and finance engine

PURPOSE:
  Exposes the duty-shift engine and the finance ledger via REST API.
  Handles HTTP request/response, JSON serialization, and delegates to
  domain logic.

ENDPOINTS:
  Shift types and tariff:
    GET    /api/shift-types            List the shift type catalog
    GET    /api/rates                  Current tariff table
    POST   /api/tariff/calculate       Value one interval under the tariff

  Scales:
    GET    /api/scales                 List active scales for an owner
    POST   /api/scales                 Create scale
    PATCH  /api/scales/{id}            Merge-patch scale
    DELETE /api/scales/{id}            Delete scale
    POST   /api/scales/{id}/duplicate  Duplicate onto a new start date

  Shifts:
    GET    /api/shifts                 Consolidated occurrences for a period
    PUT    /api/shifts                 Upsert an occurrence override
    POST   /api/shifts/cancel          Soft-delete one occurrence
    POST   /api/shifts/confirm-pay     Confirm pay, create AC-4 income
    DELETE /api/shifts/{id}            Remove an override row

  Finance:
    GET    /api/transactions           List by owner (optional month filter)
    POST   /api/transactions           Create transaction
    PATCH  /api/transactions/{id}      Merge-patch transaction
    DELETE /api/transactions/{id}      Delete transaction
    GET    /api/transactions/summary   Month totals
    GET    /api/transactions/insights  Derived spending signals

  Settings:
    GET    /api/settings               Category lists for an owner
    PUT    /api/settings               Save category lists

  Admin:
    POST   /api/admin/duplicate-recurring  Roll recurring bills forward now

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. Owner identity comes from
  the owner_id parameter; all endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - scheduler.go: Background recurring-bill duplication
*/
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/plantao/shift-engine/finance"
	"github.com/plantao/shift-engine/scale"
	"github.com/plantao/shift-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Shifts       *scale.Service
	Transactions finance.TransactionStore
	Settings     finance.SettingsStore
	Rates        scale.Rates

	// Now is injectable for deterministic tests; defaults to time.Now.
	Now func() time.Time
}

// NewHandler creates a new handler backed by the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Shifts:       scale.NewService(store, store, scale.DefaultCatalog()),
		Transactions: store,
		Settings:     store,
		Rates:        scale.DefaultRates(),
		Now:          time.Now,
	}
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// =============================================================================
// CATALOG AND TARIFF HANDLERS
// =============================================================================

// ListShiftTypes returns the shift type catalog.
func (h *Handler) ListShiftTypes(w http.ResponseWriter, r *http.Request) {
	types := h.Shifts.Catalog.Types()
	dtos := make([]ShiftTypeDTO, len(types))
	for i, st := range types {
		dtos[i] = toShiftTypeDTO(st)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetRates returns the active tariff table.
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Rates)
}

// CalculateTariff values one interval under the tariff table.
func (h *Handler) CalculateTariff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_time (use RFC3339)", err)
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_time (use RFC3339)", err)
		return
	}

	value, _ := scale.CalculateValue(start, end, h.Rates).Float64()
	writeJSON(w, http.StatusOK, map[string]any{"value": value})
}

// =============================================================================
// SCALE HANDLERS
// =============================================================================

// ListScales returns the owner's active scales.
func (h *Handler) ListScales(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "owner_id is required", nil)
		return
	}

	scales, err := h.Shifts.Scales.ActiveScalesByOwner(r.Context(), ownerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list scales", err)
		return
	}

	dtos := make([]ScaleDTO, len(scales))
	for i, sc := range scales {
		dtos[i] = toScaleDTO(sc)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateScale creates a new scale rule.
func (h *Handler) CreateScale(w http.ResponseWriter, r *http.Request) {
	var req CreateScaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.OwnerID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "owner_id and name are required", nil)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}

	sc := scale.ShiftScale{
		OwnerID:            req.OwnerID,
		Name:               req.Name,
		Category:           scale.ScaleCategory(req.Category),
		IsOneOff:           req.IsOneOff,
		PatternType:        scale.PatternType(req.PatternType),
		StartDate:          startDate,
		CycleLength:        req.CycleLength,
		DefaultShiftTypeID: req.DefaultShiftTypeID,
		CycleMap:           req.CycleMap,
		IsActive:           true,
	}

	created, err := h.Shifts.CreateScale(r.Context(), sc)
	if err != nil {
		status := http.StatusInternalServerError
		if scale.IsInvalid(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, "Failed to create scale", err)
		return
	}

	writeJSON(w, http.StatusCreated, toScaleDTO(created))
}

// UpdateScale applies a merge-patch to a scale.
func (h *Handler) UpdateScale(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ScalePatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	patch := scale.ScalePatch{
		Name:               req.Name,
		IsOneOff:           req.IsOneOff,
		CycleLength:        req.CycleLength,
		DefaultShiftTypeID: req.DefaultShiftTypeID,
		CycleMap:           req.CycleMap,
		IsActive:           req.IsActive,
	}
	if req.Category != nil {
		c := scale.ScaleCategory(*req.Category)
		patch.Category = &c
	}
	if req.PatternType != nil {
		p := scale.PatternType(*req.PatternType)
		patch.PatternType = &p
	}
	if req.StartDate != nil {
		t, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
			return
		}
		patch.StartDate = &t
	}

	if err := h.Shifts.UpdateScale(r.Context(), id, patch); err != nil {
		if scale.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Scale not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update scale", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteScale deletes a scale rule.
func (h *Handler) DeleteScale(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Shifts.DeleteScale(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete scale", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// DuplicateScale copies a scale onto a new start date.
func (h *Handler) DuplicateScale(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req DuplicateScaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}

	dup, err := h.Shifts.DuplicateScale(r.Context(), id, startDate)
	if err != nil {
		if scale.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Scale not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to duplicate scale", err)
		return
	}

	writeJSON(w, http.StatusCreated, toScaleDTO(dup))
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// GetShifts returns the consolidated occurrences for a period.
func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "owner_id is required", nil)
		return
	}

	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date (use YYYY-MM-DD)", err)
		return
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end date (use YYYY-MM-DD)", err)
		return
	}

	events, err := h.Shifts.GetShiftsForPeriod(r.Context(), ownerID, start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get shifts", err)
		return
	}

	dtos := make([]ShiftEventDTO, len(events))
	for i, ev := range events {
		dtos[i] = toShiftEventDTO(ev, h.Rates)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveShift upserts an occurrence override.
func (h *Handler) SaveShift(w http.ResponseWriter, r *http.Request) {
	var req SaveShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ev, err := h.eventFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift event", err)
		return
	}
	ev.IsManualOverride = true

	saved, err := h.Shifts.SaveShiftEvent(r.Context(), ev)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save shift", err)
		return
	}

	writeJSON(w, http.StatusOK, toShiftEventDTO(saved, h.Rates))
}

// CancelShift soft-deletes one occurrence by persisting it canceled.
func (h *Handler) CancelShift(w http.ResponseWriter, r *http.Request) {
	var req SaveShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ev, err := h.eventFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift event", err)
		return
	}

	canceled, err := h.Shifts.CancelShiftEvent(r.Context(), ev)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to cancel shift", err)
		return
	}

	writeJSON(w, http.StatusOK, toShiftEventDTO(canceled, h.Rates))
}

// DeleteShift hard-deletes an override row. A generated occurrence with the
// same id reappears on the next period read; use cancel to remove a day.
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Shifts.DeleteShiftEvent(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete shift", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ConfirmPay confirms pay for an extra-duty occurrence: the occurrence is
// persisted confirmed and one AC-4 income transaction is created, valued by
// the tariff and booked two reference months forward.
func (h *Handler) ConfirmPay(w http.ResponseWriter, r *http.Request) {
	var req ConfirmPayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ev, err := h.eventFromRequest(req.Event)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift event", err)
		return
	}

	value := scale.CalculateValue(ev.StartTime, ev.EndTime, h.Rates)
	if !value.IsPositive() {
		writeError(w, http.StatusBadRequest, "Shift interval has no billable value", nil)
		return
	}

	ev.Status = scale.StatusConfirmed
	ev.IsManualOverride = true
	saved, err := h.Shifts.SaveShiftEvent(r.Context(), ev)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to confirm shift", err)
		return
	}

	tx := finance.Transaction{
		OwnerID:        ev.OwnerID,
		Type:           finance.TypeIncome,
		Description:    "Plantão " + ev.ShiftTypeSnapshot.Code + " " + ev.Date,
		Category:       finance.CategoryExtraDuty,
		Amount:         value,
		Date:           ev.Date,
		ReferenceMonth: finance.ShiftedReferenceMonth(ev.StartTime, finance.CategoryExtraDuty, finance.TypeIncome),
		Status:         finance.StatusPending,
		CreatedAt:      h.now(),
	}

	txID, err := h.Transactions.InsertTransaction(r.Context(), tx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create income transaction", err)
		return
	}
	tx.ID = txID

	writeJSON(w, http.StatusCreated, ConfirmPayResponse{
		Event:       toShiftEventDTO(saved, h.Rates),
		Transaction: toTransactionDTO(tx),
	})
}

// eventFromRequest builds a domain event from the wire shape, resolving the
// shift type snapshot from the catalog when an id is given.
func (h *Handler) eventFromRequest(req SaveShiftRequest) (scale.ShiftEvent, error) {
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return scale.ShiftEvent{}, err
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return scale.ShiftEvent{}, err
	}

	ev := scale.ShiftEvent{
		ID:            req.ID,
		OwnerID:       req.OwnerID,
		ScaleID:       req.ScaleID,
		Date:          req.Date,
		StartTime:     start,
		EndTime:       end,
		ShiftTypeID:   req.ShiftTypeID,
		ScaleCategory: scale.ScaleCategory(req.ScaleCategory),
		Note:          req.Note,
		Status:        scale.ShiftStatus(req.Status),
	}
	if ev.Date == "" {
		ev.Date = scale.DateKey(start)
	}
	if ev.Status == "" {
		ev.Status = scale.StatusScheduled
	}
	if st, ok := h.Shifts.Catalog.Lookup(req.ShiftTypeID); ok {
		ev.ShiftTypeSnapshot = st
	}
	return ev, nil
}

// =============================================================================
// TRANSACTION HANDLERS
// =============================================================================

// ListTransactions returns the owner's transactions, optionally filtered to
// one reference month.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "owner_id is required", nil)
		return
	}

	var (
		txs []finance.Transaction
		err error
	)
	if month := r.URL.Query().Get("month"); month != "" {
		txs, err = h.Transactions.TransactionsByMonth(r.Context(), ownerID, month)
	} else {
		txs, err = h.Transactions.TransactionsByOwner(r.Context(), ownerID)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionDTOs(txs))
}

// CreateTransaction creates a new income/expense entry.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.OwnerID == "" || req.Description == "" {
		writeError(w, http.StatusBadRequest, "owner_id and description are required", nil)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	tx := finance.Transaction{
		OwnerID:        req.OwnerID,
		Type:           finance.TransactionType(req.Type),
		Description:    req.Description,
		Category:       req.Category,
		Amount:         amountFromFloat(req.Amount),
		Date:           req.Date,
		ReferenceMonth: req.ReferenceMonth,
		Status:         finance.TransactionStatus(req.Status),
		Recurring:      req.Recurring,
		CreatedAt:      h.now(),
	}
	if tx.ReferenceMonth == "" {
		tx.ReferenceMonth = finance.ShiftedReferenceMonth(date, tx.Category, tx.Type)
	}
	if tx.Status == "" {
		tx.Status = finance.StatusPending
	}

	id, err := h.Transactions.InsertTransaction(r.Context(), tx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create transaction", err)
		return
	}
	tx.ID = id

	writeJSON(w, http.StatusCreated, toTransactionDTO(tx))
}

// UpdateTransaction applies a merge-patch to a transaction.
func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req TransactionPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	patch := finance.TransactionPatch{
		Description:    req.Description,
		Category:       req.Category,
		Date:           req.Date,
		ReferenceMonth: req.ReferenceMonth,
		Recurring:      req.Recurring,
	}
	if req.Amount != nil {
		a := amountFromFloat(*req.Amount)
		patch.Amount = &a
	}
	if req.Status != nil {
		st := finance.TransactionStatus(*req.Status)
		patch.Status = &st
	}

	if err := h.Transactions.UpdateTransaction(r.Context(), id, patch); err != nil {
		if err == finance.ErrTransactionNotFound {
			writeError(w, http.StatusNotFound, "Transaction not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteTransaction deletes a transaction.
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Transactions.DeleteTransaction(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GetSummary returns month totals for one reference month.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	month := r.URL.Query().Get("month")
	if ownerID == "" || month == "" {
		writeError(w, http.StatusBadRequest, "owner_id and month are required", nil)
		return
	}

	txs, err := h.Transactions.TransactionsByMonth(r.Context(), ownerID, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load transactions", err)
		return
	}

	s := finance.Summarize(txs, month)
	income, _ := s.Income.Float64()
	expense, _ := s.Expense.Float64()
	balance, _ := s.Balance.Float64()
	byCat := make(map[string]float64, len(s.ExpenseByCategory))
	for c, v := range s.ExpenseByCategory {
		byCat[c], _ = v.Float64()
	}

	writeJSON(w, http.StatusOK, SummaryDTO{
		Month:             s.Month,
		Income:            income,
		Expense:           expense,
		Balance:           balance,
		ExpenseByCategory: byCat,
	})
}

// GetInsights returns derived spending signals for one reference month.
func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	month := r.URL.Query().Get("month")
	if ownerID == "" || month == "" {
		writeError(w, http.StatusBadRequest, "owner_id and month are required", nil)
		return
	}

	txs, err := h.Transactions.TransactionsByOwner(r.Context(), ownerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load transactions", err)
		return
	}

	insights := finance.Insights(txs, month)
	dtos := make([]InsightDTO, len(insights))
	for i, in := range insights {
		amount, _ := in.Amount.Float64()
		dtos[i] = InsightDTO{
			Kind:     string(in.Kind),
			Category: in.Category,
			Amount:   amount,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// SETTINGS HANDLERS
// =============================================================================

// GetSettings returns the owner's category lists, defaults included.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "owner_id is required", nil)
		return
	}

	settings, err := h.Settings.GetSettings(r.Context(), ownerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get settings", err)
		return
	}

	writeJSON(w, http.StatusOK, SettingsDTO{
		IncomeCategories:  settings.IncomeCategories,
		ExpenseCategories: settings.ExpenseCategories,
	})
}

// SaveSettings saves the owner's category lists.
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "owner_id is required", nil)
		return
	}

	var req SettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	settings := finance.Settings{
		IncomeCategories:  req.IncomeCategories,
		ExpenseCategories: req.ExpenseCategories,
	}
	if err := h.Settings.SaveSettings(r.Context(), ownerID, settings); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save settings", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// DuplicateRecurring rolls recurring bills onto the current month for one
// owner, immediately. The scheduler does the same on a timer for all owners.
func (h *Handler) DuplicateRecurring(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "owner_id is required", nil)
		return
	}

	ctx := r.Context()
	txs, err := h.Transactions.TransactionsByOwner(ctx, ownerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load transactions", err)
		return
	}

	clones := finance.DuplicateRecurring(txs, h.now())
	created := make([]TransactionDTO, 0, len(clones))
	for _, tx := range clones {
		id, err := h.Transactions.InsertTransaction(ctx, tx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to create recurring clone", err)
			return
		}
		tx.ID = id
		created = append(created, toTransactionDTO(tx))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":        len(created),
		"transactions": created,
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
