/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Pay confirmation (ConfirmPay) and the income transaction it creates
- Period reconciliation endpoint (GetShifts)
- Transaction defaults and settings fallback
*/
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/plantao/shift-engine/store/sqlite"
)

func newTestServer(t *testing.T) (*httptest.Server, *Handler) {
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	handler := NewHandler(store)
	fixed := time.Date(2026, time.January, 2, 12, 0, 0, 0, time.UTC)
	handler.Now = func() time.Time { return fixed }
	handler.Shifts.Now = handler.Now

	srv := httptest.NewServer(NewRouter(handler))
	t.Cleanup(srv.Close)
	return srv, handler
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func TestConfirmPay_CreatesShiftedIncomeTransaction(t *testing.T) {
	// GIVEN: An extra-duty night occurrence, Friday 23:00 to Saturday 01:00
	srv, _ := newTestServer(t)

	req := ConfirmPayRequest{
		Event: SaveShiftRequest{
			OwnerID:       "owner-1",
			ScaleID:       "sc-1",
			Date:          "2026-01-09",
			StartTime:     "2026-01-09T23:00:00Z",
			EndTime:       "2026-01-10T01:00:00Z",
			ShiftTypeID:   "plantao_noturno_12",
			ScaleCategory: "AC-4",
		},
	}

	// WHEN: Confirming pay
	resp := postJSON(t, srv.URL+"/api/shifts/confirm-pay", req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}

	var out ConfirmPayResponse
	decode(t, resp, &out)

	// THEN: The occurrence is confirmed and flagged as an override
	if out.Event.Status != "confirmed" {
		t.Errorf("Expected confirmed event, got %s", out.Event.Status)
	}
	if !out.Event.IsManualOverride {
		t.Error("Confirmed event should be a manual override")
	}
	if out.Event.ID != "2026-01-09-sc-1" {
		t.Errorf("Expected deterministic id, got %s", out.Event.ID)
	}

	// AND: One AC-4 income transaction valued by the tariff, booked two
	// reference months forward
	tx := out.Transaction
	if tx.Type != "Receita" || tx.Category != "AC-4" {
		t.Errorf("Expected Receita/AC-4, got %s/%s", tx.Type, tx.Category)
	}
	if tx.Amount != 82.76 {
		t.Errorf("Expected amount 82.76 (two weekend-night hours), got %v", tx.Amount)
	}
	if tx.ReferenceMonth != "Março 2026" {
		t.Errorf("Expected reference month Março 2026, got %s", tx.ReferenceMonth)
	}
	if tx.Status != "Pendente" {
		t.Errorf("Expected pending status, got %s", tx.Status)
	}

	// AND: The transaction is on the owner's March sheet
	listResp, err := http.Get(srv.URL + "/api/transactions?owner_id=owner-1&month=Mar%C3%A7o%202026")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	var listed []TransactionDTO
	decode(t, listResp, &listed)
	if len(listed) != 1 {
		t.Fatalf("Expected 1 transaction on the March sheet, got %d", len(listed))
	}
}

func TestConfirmPay_RejectsEmptyInterval(t *testing.T) {
	srv, _ := newTestServer(t)

	req := ConfirmPayRequest{
		Event: SaveShiftRequest{
			OwnerID:   "owner-1",
			Date:      "2026-01-09",
			StartTime: "2026-01-09T08:00:00Z",
			EndTime:   "2026-01-09T08:00:00Z",
		},
	}

	resp := postJSON(t, srv.URL+"/api/shifts/confirm-pay", req)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400 for empty interval, got %d", resp.StatusCode)
	}
}

func TestGetShifts_PeriodReconciliation(t *testing.T) {
	// GIVEN: A 12x36 scale created through the API
	srv, _ := newTestServer(t)

	createResp := postJSON(t, srv.URL+"/api/scales", CreateScaleRequest{
		OwnerID:            "owner-1",
		Name:               "Plantão UPA",
		Category:           "AC-4",
		PatternType:        "12x36",
		StartDate:          "2026-01-01",
		DefaultShiftTypeID: "plantao_diurno_12",
	})
	if createResp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201 creating scale, got %d", createResp.StatusCode)
	}
	var created ScaleDTO
	decode(t, createResp, &created)
	if created.CycleLength != 2 {
		t.Errorf("Expected cycle length defaulted to 2, got %d", created.CycleLength)
	}

	// WHEN: Reading the period
	resp, err := http.Get(srv.URL + "/api/shifts?owner_id=owner-1&start=2026-01-01&end=2026-01-10")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	var events []ShiftEventDTO
	decode(t, resp, &events)

	// THEN: Five generated occurrences with tariff values attached
	if len(events) != 5 {
		t.Fatalf("Expected 5 occurrences, got %d", len(events))
	}
	if events[0].Date != "2026-01-01" {
		t.Errorf("Expected first occurrence on Jan 1, got %s", events[0].Date)
	}
	for _, ev := range events {
		if ev.Value <= 0 {
			t.Errorf("Occurrence %s should carry a positive tariff value", ev.ID)
		}
	}

	// AND: Cancelling one day suppresses its generated version
	cancelResp := postJSON(t, srv.URL+"/api/shifts/cancel", SaveShiftRequest{
		ID:        events[1].ID,
		OwnerID:   "owner-1",
		ScaleID:   created.ID,
		Date:      events[1].Date,
		StartTime: events[1].StartTime,
		EndTime:   events[1].EndTime,
	})
	if cancelResp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 cancelling, got %d", cancelResp.StatusCode)
	}
	cancelResp.Body.Close()

	resp2, err := http.Get(srv.URL + "/api/shifts?owner_id=owner-1&start=2026-01-01&end=2026-01-10")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	var after []ShiftEventDTO
	decode(t, resp2, &after)

	if len(after) != 5 {
		t.Fatalf("Cancel is a soft delete; expected 5 occurrences, got %d", len(after))
	}
	canceled := 0
	for _, ev := range after {
		if ev.Status == "canceled" {
			canceled++
		}
	}
	if canceled != 1 {
		t.Errorf("Expected exactly one canceled occurrence, got %d", canceled)
	}
}

func TestCreateTransaction_Defaults(t *testing.T) {
	// GIVEN: A bare expense with no reference month or status
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/transactions", CreateTransactionRequest{
		OwnerID:     "owner-1",
		Type:        "Despesa",
		Description: "Energia",
		Category:    "Energia",
		Amount:      312.4,
		Date:        "2026-01-12",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}

	var tx TransactionDTO
	decode(t, resp, &tx)

	// THEN: Reference month derives from the date, status defaults pending
	if tx.ReferenceMonth != "Janeiro 2026" {
		t.Errorf("Expected Janeiro 2026, got %s", tx.ReferenceMonth)
	}
	if tx.Status != "Pendente" {
		t.Errorf("Expected Pendente, got %s", tx.Status)
	}
}

func TestGetSettings_DefaultsForNewOwner(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/settings?owner_id=new-owner")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	var settings SettingsDTO
	decode(t, resp, &settings)

	if len(settings.IncomeCategories) == 0 || len(settings.ExpenseCategories) == 0 {
		t.Fatal("Expected built-in category lists for a new owner")
	}
	found := false
	for _, c := range settings.IncomeCategories {
		if c == "AC-4" {
			found = true
		}
	}
	if !found {
		t.Error("Default income categories should include AC-4")
	}
}

func TestDuplicateScaleEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	createResp := postJSON(t, srv.URL+"/api/scales", CreateScaleRequest{
		OwnerID:            "owner-1",
		Name:               "Escala Hospital",
		Category:           "AC-4",
		PatternType:        "24x72",
		StartDate:          "2026-01-01",
		DefaultShiftTypeID: "plantao_24",
	})
	var created ScaleDTO
	decode(t, createResp, &created)

	dupResp := postJSON(t, fmt.Sprintf("%s/api/scales/%s/duplicate", srv.URL, created.ID),
		DuplicateScaleRequest{StartDate: "2026-03-01"})
	if dupResp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201 duplicating, got %d", dupResp.StatusCode)
	}
	var dup ScaleDTO
	decode(t, dupResp, &dup)

	if dup.Name != "Escala Hospital (Cópia)" {
		t.Errorf("Expected copy suffix, got %q", dup.Name)
	}
	if dup.StartDate != "2026-03-01" {
		t.Errorf("Expected new start date, got %s", dup.StartDate)
	}
	if dup.ID == created.ID {
		t.Error("Duplicate should get its own id")
	}
}
