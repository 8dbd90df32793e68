package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"production_board/internal/report"
	"production_board/internal/service"
	"production_board/internal/shiftcal"
	"production_board/internal/timeline"
)

func TestGetShiftReport(t *testing.T) {
	loc := shiftcal.Location()
	rep := &report.Report{
		Period: timeline.Period{
			Start: time.Date(2026, time.August, 24, 0, 0, 0, 0, loc),
			End:   time.Date(2026, time.August, 25, 0, 0, 0, 0, loc),
		},
		Buckets: map[string]map[string]*report.Bucket{
			"1": {"M-01": {Shift: "1", MachineID: "M-01", GoodPieces: 240}},
		},
		Totals: report.Totals{GoodPieces: 240},
	}
	reporting := &mockReporting{resp: rep}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Reporting: reporting}
	r := newTestRouter(s)

	w := doJSON(r, http.MethodGet, "/api/v1/reports/shift?period=day&date=2026-08-24&machine=M-01", "", "tok")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	if reporting.lastFilter.Period != service.PeriodDay {
		t.Errorf("period: want day, got %q", reporting.lastFilter.Period)
	}
	if reporting.lastFilter.MachineID != "M-01" {
		t.Errorf("machine: want M-01, got %q", reporting.lastFilter.MachineID)
	}
	wantDate := time.Date(2026, time.August, 24, 0, 0, 0, 0, loc)
	if !reporting.lastFilter.Date.Equal(wantDate) {
		t.Errorf("date: want %v, got %v", wantDate, reporting.lastFilter.Date)
	}

	var got report.Report
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Totals.GoodPieces != 240 {
		t.Errorf("totals: want 240, got %d", got.Totals.GoodPieces)
	}
}

func TestGetShiftReport_PeriodNormalized(t *testing.T) {
	reporting := &mockReporting{resp: &report.Report{}}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Reporting: reporting}
	r := newTestRouter(s)

	w := doJSON(r, http.MethodGet, "/api/v1/reports/shift?period=%20Yesterday%20", "", "tok")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if reporting.lastFilter.Period != service.PeriodYesterday {
		t.Errorf("period: want yesterday, got %q", reporting.lastFilter.Period)
	}
}

func TestGetShiftReport_BadInput(t *testing.T) {
	reporting := &mockReporting{err: errors.New("unknown period")}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Reporting: reporting}
	r := newTestRouter(s)

	// Malformed date is rejected before the service runs.
	w := doJSON(r, http.MethodGet, "/api/v1/reports/shift?period=day&date=24-08-2026", "", "tok")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", w.Code)
	}
	if reporting.calls != 0 {
		t.Fatalf("service should not run on bad date, got %d calls", reporting.calls)
	}

	// Unknown period propagates as 400.
	w = doJSON(r, http.MethodGet, "/api/v1/reports/shift?period=fortnight", "", "tok")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown period, got %d", w.Code)
	}
}
