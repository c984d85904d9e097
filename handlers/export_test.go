package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"plantpnl/testhelpers"
)

func TestHandleQuoteExportPDF_GeneratesAndRecordsQuote(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	variant := seedVariantFixture(t, app)

	req := httptest.NewRequest(http.MethodGet, "/variants/"+variant.Id+"/export/quote", nil)
	req.SetPathValue("id", variant.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := HandleQuoteExportPDF(app)(e); err != nil {
		t.Fatalf("HandleQuoteExportPDF() error: %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/pdf")
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Error("response body is not a PDF document")
	}

	wantNumber := fmt.Sprintf("QT-%d-0001", time.Now().Year())
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, wantNumber) {
		t.Errorf("Content-Disposition = %q, want it to contain %q", cd, wantNumber)
	}

	quotes, err := app.FindRecordsByFilter("quotes", "variant = {:v}", "", 0, 0, map[string]any{"v": variant.Id})
	if err != nil || len(quotes) != 1 {
		t.Fatalf("expected 1 recorded quote, got %d (err %v)", len(quotes), err)
	}
	if got := quotes[0].GetString("number"); got != wantNumber {
		t.Errorf("quote number = %q, want %q", got, wantNumber)
	}
}

func TestHandleQuoteExportPDF_SequenceAdvances(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	variant := seedVariantFixture(t, app)

	export := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/variants/"+variant.Id+"/export/quote", nil)
		req.SetPathValue("id", variant.Id)
		rec := httptest.NewRecorder()
		e := newTestRequestEvent(app, req, rec)
		if err := HandleQuoteExportPDF(app)(e); err != nil {
			t.Fatalf("HandleQuoteExportPDF() error: %v", err)
		}
		return rec
	}

	export()
	rec := export()

	wantNumber := fmt.Sprintf("QT-%d-0002", time.Now().Year())
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, wantNumber) {
		t.Errorf("second export Content-Disposition = %q, want it to contain %q", cd, wantNumber)
	}
}

func TestHandleQuoteExportPDF_VariantNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/variants/missing/export/quote", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := HandleQuoteExportPDF(app)(e); err != nil {
		t.Fatalf("HandleQuoteExportPDF() error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleVariantExportExcel_GeneratesWorkbook(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	variant := seedVariantFixture(t, app)

	req := httptest.NewRequest(http.MethodGet, "/variants/"+variant.Id+"/export/excel", nil)
	req.SetPathValue("id", variant.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := HandleVariantExportExcel(app)(e); err != nil {
		t.Fatalf("HandleVariantExportExcel() error: %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected Content-Type %q", ct)
	}
	// xlsx files are zip archives.
	if !strings.HasPrefix(rec.Body.String(), "PK") {
		t.Error("response body is not an xlsx archive")
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Base-case.xlsx") {
		t.Errorf("Content-Disposition = %q, want sanitized variant name", cd)
	}
}
