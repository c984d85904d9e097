package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"plantpnl/testhelpers"
)

func postForm(path string, form url.Values) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return req, httptest.NewRecorder()
}

func TestHandleFormulaLineAdd_AppendsWithNextSortOrder(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	variant := seedVariantFixture(t, app)

	formula := testhelpers.CreateTestFormula(t, app, "C30/37 XF1", "C3037")

	form := url.Values{}
	form.Set("formula", formula.Id)
	form.Set("volume_m3", "150,5")
	form.Set("momd", "18")

	req, rec := postForm("/variants/"+variant.Id+"/formula-lines", form)
	req.SetPathValue("id", variant.Id)
	e := newTestRequestEvent(app, req, rec)

	if err := HandleFormulaLineAdd(app)(e); err != nil {
		t.Fatalf("HandleFormulaLineAdd() error: %v", err)
	}

	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/variants/"+variant.Id)

	lines, err := app.FindRecordsByFilter(
		"formula_lines",
		"variant = {:v} && formula = {:f}",
		"", 1, 0,
		map[string]any{"v": variant.Id, "f": formula.Id},
	)
	if err != nil || len(lines) == 0 {
		t.Fatal("formula line was not created")
	}
	// The fixture already holds one line, so the new one sorts second.
	if got := lines[0].GetFloat("sort_order"); got != 2 {
		t.Errorf("sort_order = %v, want 2", got)
	}
	if got := lines[0].GetFloat("volume_m3"); got != 150.5 {
		t.Errorf("volume_m3 = %v, want 150.5 (comma decimal should parse)", got)
	}
}

func TestHandleFormulaLineAdd_UnknownFormula(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	variant := seedVariantFixture(t, app)

	form := url.Values{}
	form.Set("formula", "doesnotexist01")
	form.Set("volume_m3", "10")

	req, rec := postForm("/variants/"+variant.Id+"/formula-lines", form)
	req.SetPathValue("id", variant.Id)
	e := newTestRequestEvent(app, req, rec)

	if err := HandleFormulaLineAdd(app)(e); err != nil {
		t.Fatalf("HandleFormulaLineAdd() error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleFormulaLineUpdate_PatchesSingleField(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	variant := seedVariantFixture(t, app)

	lines, err := app.FindRecordsByFilter("formula_lines", "variant = {:v}", "", 1, 0, map[string]any{"v": variant.Id})
	if err != nil || len(lines) == 0 {
		t.Fatal("fixture line missing")
	}

	form := url.Values{}
	form.Set("volume_m3", "250")

	req, rec := postForm("/formula-lines/"+lines[0].Id, form)
	req.SetPathValue("id", lines[0].Id)
	e := newTestRequestEvent(app, req, rec)

	if err := HandleFormulaLineUpdate(app)(e); err != nil {
		t.Fatalf("HandleFormulaLineUpdate() error: %v", err)
	}

	updated, err := app.FindRecordById("formula_lines", lines[0].Id)
	if err != nil {
		t.Fatalf("failed to reload line: %v", err)
	}
	if got := updated.GetFloat("volume_m3"); got != 250.0 {
		t.Errorf("volume_m3 = %v, want 250", got)
	}
	// Fields absent from the form keep their value.
	if got := updated.GetFloat("momd"); got != 20.0 {
		t.Errorf("momd = %v, want 20 (untouched)", got)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "kpis-changed") {
		t.Error("patching a line should trigger a KPI refresh")
	}
}

func TestHandleFormulaLineDelete_Removes(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	variant := seedVariantFixture(t, app)

	lines, err := app.FindRecordsByFilter("formula_lines", "variant = {:v}", "", 1, 0, map[string]any{"v": variant.Id})
	if err != nil || len(lines) == 0 {
		t.Fatal("fixture line missing")
	}

	req := httptest.NewRequest(http.MethodDelete, "/formula-lines/"+lines[0].Id, nil)
	req.SetPathValue("id", lines[0].Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := HandleFormulaLineDelete(app)(e); err != nil {
		t.Fatalf("HandleFormulaLineDelete() error: %v", err)
	}

	if _, err := app.FindRecordById("formula_lines", lines[0].Id); err == nil {
		t.Error("formula line should have been deleted")
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "kpis-changed") {
		t.Error("deleting a line should trigger a KPI refresh")
	}
}

func TestHandleMaterialOverrideAdd_UpsertsPerMaterial(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	variant := seedVariantFixture(t, app)

	materials, _ := app.FindAllRecords("materials")
	if len(materials) != 1 {
		t.Fatalf("expected 1 material, got %d", len(materials))
	}
	materialID := materials[0].Id

	save := func(price string) {
		form := url.Values{}
		form.Set("material", materialID)
		form.Set("unit_price", price)

		req, rec := postForm("/variants/"+variant.Id+"/material-overrides", form)
		req.SetPathValue("id", variant.Id)
		e := newTestRequestEvent(app, req, rec)

		if err := HandleMaterialOverrideAdd(app)(e); err != nil {
			t.Fatalf("HandleMaterialOverrideAdd() error: %v", err)
		}
	}

	save("85")
	save("92,5")

	overrides, err := app.FindRecordsByFilter("material_overrides", "variant = {:v}", "", 0, 0, map[string]any{"v": variant.Id})
	if err != nil {
		t.Fatalf("failed to query overrides: %v", err)
	}
	if len(overrides) != 1 {
		t.Fatalf("expected a single override after two saves, got %d", len(overrides))
	}
	if got := overrides[0].GetFloat("unit_price"); got != 92.5 {
		t.Errorf("unit_price = %v, want 92.5", got)
	}
}

func TestHandleMaterialOverrideAdd_UnknownMaterial(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	variant := seedVariantFixture(t, app)

	form := url.Values{}
	form.Set("material", "doesnotexist01")
	form.Set("unit_price", "10")

	req, rec := postForm("/variants/"+variant.Id+"/material-overrides", form)
	req.SetPathValue("id", variant.Id)
	e := newTestRequestEvent(app, req, rec)

	if err := HandleMaterialOverrideAdd(app)(e); err != nil {
		t.Fatalf("HandleMaterialOverrideAdd() error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleMiscCostAdd_Creates(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	variant := seedVariantFixture(t, app)

	form := url.Values{}
	form.Set("label", "Overheads")
	form.Set("unit", "pct_revenue")
	form.Set("value", "4")

	req, rec := postForm("/variants/"+variant.Id+"/misc-costs", form)
	req.SetPathValue("id", variant.Id)
	e := newTestRequestEvent(app, req, rec)

	if err := HandleMiscCostAdd(app)(e); err != nil {
		t.Fatalf("HandleMiscCostAdd() error: %v", err)
	}

	costs, err := app.FindRecordsByFilter("misc_costs", "variant = {:v}", "", 0, 0, map[string]any{"v": variant.Id})
	if err != nil || len(costs) != 1 {
		t.Fatalf("expected 1 misc cost, got %d (err %v)", len(costs), err)
	}
	if costs[0].GetString("unit") != "pct_revenue" {
		t.Errorf("unit = %q, want %q", costs[0].GetString("unit"), "pct_revenue")
	}
}

func TestHandleMiscCostAdd_UnknownUnitFallsBackToLumpSum(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	variant := seedVariantFixture(t, app)

	form := url.Values{}
	form.Set("label", "Mystery cost")
	form.Set("unit", "per_fortnight")
	form.Set("value", "1000")

	req, rec := postForm("/variants/"+variant.Id+"/misc-costs", form)
	req.SetPathValue("id", variant.Id)
	e := newTestRequestEvent(app, req, rec)

	if err := HandleMiscCostAdd(app)(e); err != nil {
		t.Fatalf("HandleMiscCostAdd() error: %v", err)
	}

	costs, _ := app.FindRecordsByFilter("misc_costs", "variant = {:v}", "", 1, 0, map[string]any{"v": variant.Id})
	if len(costs) == 0 {
		t.Fatal("misc cost was not created")
	}
	if costs[0].GetString("unit") != "lump_sum" {
		t.Errorf("unit = %q, want %q", costs[0].GetString("unit"), "lump_sum")
	}
}

func TestHandleMiscCostAdd_RequiresLabel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	variant := seedVariantFixture(t, app)

	form := url.Values{}
	form.Set("label", "   ")
	form.Set("unit", "lump_sum")
	form.Set("value", "500")

	req, rec := postForm("/variants/"+variant.Id+"/misc-costs", form)
	req.SetPathValue("id", variant.Id)
	e := newTestRequestEvent(app, req, rec)

	if err := HandleMiscCostAdd(app)(e); err != nil {
		t.Fatalf("HandleMiscCostAdd() error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleCostsForm_RendersAllSections(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	variant := seedVariantFixture(t, app)

	req := httptest.NewRequest(http.MethodGet, "/variants/"+variant.Id+"/costs", nil)
	req.SetPathValue("id", variant.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := HandleCostsForm(app)(e); err != nil {
		t.Fatalf("HandleCostsForm() error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Transport &amp; pumping",
		"Plant",
		"Maintenance (monthly)",
		"Monthly site costs",
		"One-off costs",
		"Staffing",
		// The fixture stores a transport price, the rest defaults to 0.
		"transport_costs.avg_price_m3",
		"staffing_costs.driver_cost",
	)
}

func TestHandleCostsSave_UpsertsSections(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	variant := seedVariantFixture(t, app)

	form := url.Values{}
	form.Set("transport_costs.avg_price_m3", "12,5")
	form.Set("transport_costs.pumped_pct", "30")
	form.Set("monthly_costs.rent", "2000")
	form.Set("staffing_costs.operator_count", "2")
	form.Set("staffing_costs.operator_cost", "3500")

	req, rec := postForm("/variants/"+variant.Id+"/costs", form)
	req.SetPathValue("id", variant.Id)
	e := newTestRequestEvent(app, req, rec)

	if err := HandleCostsSave(app)(e); err != nil {
		t.Fatalf("HandleCostsSave() error: %v", err)
	}

	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/variants/"+variant.Id)

	// The fixture already created a transport record: it must be updated in
	// place, not duplicated.
	transport, err := app.FindRecordsByFilter("transport_costs", "variant = {:v}", "", 0, 0, map[string]any{"v": variant.Id})
	if err != nil || len(transport) != 1 {
		t.Fatalf("expected 1 transport record, got %d (err %v)", len(transport), err)
	}
	if got := transport[0].GetFloat("avg_price_m3"); got != 12.5 {
		t.Errorf("avg_price_m3 = %v, want 12.5", got)
	}
	if got := transport[0].GetFloat("pumped_pct"); got != 30.0 {
		t.Errorf("pumped_pct = %v, want 30", got)
	}

	monthly, err := app.FindRecordsByFilter("monthly_costs", "variant = {:v}", "", 1, 0, map[string]any{"v": variant.Id})
	if err != nil || len(monthly) == 0 {
		t.Fatal("monthly_costs record was not created")
	}
	if got := monthly[0].GetFloat("rent"); got != 2000.0 {
		t.Errorf("rent = %v, want 2000", got)
	}

	staffing, err := app.FindRecordsByFilter("staffing_costs", "variant = {:v}", "", 1, 0, map[string]any{"v": variant.Id})
	if err != nil || len(staffing) == 0 {
		t.Fatal("staffing_costs record was not created")
	}
	if got := staffing[0].GetFloat("operator_cost"); got != 3500.0 {
		t.Errorf("operator_cost = %v, want 3500", got)
	}
}

func TestHandleCostsSave_VariantNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req, rec := postForm("/variants/missing/costs", url.Values{})
	req.SetPathValue("id", "missing")
	e := newTestRequestEvent(app, req, rec)

	if err := HandleCostsSave(app)(e); err != nil {
		t.Fatalf("HandleCostsSave() error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
