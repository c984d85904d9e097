package collections_test

import (
	"testing"

	"plantpnl/collections"
	"plantpnl/testhelpers"
)

func TestSeed_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	// Verify the P&L was created
	pnlsCol, _ := app.FindCollectionByNameOrId("pnls")
	pnls, err := app.FindAllRecords(pnlsCol)
	if err != nil {
		t.Fatalf("query pnls error: %v", err)
	}
	if len(pnls) != 1 {
		t.Fatalf("expected 1 pnl, got %d", len(pnls))
	}
	if pnls[0].GetString("name") != "A89 extension - Chantier Est" {
		t.Errorf("pnl name = %q, want %q", pnls[0].GetString("name"), "A89 extension - Chantier Est")
	}

	// Verify the contract was created and linked to the P&L
	contractsCol, _ := app.FindCollectionByNameOrId("contracts")
	contracts, _ := app.FindAllRecords(contractsCol)
	if len(contracts) != 1 {
		t.Fatalf("expected 1 contract, got %d", len(contracts))
	}
	if contracts[0].GetString("pnl") != pnls[0].Id {
		t.Errorf("contract pnl = %q, want %q", contracts[0].GetString("pnl"), pnls[0].Id)
	}
	if contracts[0].GetFloat("duration_months") != 18 {
		t.Errorf("contract duration = %v, want 18", contracts[0].GetFloat("duration_months"))
	}

	// Verify 2 variants
	variantsCol, _ := app.FindCollectionByNameOrId("variants")
	variants, _ := app.FindAllRecords(variantsCol)
	if len(variants) != 2 {
		t.Errorf("expected 2 variants, got %d", len(variants))
	}

	// Verify the catalogs
	materialsCol, _ := app.FindCollectionByNameOrId("materials")
	materials, _ := app.FindAllRecords(materialsCol)
	if len(materials) != 5 {
		t.Errorf("expected 5 materials, got %d", len(materials))
	}
	formulasCol, _ := app.FindCollectionByNameOrId("formulas")
	formulas, _ := app.FindAllRecords(formulasCol)
	if len(formulas) != 3 {
		t.Errorf("expected 3 formulas, got %d", len(formulas))
	}

	// Formula lines exist for both variants (3 + 2)
	linesCol, _ := app.FindCollectionByNameOrId("formula_lines")
	lines, _ := app.FindAllRecords(linesCol)
	if len(lines) != 5 {
		t.Errorf("expected 5 formula lines, got %d", len(lines))
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	// Should still have exactly 1 pnl
	pnlsCol, _ := app.FindCollectionByNameOrId("pnls")
	pnls, _ := app.FindAllRecords(pnlsCol)
	if len(pnls) != 1 {
		t.Errorf("expected 1 pnl after idempotent seed, got %d", len(pnls))
	}

	// Should still have exactly 5 materials
	materialsCol, _ := app.FindCollectionByNameOrId("materials")
	materials, _ := app.FindAllRecords(materialsCol)
	if len(materials) != 5 {
		t.Errorf("expected 5 materials after idempotent seed, got %d", len(materials))
	}
}

func TestSeed_FormulaComponents(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	formulasCol, _ := app.FindCollectionByNameOrId("formulas")
	formulas, _ := app.FindRecordsByFilter(
		formulasCol,
		"name = {:n}",
		"", 1, 0,
		map[string]any{"n": "C35/45 XA2"},
	)
	if len(formulas) == 0 {
		t.Fatal("C35/45 XA2 formula not found")
	}

	// The XA2 recipe carries 5 components (fly ash included)
	componentsCol, _ := app.FindCollectionByNameOrId("formula_components")
	components, _ := app.FindRecordsByFilter(
		componentsCol,
		"formula = {:id}",
		"", 0, 0,
		map[string]any{"id": formulas[0].Id},
	)
	if len(components) != 5 {
		t.Errorf("expected 5 components on C35/45 XA2, got %d", len(components))
	}
}

func TestSeed_BaseCaseVariantDetails(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	variantsCol, _ := app.FindCollectionByNameOrId("variants")
	variants, _ := app.FindRecordsByFilter(
		variantsCol,
		"name = {:n}",
		"", 1, 0,
		map[string]any{"n": "Base case"},
	)
	if len(variants) == 0 {
		t.Fatal("Base case variant not found")
	}
	variant := variants[0]

	if variant.GetString("status") != "submitted" {
		t.Errorf("status = %q, want %q", variant.GetString("status"), "submitted")
	}
	if variant.GetFloat("majoration_pct") != 8 {
		t.Errorf("majoration_pct = %v, want 8", variant.GetFloat("majoration_pct"))
	}

	// All 7 cost sections were written for the base case
	sections := []string{
		"transport_costs", "plant_costs", "maintenance_costs",
		"per_m3_costs", "monthly_costs", "one_off_costs", "staffing_costs",
	}
	for _, section := range sections {
		col, _ := app.FindCollectionByNameOrId(section)
		records, _ := app.FindRecordsByFilter(
			col,
			"variant = {:id}",
			"", 1, 0,
			map[string]any{"id": variant.Id},
		)
		if len(records) == 0 {
			t.Errorf("base case: missing %s record", section)
		}
	}

	// 3 misc cost lines, one of them percent-of-revenue
	miscCol, _ := app.FindCollectionByNameOrId("misc_costs")
	misc, _ := app.FindRecordsByFilter(
		miscCol,
		"variant = {:id}",
		"", 0, 0,
		map[string]any{"id": variant.Id},
	)
	if len(misc) != 3 {
		t.Errorf("expected 3 misc costs on base case, got %d", len(misc))
	}
	foundPct := false
	for _, m := range misc {
		if m.GetString("unit") == "pct_revenue" {
			foundPct = true
		}
	}
	if !foundPct {
		t.Error("expected a pct_revenue misc cost on base case")
	}
}

func TestSeed_SkipsWhenDataExists(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// Create a P&L first (not via Seed)
	testhelpers.CreateTestPnl(t, app, "Pre-existing P&L")

	// Seed should skip because pnl data already exists
	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	pnlsCol, _ := app.FindCollectionByNameOrId("pnls")
	pnls, _ := app.FindAllRecords(pnlsCol)
	if len(pnls) != 1 {
		t.Errorf("expected 1 pnl (pre-existing only), got %d", len(pnls))
	}
	if pnls[0].GetString("name") != "Pre-existing P&L" {
		t.Errorf("expected pre-existing pnl, got %q", pnls[0].GetString("name"))
	}

	// Catalogs untouched too
	materialsCol, _ := app.FindCollectionByNameOrId("materials")
	materials, _ := app.FindAllRecords(materialsCol)
	if len(materials) != 0 {
		t.Errorf("expected 0 materials when seed skipped, got %d", len(materials))
	}
}
