// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"plantpnl/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestPnl creates a P&L record with the given name and returns it.
func CreateTestPnl(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("pnls")
	if err != nil {
		t.Fatalf("failed to find pnls collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("client", "Test Client SA")
	record.Set("status", "active")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test pnl: %v", err)
	}

	return record
}

// CreateTestContract creates a contract record linked to a P&L and returns it.
func CreateTestContract(t *testing.T, app *pocketbase.PocketBase, pnlID, name string, durationMonths float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("contracts")
	if err != nil {
		t.Fatalf("failed to find contracts collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("pnl", pnlID)
	record.Set("name", name)
	record.Set("duration_months", durationMonths)
	record.Set("concrete_by", "supplier")
	record.Set("electricity_by", "client")
	record.Set("water_by", "client")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test contract: %v", err)
	}

	return record
}

// CreateTestVariant creates a variant record linked to a contract.
func CreateTestVariant(t *testing.T, app *pocketbase.PocketBase, contractID, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("variants")
	if err != nil {
		t.Fatalf("failed to find variants collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("contract", contractID)
	record.Set("name", name)
	record.Set("status", "draft")
	record.Set("majoration_pct", 0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test variant: %v", err)
	}

	return record
}

// CreateTestMaterial creates a catalog material with the given unit price.
func CreateTestMaterial(t *testing.T, app *pocketbase.PocketBase, name, uom string, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		t.Fatalf("failed to find materials collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("uom", uom)
	record.Set("unit_price", unitPrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material: %v", err)
	}

	return record
}

// CreateTestFormula creates a concrete formula record.
func CreateTestFormula(t *testing.T, app *pocketbase.PocketBase, name, code string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("formulas")
	if err != nil {
		t.Fatalf("failed to find formulas collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("code", code)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test formula: %v", err)
	}

	return record
}

// CreateTestFormulaComponent links a material into a formula's recipe.
func CreateTestFormulaComponent(t *testing.T, app *pocketbase.PocketBase, formulaID, materialID string, qtyPerM3 float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("formula_components")
	if err != nil {
		t.Fatalf("failed to find formula_components collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("formula", formulaID)
	record.Set("material", materialID)
	record.Set("qty_per_m3", qtyPerM3)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test formula component: %v", err)
	}

	return record
}

// CreateTestFormulaLine adds a formula to a variant's sales plan.
func CreateTestFormulaLine(t *testing.T, app *pocketbase.PocketBase, variantID, formulaID string, sortOrder int, volumeM3, momd float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("formula_lines")
	if err != nil {
		t.Fatalf("failed to find formula_lines collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("variant", variantID)
	record.Set("formula", formulaID)
	record.Set("sort_order", sortOrder)
	record.Set("volume_m3", volumeM3)
	record.Set("momd", momd)
	record.Set("quote_surcharge", 0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test formula line: %v", err)
	}

	return record
}

// CreateTestMaterialOverride sets a variant-scoped price for a material.
func CreateTestMaterialOverride(t *testing.T, app *pocketbase.PocketBase, variantID, materialID string, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("material_overrides")
	if err != nil {
		t.Fatalf("failed to find material_overrides collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("variant", variantID)
	record.Set("material", materialID)
	record.Set("unit_price", unitPrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material override: %v", err)
	}

	return record
}

// CreateTestMiscCost adds a miscellaneous cost line to a variant.
func CreateTestMiscCost(t *testing.T, app *pocketbase.PocketBase, variantID, label, unit string, value float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("misc_costs")
	if err != nil {
		t.Fatalf("failed to find misc_costs collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("variant", variantID)
	record.Set("label", label)
	record.Set("unit", unit)
	record.Set("value", value)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test misc cost: %v", err)
	}

	return record
}

// SetTestVariantSection upserts the singleton cost-section record of a variant
// (transport_costs, plant_costs, staffing_costs, ...) with the given fields.
func SetTestVariantSection(t *testing.T, app *pocketbase.PocketBase, collection, variantID string, fields map[string]float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collection)
	if err != nil {
		t.Fatalf("failed to find %s collection: %v", collection, err)
	}

	existing, err := app.FindRecordsByFilter(col, "variant = {:variant}", "", 1, 0, map[string]any{"variant": variantID})
	if err != nil {
		t.Fatalf("failed to query %s: %v", collection, err)
	}

	var record *core.Record
	if len(existing) > 0 {
		record = existing[0]
	} else {
		record = core.NewRecord(col)
		record.Set("variant", variantID)
	}
	for field, value := range fields {
		record.Set(field, value)
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test %s: %v", collection, err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
