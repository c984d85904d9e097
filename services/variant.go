package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// FormulaComponent is one (material, dosage) pair of a concrete mix.
type FormulaComponent struct {
	MaterialID string
	QtyPerM3   float64
}

// FormulaLine declares that a variant sells a given volume of one formula,
// with a manual per-m3 adjustment (MOMD) and an optional quote-only surcharge.
type FormulaLine struct {
	FormulaID      string
	FormulaName    string
	VolumeM3       float64
	MOMD           float64
	QuoteSurcharge float64
	Components     []FormulaComponent
}

// MaterialPrice carries the catalog price of a material and, when the variant
// overrides it, the override price.
type MaterialPrice struct {
	MaterialID    string
	Name          string
	CatalogPrice  float64
	OverridePrice *float64
}

// TransportParams hold delivery and pumping parameters for a variant.
type TransportParams struct {
	AvgPriceM3   float64
	PumpedPct    float64
	PumpPurchase float64
	PumpSale     float64
}

// PlantParams hold batching-plant parameters for a variant.
type PlantParams struct {
	MonthlyAmortization float64
	SetupWeeks          float64
}

// VariantGraph is a fully hydrated snapshot of one pricing variant: every
// nested cost input the KPI aggregator and the quote builders consume. It is
// passed by value and never mutated.
type VariantGraph struct {
	VariantID     string
	Name          string
	Status        string
	Client        string
	ContractName  string
	MajorationPct float64

	FormulaLines []FormulaLine
	Materials    []MaterialPrice
	Transport    TransportParams
	Plant        PlantParams
	Maintenance  MaintenanceCosts
	PerM3        PerM3Costs
	Monthly      MonthlyCosts
	OneOff       OneOffCosts
	Staffing     StaffingCosts
	MiscCosts    []MiscCost
}

// LoadVariantGraph hydrates a VariantGraph from the collections, walking the
// variant's contract and P&L for pass-through fields and loading every nested
// cost record. Missing cost-section records are treated as all-zero sections.
func LoadVariantGraph(app *pocketbase.PocketBase, variantID string) (VariantGraph, error) {
	variant, err := app.FindRecordById("variants", variantID)
	if err != nil {
		return VariantGraph{}, fmt.Errorf("variant %s not found: %w", variantID, err)
	}

	g := VariantGraph{
		VariantID:     variant.Id,
		Name:          variant.GetString("name"),
		Status:        variant.GetString("status"),
		MajorationPct: ToFiniteNumber(variant.GetFloat("majoration_pct")),
	}

	contract, err := app.FindRecordById("contracts", variant.GetString("contract"))
	if err == nil {
		g.ContractName = contract.GetString("name")
		if pnl, err := app.FindRecordById("pnls", contract.GetString("pnl")); err == nil {
			g.Client = pnl.GetString("client")
		}
	}

	// Formula lines with their mix compositions.
	lines, err := app.FindRecordsByFilter(
		"formula_lines",
		"variant = {:variantId}",
		"sort_order", 0, 0,
		map[string]any{"variantId": variantID},
	)
	if err != nil {
		return VariantGraph{}, fmt.Errorf("load formula lines: %w", err)
	}
	for _, line := range lines {
		fl := FormulaLine{
			FormulaID:      line.GetString("formula"),
			VolumeM3:       ToFiniteNumber(line.GetFloat("volume_m3")),
			MOMD:           ToFiniteNumber(line.GetFloat("momd")),
			QuoteSurcharge: ToFiniteNumber(line.GetFloat("quote_surcharge")),
		}
		if formula, err := app.FindRecordById("formulas", fl.FormulaID); err == nil {
			fl.FormulaName = formula.GetString("name")
		}
		components, err := app.FindRecordsByFilter(
			"formula_components",
			"formula = {:formulaId}",
			"", 0, 0,
			map[string]any{"formulaId": fl.FormulaID},
		)
		if err == nil {
			for _, c := range components {
				fl.Components = append(fl.Components, FormulaComponent{
					MaterialID: c.GetString("material"),
					QtyPerM3:   ToFiniteNumber(c.GetFloat("qty_per_m3")),
				})
			}
		}
		g.FormulaLines = append(g.FormulaLines, fl)
	}

	// Material catalog with per-variant overrides layered on top.
	overrides := map[string]float64{}
	overrideRecords, err := app.FindRecordsByFilter(
		"material_overrides",
		"variant = {:variantId}",
		"", 0, 0,
		map[string]any{"variantId": variantID},
	)
	if err == nil {
		for _, o := range overrideRecords {
			overrides[o.GetString("material")] = ToFiniteNumber(o.GetFloat("unit_price"))
		}
	}
	materials, err := app.FindAllRecords("materials")
	if err == nil {
		for _, m := range materials {
			mp := MaterialPrice{
				MaterialID:   m.Id,
				Name:         m.GetString("name"),
				CatalogPrice: ToFiniteNumber(m.GetFloat("unit_price")),
			}
			if price, ok := overrides[m.Id]; ok {
				p := price
				mp.OverridePrice = &p
			}
			g.Materials = append(g.Materials, mp)
		}
	}

	// Singleton cost records. A variant without one simply contributes zeros.
	if rec := findVariantRecord(app, "transport_costs", variantID); rec != nil {
		g.Transport = TransportParams{
			AvgPriceM3:   ToFiniteNumber(rec.GetFloat("avg_price_m3")),
			PumpedPct:    ToFiniteNumber(rec.GetFloat("pumped_pct")),
			PumpPurchase: ToFiniteNumber(rec.GetFloat("pump_purchase_m3")),
			PumpSale:     ToFiniteNumber(rec.GetFloat("pump_sale_m3")),
		}
	}
	if rec := findVariantRecord(app, "plant_costs", variantID); rec != nil {
		g.Plant = PlantParams{
			MonthlyAmortization: ToFiniteNumber(rec.GetFloat("monthly_amortization")),
			SetupWeeks:          ToFiniteNumber(rec.GetFloat("setup_weeks")),
		}
	}
	if rec := findVariantRecord(app, "maintenance_costs", variantID); rec != nil {
		g.Maintenance = MaintenanceCosts{
			SpareParts:  ToFiniteNumber(rec.GetFloat("spare_parts")),
			Servicing:   ToFiniteNumber(rec.GetFloat("servicing")),
			WearParts:   ToFiniteNumber(rec.GetFloat("wear_parts")),
			Calibration: ToFiniteNumber(rec.GetFloat("calibration")),
		}
	}
	if rec := findVariantRecord(app, "per_m3_costs", variantID); rec != nil {
		g.PerM3 = PerM3Costs{
			Water:       ToFiniteNumber(rec.GetFloat("water")),
			Electricity: ToFiniteNumber(rec.GetFloat("electricity")),
			Additives:   ToFiniteNumber(rec.GetFloat("additives")),
			LoaderFuel:  ToFiniteNumber(rec.GetFloat("loader_fuel")),
		}
	}
	if rec := findVariantRecord(app, "monthly_costs", variantID); rec != nil {
		g.Monthly = MonthlyCosts{
			Rent:           ToFiniteNumber(rec.GetFloat("rent")),
			SiteFacilities: ToFiniteNumber(rec.GetFloat("site_facilities")),
			Insurance:      ToFiniteNumber(rec.GetFloat("insurance")),
			Telecom:        ToFiniteNumber(rec.GetFloat("telecom")),
			Vehicles:       ToFiniteNumber(rec.GetFloat("vehicles")),
		}
	}
	if rec := findVariantRecord(app, "one_off_costs", variantID); rec != nil {
		g.OneOff = OneOffCosts{
			Installation:  ToFiniteNumber(rec.GetFloat("installation")),
			Dismantling:   ToFiniteNumber(rec.GetFloat("dismantling")),
			TransportIn:   ToFiniteNumber(rec.GetFloat("transport_in")),
			TransportOut:  ToFiniteNumber(rec.GetFloat("transport_out")),
			Commissioning: ToFiniteNumber(rec.GetFloat("commissioning")),
		}
	}
	if rec := findVariantRecord(app, "staffing_costs", variantID); rec != nil {
		g.Staffing = StaffingCosts{
			ManagerCount:  ToFiniteNumber(rec.GetFloat("manager_count")),
			ManagerCost:   ToFiniteNumber(rec.GetFloat("manager_cost")),
			OperatorCount: ToFiniteNumber(rec.GetFloat("operator_count")),
			OperatorCost:  ToFiniteNumber(rec.GetFloat("operator_cost")),
			LabCount:      ToFiniteNumber(rec.GetFloat("lab_count")),
			LabCost:       ToFiniteNumber(rec.GetFloat("lab_cost")),
			DriverCount:   ToFiniteNumber(rec.GetFloat("driver_count")),
			DriverCost:    ToFiniteNumber(rec.GetFloat("driver_cost")),
		}
	}

	miscRecords, err := app.FindRecordsByFilter(
		"misc_costs",
		"variant = {:variantId}",
		"created", 0, 0,
		map[string]any{"variantId": variantID},
	)
	if err == nil {
		for _, m := range miscRecords {
			g.MiscCosts = append(g.MiscCosts, MiscCost{
				Label: m.GetString("label"),
				Unit:  m.GetString("unit"),
				Value: ToFiniteNumber(m.GetFloat("value")),
			})
		}
	}

	return g, nil
}

// findVariantRecord returns the singleton cost record of a collection for a
// variant, or nil when none exists yet.
func findVariantRecord(app *pocketbase.PocketBase, collection, variantID string) *core.Record {
	records, err := app.FindRecordsByFilter(
		collection,
		"variant = {:variantId}",
		"", 1, 0,
		map[string]any{"variantId": variantID},
	)
	if err != nil || len(records) == 0 {
		return nil
	}
	return records[0]
}
