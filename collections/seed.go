package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type materialDef struct {
	name      string
	uom       string
	unitPrice float64
}

type componentDef struct {
	material string // material name, resolved to id at insert time
	qtyPerM3 float64
}

type formulaDef struct {
	name       string
	code       string
	components []componentDef
}

type formulaLineDef struct {
	formula        string // formula name
	sortOrder      int
	volumeM3       float64
	momd           float64
	quoteSurcharge float64
}

type miscCostDef struct {
	label string
	unit  string
	value float64
}

type variantDef struct {
	name          string
	status        string
	majorationPct float64
	lines         []formulaLineDef
	misc          []miscCostDef
	transport     map[string]float64
	plant         map[string]float64
	maintenance   map[string]float64
	perM3         map[string]float64
	monthly       map[string]float64
	oneOff        map[string]float64
	staffing      map[string]float64
}

type contractDef struct {
	name           string
	durationMonths float64
	concreteBy     string
	electricityBy  string
	waterBy        string
	variants       []variantDef
}

// Seed populates the collections with a realistic demo P&L: a highway
// viaduct site with one contract and two pricing variants. It is safe to
// call on every startup because it returns early if any P&L records exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if pnls already exist ──────────────────────
	pnlsCol, err := app.FindCollectionByNameOrId("pnls")
	if err != nil {
		return fmt.Errorf("seed: could not find pnls collection: %w", err)
	}
	existing, err := app.FindAllRecords(pnlsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query pnls: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: pnls collection is empty – inserting seed data …")

	materials := []materialDef{
		{"CEM II/A-L 42.5", "t", 118},
		{"Sand 0/4", "t", 22},
		{"Gravel 4/20", "t", 19.5},
		{"Plasticizer", "L", 1.45},
		{"Fly ash", "t", 48},
	}

	formulas := []formulaDef{
		{
			name: "C25/30 XC2", code: "B25",
			components: []componentDef{
				{"CEM II/A-L 42.5", 0.28},
				{"Sand 0/4", 0.82},
				{"Gravel 4/20", 1.05},
				{"Plasticizer", 1.8},
			},
		},
		{
			name: "C30/37 XF1", code: "B30",
			components: []componentDef{
				{"CEM II/A-L 42.5", 0.33},
				{"Sand 0/4", 0.80},
				{"Gravel 4/20", 1.02},
				{"Plasticizer", 2.2},
			},
		},
		{
			name: "C35/45 XA2", code: "B35",
			components: []componentDef{
				{"CEM II/A-L 42.5", 0.36},
				{"Fly ash", 0.06},
				{"Sand 0/4", 0.78},
				{"Gravel 4/20", 1.00},
				{"Plasticizer", 2.6},
			},
		},
	}

	contract := contractDef{
		name:           "Lot 3 - Viaduct north access",
		durationMonths: 18,
		concreteBy:     "supplier",
		electricityBy:  "client",
		waterBy:        "client",
		variants: []variantDef{
			{
				name:          "Base case",
				status:        "submitted",
				majorationPct: 8,
				lines: []formulaLineDef{
					{"C25/30 XC2", 1, 14500, 4.5, 2},
					{"C30/37 XF1", 2, 9800, 5.2, 2},
					{"C35/45 XA2", 3, 2400, 6.8, 3},
				},
				misc: []miscCostDef{
					{"Site lab testing", "per_month", 850},
					{"Wheel washer", "lump_sum", 6500},
					{"Head-office overhead", "pct_revenue", 4},
				},
				transport: map[string]float64{
					"avg_price_m3": 11.5, "pumped_pct": 35,
					"pump_purchase_m3": 6.5, "pump_sale_m3": 9.8,
				},
				plant: map[string]float64{"monthly_amortization": 5200, "setup_weeks": 5},
				maintenance: map[string]float64{
					"spare_parts": 650, "servicing": 420, "wear_parts": 380, "calibration": 90,
				},
				perM3: map[string]float64{
					"water": 0.35, "electricity": 0.95, "additives": 0.20, "loader_fuel": 0.55,
				},
				monthly: map[string]float64{
					"rent": 1800, "site_facilities": 520, "insurance": 430,
					"telecom": 85, "vehicles": 740,
				},
				oneOff: map[string]float64{
					"installation": 46000, "dismantling": 31000,
					"transport_in": 14500, "transport_out": 14500, "commissioning": 5200,
				},
				staffing: map[string]float64{
					"manager_count": 1, "manager_cost": 5600,
					"operator_count": 2, "operator_cost": 3400,
					"lab_count": 1, "lab_cost": 3100,
					"driver_count": 2, "driver_cost": 2900,
				},
			},
			{
				name:          "Reduced staffing",
				status:        "draft",
				majorationPct: 8,
				lines: []formulaLineDef{
					{"C25/30 XC2", 1, 14500, 4.5, 2},
					{"C30/37 XF1", 2, 9800, 5.2, 2},
				},
				transport: map[string]float64{
					"avg_price_m3": 11.5, "pumped_pct": 35,
					"pump_purchase_m3": 6.5, "pump_sale_m3": 9.8,
				},
				plant: map[string]float64{"monthly_amortization": 5200, "setup_weeks": 5},
				staffing: map[string]float64{
					"manager_count": 0.5, "manager_cost": 5600,
					"operator_count": 2, "operator_cost": 3400,
					"driver_count": 2, "driver_cost": 2900,
				},
			},
		},
	}

	// ── insert materials and formulas ────────────────────────────────
	materialIDs := map[string]string{}
	materialsCol, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return fmt.Errorf("seed: could not find materials collection: %w", err)
	}
	for _, m := range materials {
		rec := core.NewRecord(materialsCol)
		rec.Set("name", m.name)
		rec.Set("uom", m.uom)
		rec.Set("unit_price", m.unitPrice)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: could not save material %q: %w", m.name, err)
		}
		materialIDs[m.name] = rec.Id
	}

	formulaIDs := map[string]string{}
	formulasCol, err := app.FindCollectionByNameOrId("formulas")
	if err != nil {
		return fmt.Errorf("seed: could not find formulas collection: %w", err)
	}
	componentsCol, err := app.FindCollectionByNameOrId("formula_components")
	if err != nil {
		return fmt.Errorf("seed: could not find formula_components collection: %w", err)
	}
	for _, f := range formulas {
		rec := core.NewRecord(formulasCol)
		rec.Set("name", f.name)
		rec.Set("code", f.code)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: could not save formula %q: %w", f.name, err)
		}
		formulaIDs[f.name] = rec.Id

		for _, c := range f.components {
			comp := core.NewRecord(componentsCol)
			comp.Set("formula", rec.Id)
			comp.Set("material", materialIDs[c.material])
			comp.Set("qty_per_m3", c.qtyPerM3)
			if err := app.Save(comp); err != nil {
				return fmt.Errorf("seed: could not save component of %q: %w", f.name, err)
			}
		}
	}

	// ── insert the P&L hierarchy ─────────────────────────────────────
	pnl := core.NewRecord(pnlsCol)
	pnl.Set("name", "A89 extension - Chantier Est")
	pnl.Set("client", "Grand Chantier SA")
	pnl.Set("status", "active")
	if err := app.Save(pnl); err != nil {
		return fmt.Errorf("seed: could not save pnl: %w", err)
	}

	contractsCol, err := app.FindCollectionByNameOrId("contracts")
	if err != nil {
		return fmt.Errorf("seed: could not find contracts collection: %w", err)
	}
	contractRec := core.NewRecord(contractsCol)
	contractRec.Set("pnl", pnl.Id)
	contractRec.Set("name", contract.name)
	contractRec.Set("duration_months", contract.durationMonths)
	contractRec.Set("concrete_by", contract.concreteBy)
	contractRec.Set("electricity_by", contract.electricityBy)
	contractRec.Set("water_by", contract.waterBy)
	if err := app.Save(contractRec); err != nil {
		return fmt.Errorf("seed: could not save contract: %w", err)
	}

	variantsCol, err := app.FindCollectionByNameOrId("variants")
	if err != nil {
		return fmt.Errorf("seed: could not find variants collection: %w", err)
	}
	linesCol, err := app.FindCollectionByNameOrId("formula_lines")
	if err != nil {
		return fmt.Errorf("seed: could not find formula_lines collection: %w", err)
	}
	miscCol, err := app.FindCollectionByNameOrId("misc_costs")
	if err != nil {
		return fmt.Errorf("seed: could not find misc_costs collection: %w", err)
	}

	for _, v := range contract.variants {
		variantRec := core.NewRecord(variantsCol)
		variantRec.Set("contract", contractRec.Id)
		variantRec.Set("name", v.name)
		variantRec.Set("status", v.status)
		variantRec.Set("majoration_pct", v.majorationPct)
		if err := app.Save(variantRec); err != nil {
			return fmt.Errorf("seed: could not save variant %q: %w", v.name, err)
		}

		for _, l := range v.lines {
			line := core.NewRecord(linesCol)
			line.Set("variant", variantRec.Id)
			line.Set("formula", formulaIDs[l.formula])
			line.Set("sort_order", l.sortOrder)
			line.Set("volume_m3", l.volumeM3)
			line.Set("momd", l.momd)
			line.Set("quote_surcharge", l.quoteSurcharge)
			if err := app.Save(line); err != nil {
				return fmt.Errorf("seed: could not save formula line: %w", err)
			}
		}

		for _, mc := range v.misc {
			rec := core.NewRecord(miscCol)
			rec.Set("variant", variantRec.Id)
			rec.Set("label", mc.label)
			rec.Set("unit", mc.unit)
			rec.Set("value", mc.value)
			if err := app.Save(rec); err != nil {
				return fmt.Errorf("seed: could not save misc cost %q: %w", mc.label, err)
			}
		}

		sections := map[string]map[string]float64{
			"transport_costs":   v.transport,
			"plant_costs":       v.plant,
			"maintenance_costs": v.maintenance,
			"per_m3_costs":      v.perM3,
			"monthly_costs":     v.monthly,
			"one_off_costs":     v.oneOff,
			"staffing_costs":    v.staffing,
		}
		for colName, fields := range sections {
			if fields == nil {
				continue
			}
			col, err := app.FindCollectionByNameOrId(colName)
			if err != nil {
				return fmt.Errorf("seed: could not find %s collection: %w", colName, err)
			}
			rec := core.NewRecord(col)
			rec.Set("variant", variantRec.Id)
			for field, value := range fields {
				rec.Set(field, value)
			}
			if err := app.Save(rec); err != nil {
				return fmt.Errorf("seed: could not save %s: %w", colName, err)
			}
		}
	}

	log.Println("seed: done.")
	return nil
}
