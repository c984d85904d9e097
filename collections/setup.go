package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the P&L hierarchy (pnls, contracts,
// variants), the material/formula catalogs and every per-variant cost
// collection exist.
func Setup(app *pocketbase.PocketBase) {
	pnls := ensureCollection(app, "pnls", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "client", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"draft", "active", "archived"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	contracts := ensureCollection(app, "contracts", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "pnl",
			Required:      true,
			CollectionId:  pnls.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "duration_months", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "concrete_by",
			Required:  false,
			Values:    []string{"client", "supplier"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "electricity_by",
			Required:  false,
			Values:    []string{"client", "supplier"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "water_by",
			Required:  false,
			Values:    []string{"client", "supplier"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	variants := ensureCollection(app, "variants", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "contract",
			Required:      true,
			CollectionId:  contracts.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		// not required: rows predating the status field are backfilled on startup
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  false,
			Values:    []string{"draft", "submitted", "retained", "rejected"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "majoration_pct", Required: false})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	materials := ensureCollection(app, "materials", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "uom", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	formulas := ensureCollection(app, "formulas", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "code", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "formula_components", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "formula",
			Required:      true,
			CollectionId:  formulas.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:          "material",
			Required:      true,
			CollectionId:  materials.Id,
			CascadeDelete: false,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "qty_per_m3", Required: true})
	})

	ensureCollection(app, "formula_lines", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "variant",
			Required:      true,
			CollectionId:  variants.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:          "formula",
			Required:      true,
			CollectionId:  formulas.Id,
			CascadeDelete: false,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.NumberField{Name: "volume_m3", Required: false})
		c.Fields.Add(&core.NumberField{Name: "momd", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quote_surcharge", Required: false})
	})

	ensureCollection(app, "material_overrides", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "variant",
			Required:      true,
			CollectionId:  variants.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:          "material",
			Required:      true,
			CollectionId:  materials.Id,
			CascadeDelete: false,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Required: false})
	})

	ensureVariantSection(app, variants, "transport_costs", []string{
		"avg_price_m3", "pumped_pct", "pump_purchase_m3", "pump_sale_m3",
	})
	ensureVariantSection(app, variants, "plant_costs", []string{
		"monthly_amortization", "setup_weeks",
	})
	ensureVariantSection(app, variants, "maintenance_costs", []string{
		"spare_parts", "servicing", "wear_parts", "calibration",
	})
	ensureVariantSection(app, variants, "per_m3_costs", []string{
		"water", "electricity", "additives", "loader_fuel",
	})
	ensureVariantSection(app, variants, "monthly_costs", []string{
		"rent", "site_facilities", "insurance", "telecom", "vehicles",
	})
	ensureVariantSection(app, variants, "one_off_costs", []string{
		"installation", "dismantling", "transport_in", "transport_out", "commissioning",
	})
	ensureVariantSection(app, variants, "staffing_costs", []string{
		"manager_count", "manager_cost",
		"operator_count", "operator_cost",
		"lab_count", "lab_cost",
		"driver_count", "driver_cost",
	})

	ensureCollection(app, "misc_costs", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "variant",
			Required:      true,
			CollectionId:  variants.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "label", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "unit",
			Required:  true,
			Values:    []string{"per_m3", "per_month", "lump_sum", "pct_revenue"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "value", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "quotes", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "variant",
			Required:      true,
			CollectionId:  variants.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "number", Required: true})
		c.Fields.Add(&core.TextField{Name: "issue_date", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})
}

// ensureVariantSection creates a singleton cost-section collection: a variant
// relation plus a flat list of numeric fields.
func ensureVariantSection(app *pocketbase.PocketBase, variants *core.Collection, name string, fields []string) {
	ensureCollection(app, name, func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "variant",
			Required:      true,
			CollectionId:  variants.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		for _, field := range fields {
			c.Fields.Add(&core.NumberField{Name: field, Required: false})
		}
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
