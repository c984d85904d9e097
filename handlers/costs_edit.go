package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"plantpnl/services"
	"plantpnl/templates"
)

type costFieldSpec struct {
	name  string
	label string
}

type costSectionSpec struct {
	collection string
	title      string
	fields     []costFieldSpec
}

// costSections drives both the costs form and its save handler. The field
// names match the collection columns one to one.
var costSections = []costSectionSpec{
	{
		collection: "transport_costs",
		title:      "Transport & pumping",
		fields: []costFieldSpec{
			{"avg_price_m3", "Avg transport price / m³"},
			{"pumped_pct", "Pumped share (%)"},
			{"pump_purchase_m3", "Pump purchase / m³"},
			{"pump_sale_m3", "Pump sale / m³"},
		},
	},
	{
		collection: "plant_costs",
		title:      "Plant",
		fields: []costFieldSpec{
			{"monthly_amortization", "Monthly amortization"},
			{"setup_weeks", "Setup (weeks)"},
		},
	},
	{
		collection: "maintenance_costs",
		title:      "Maintenance (monthly)",
		fields: []costFieldSpec{
			{"spare_parts", "Spare parts"},
			{"servicing", "Servicing"},
			{"wear_parts", "Wear parts"},
			{"calibration", "Calibration"},
		},
	},
	{
		collection: "per_m3_costs",
		title:      "Per-m³ consumables",
		fields: []costFieldSpec{
			{"water", "Water"},
			{"electricity", "Electricity"},
			{"additives", "Additives"},
			{"loader_fuel", "Loader fuel"},
		},
	},
	{
		collection: "monthly_costs",
		title:      "Monthly site costs",
		fields: []costFieldSpec{
			{"rent", "Rent"},
			{"site_facilities", "Site facilities"},
			{"insurance", "Insurance"},
			{"telecom", "Telecom"},
			{"vehicles", "Vehicles"},
		},
	},
	{
		collection: "one_off_costs",
		title:      "One-off costs",
		fields: []costFieldSpec{
			{"installation", "Installation"},
			{"dismantling", "Dismantling"},
			{"transport_in", "Transport in"},
			{"transport_out", "Transport out"},
			{"commissioning", "Commissioning"},
		},
	},
	{
		collection: "staffing_costs",
		title:      "Staffing (headcount × monthly cost)",
		fields: []costFieldSpec{
			{"manager_count", "Managers"},
			{"manager_cost", "Manager cost / month"},
			{"operator_count", "Operators"},
			{"operator_cost", "Operator cost / month"},
			{"lab_count", "Lab technicians"},
			{"lab_cost", "Lab cost / month"},
			{"driver_count", "Drivers"},
			{"driver_cost", "Driver cost / month"},
		},
	},
}

// HandleCostsForm renders all cost sections of a variant as one form.
func HandleCostsForm(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		variantID := e.Request.PathValue("id")
		variant, err := app.FindRecordById("variants", variantID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Variant not found")
		}

		data := templates.CostsFormData{
			VariantID:   variantID,
			VariantName: variant.GetString("name"),
		}

		for _, spec := range costSections {
			section := templates.CostSection{
				Title:  spec.title,
				Prefix: spec.collection,
			}

			var rec *core.Record
			records, err := app.FindRecordsByFilter(
				spec.collection,
				"variant = {:variantId}",
				"", 1, 0,
				map[string]any{"variantId": variantID},
			)
			if err == nil && len(records) > 0 {
				rec = records[0]
			}

			for _, field := range spec.fields {
				value := "0"
				if rec != nil {
					value = services.FormatQty(services.ToFiniteNumber(rec.GetFloat(field.name)))
				}
				section.Fields = append(section.Fields, templates.CostField{
					Name:  field.name,
					Label: field.label,
					Value: value,
				})
			}
			data.Sections = append(data.Sections, section)
		}

		component := templates.CostsFormPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleCostsSave upserts every cost-section record of a variant from the
// combined form. Field names arrive as "<collection>.<column>".
func HandleCostsSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		variantID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("variants", variantID); err != nil {
			return ErrorToast(e, http.StatusNotFound, "Variant not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		for _, spec := range costSections {
			col, err := app.FindCollectionByNameOrId(spec.collection)
			if err != nil {
				log.Printf("costs_save: could not find %s collection: %v", spec.collection, err)
				return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}

			var rec *core.Record
			records, err := app.FindRecordsByFilter(
				col,
				"variant = {:variantId}",
				"", 1, 0,
				map[string]any{"variantId": variantID},
			)
			if err == nil && len(records) > 0 {
				rec = records[0]
			} else {
				rec = core.NewRecord(col)
				rec.Set("variant", variantID)
			}

			for _, field := range spec.fields {
				raw := e.Request.FormValue(spec.collection + "." + field.name)
				rec.Set(field.name, services.ParseNumeric(raw))
			}

			if err := app.Save(rec); err != nil {
				log.Printf("costs_save: could not save %s for variant %s: %v", spec.collection, variantID, err)
				return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
		}

		SetToast(e, "success", "Costs saved")
		NotifyKpisChanged(e)
		e.Response.Header().Set("HX-Redirect", "/variants/"+variantID)
		return e.String(http.StatusOK, "")
	}
}
