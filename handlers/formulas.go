package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"plantpnl/services"
	"plantpnl/templates"
)

// HandleFormulaList renders the formula catalog.
func HandleFormulaList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		formulasCol, err := app.FindCollectionByNameOrId("formulas")
		if err != nil {
			log.Printf("formulas: could not find formulas collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindAllRecords(formulasCol)
		if err != nil {
			log.Printf("formulas: could not query formulas: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		componentsCol, _ := app.FindCollectionByNameOrId("formula_components")

		var items []templates.FormulaListItem
		for _, rec := range records {
			var componentCount int
			if componentsCol != nil {
				components, err := app.FindRecordsByFilter(
					componentsCol,
					"formula = {:formulaId}",
					"", 0, 0,
					map[string]any{"formulaId": rec.Id},
				)
				if err == nil {
					componentCount = len(components)
				}
			}

			items = append(items, templates.FormulaListItem{
				ID:             rec.Id,
				Name:           rec.GetString("name"),
				Code:           rec.GetString("code"),
				ComponentCount: componentCount,
			})
		}

		data := templates.FormulaListData{Items: items}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.FormulaListContent(data)
		} else {
			component = templates.FormulaListPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleFormulaAdd creates a catalog formula.
func HandleFormulaAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return ErrorToast(e, http.StatusBadRequest, "Formula name is required")
		}

		formulasCol, err := app.FindCollectionByNameOrId("formulas")
		if err != nil {
			log.Printf("formulas: could not find formulas collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(formulasCol)
		record.Set("name", name)
		record.Set("code", strings.TrimSpace(e.Request.FormValue("code")))

		if err := app.Save(record); err != nil {
			log.Printf("formulas: could not save formula: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Formula added")
		e.Response.Header().Set("HX-Redirect", "/formulas/"+record.Id)
		return e.String(http.StatusOK, "")
	}
}

// HandleFormulaView renders one formula's recipe.
func HandleFormulaView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		rec, err := app.FindRecordById("formulas", id)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Formula not found")
		}

		data := templates.FormulaViewData{
			ID:   rec.Id,
			Name: rec.GetString("name"),
			Code: rec.GetString("code"),
		}

		components, _ := app.FindRecordsByFilter(
			"formula_components",
			"formula = {:formulaId}",
			"", 0, 0,
			map[string]any{"formulaId": id},
		)
		for _, c := range components {
			row := templates.FormulaComponentRow{
				ID:  c.Id,
				Qty: services.FormatQty(c.GetFloat("qty_per_m3")),
			}
			if material, err := app.FindRecordById("materials", c.GetString("material")); err == nil {
				row.MaterialName = material.GetString("name")
				row.UOM = material.GetString("uom")
			}
			data.Components = append(data.Components, row)
		}

		materials, _ := app.FindAllRecords("materials")
		for _, m := range materials {
			data.MaterialOptions = append(data.MaterialOptions, templates.MaterialOption{
				ID:   m.Id,
				Name: m.GetString("name"),
			})
		}

		component := templates.FormulaViewPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleFormulaDelete removes a catalog formula and its components.
func HandleFormulaDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		rec, err := app.FindRecordById("formulas", id)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Formula not found")
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("formulas: could not delete formula %s: %v", id, err)
			return ErrorToast(e, http.StatusConflict, "Formula is still used by a variant")
		}

		SetToast(e, "success", "Formula deleted")
		return e.String(http.StatusOK, "")
	}
}

// HandleFormulaComponentAdd adds a material dosage to a formula's recipe.
func HandleFormulaComponentAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		formulaID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("formulas", formulaID); err != nil {
			return ErrorToast(e, http.StatusNotFound, "Formula not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		materialID := e.Request.FormValue("material")
		if _, err := app.FindRecordById("materials", materialID); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Choose a material")
		}

		componentsCol, err := app.FindCollectionByNameOrId("formula_components")
		if err != nil {
			log.Printf("formulas: could not find formula_components collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(componentsCol)
		record.Set("formula", formulaID)
		record.Set("material", materialID)
		record.Set("qty_per_m3", services.ParseNumeric(e.Request.FormValue("qty_per_m3")))

		if err := app.Save(record); err != nil {
			log.Printf("formulas: could not save component: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Component added")
		e.Response.Header().Set("HX-Redirect", "/formulas/"+formulaID)
		return e.String(http.StatusOK, "")
	}
}

// HandleFormulaComponentDelete removes a dosage from a recipe.
func HandleFormulaComponentDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		rec, err := app.FindRecordById("formula_components", id)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Component not found")
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("formulas: could not delete component %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Component removed")
		return e.String(http.StatusOK, "")
	}
}
