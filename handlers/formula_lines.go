package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"plantpnl/services"
)

// HandleFormulaLineAdd appends a formula line to a variant's sales plan.
func HandleFormulaLineAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		variantID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("variants", variantID); err != nil {
			return ErrorToast(e, http.StatusNotFound, "Variant not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		formulaID := e.Request.FormValue("formula")
		if _, err := app.FindRecordById("formulas", formulaID); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Choose a formula")
		}

		linesCol, err := app.FindCollectionByNameOrId("formula_lines")
		if err != nil {
			log.Printf("formula_lines: could not find collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		existing, _ := app.FindRecordsByFilter(
			linesCol,
			"variant = {:variantId}",
			"", 0, 0,
			map[string]any{"variantId": variantID},
		)

		record := core.NewRecord(linesCol)
		record.Set("variant", variantID)
		record.Set("formula", formulaID)
		record.Set("sort_order", len(existing)+1)
		record.Set("volume_m3", services.ParseNumeric(e.Request.FormValue("volume_m3")))
		record.Set("momd", services.ParseNumeric(e.Request.FormValue("momd")))
		record.Set("quote_surcharge", services.ParseNumeric(e.Request.FormValue("quote_surcharge")))

		if err := app.Save(record); err != nil {
			log.Printf("formula_lines: could not save line: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Formula line added")
		NotifyKpisChanged(e)
		e.Response.Header().Set("HX-Redirect", "/variants/"+variantID)
		return e.String(http.StatusOK, "")
	}
}

// HandleFormulaLineUpdate patches the numeric fields of a line. The inline
// cells post one field at a time, so only fields present in the form change.
func HandleFormulaLineUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		rec, err := app.FindRecordById("formula_lines", id)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Formula line not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		for _, field := range []string{"volume_m3", "momd", "quote_surcharge"} {
			if values, ok := e.Request.Form[field]; ok && len(values) > 0 {
				rec.Set(field, services.ParseNumeric(values[0]))
			}
		}

		if err := app.Save(rec); err != nil {
			log.Printf("formula_lines: could not update line %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		NotifyKpisChanged(e)
		return e.String(http.StatusOK, "")
	}
}

// HandleFormulaLineDelete removes one line from a variant's sales plan.
func HandleFormulaLineDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		rec, err := app.FindRecordById("formula_lines", id)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Formula line not found")
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("formula_lines: could not delete line %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Formula line removed")
		NotifyKpisChanged(e)
		return e.String(http.StatusOK, "")
	}
}
