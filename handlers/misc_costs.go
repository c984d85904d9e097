package handlers

import (
	"log"
	"net/http"
	"slices"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"plantpnl/services"
)

// HandleMiscCostAdd appends a miscellaneous cost line to a variant.
func HandleMiscCostAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		variantID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("variants", variantID); err != nil {
			return ErrorToast(e, http.StatusNotFound, "Variant not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		label := strings.TrimSpace(e.Request.FormValue("label"))
		if label == "" {
			return ErrorToast(e, http.StatusBadRequest, "Label is required")
		}
		unit := e.Request.FormValue("unit")
		if !slices.Contains(services.MiscUnitOptions, unit) {
			unit = services.MiscUnitLumpSum
		}

		miscCol, err := app.FindCollectionByNameOrId("misc_costs")
		if err != nil {
			log.Printf("misc_costs: could not find collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(miscCol)
		record.Set("variant", variantID)
		record.Set("label", label)
		record.Set("unit", unit)
		record.Set("value", services.ParseNumeric(e.Request.FormValue("value")))

		if err := app.Save(record); err != nil {
			log.Printf("misc_costs: could not save cost: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Cost added")
		NotifyKpisChanged(e)
		e.Response.Header().Set("HX-Redirect", "/variants/"+variantID)
		return e.String(http.StatusOK, "")
	}
}

// HandleMiscCostDelete removes a miscellaneous cost line.
func HandleMiscCostDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		rec, err := app.FindRecordById("misc_costs", id)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Cost not found")
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("misc_costs: could not delete cost %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Cost removed")
		NotifyKpisChanged(e)
		return e.String(http.StatusOK, "")
	}
}
