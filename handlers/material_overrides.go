package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"plantpnl/services"
)

// HandleMaterialOverrideAdd sets a variant-scoped price for a material. An
// existing override for the same material is updated in place.
func HandleMaterialOverrideAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		variantID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("variants", variantID); err != nil {
			return ErrorToast(e, http.StatusNotFound, "Variant not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		materialID := e.Request.FormValue("material")
		if _, err := app.FindRecordById("materials", materialID); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Choose a material")
		}

		overridesCol, err := app.FindCollectionByNameOrId("material_overrides")
		if err != nil {
			log.Printf("material_overrides: could not find collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		existing, _ := app.FindRecordsByFilter(
			overridesCol,
			"variant = {:variantId} && material = {:materialId}",
			"", 1, 0,
			map[string]any{"variantId": variantID, "materialId": materialID},
		)

		var record *core.Record
		if len(existing) > 0 {
			record = existing[0]
		} else {
			record = core.NewRecord(overridesCol)
			record.Set("variant", variantID)
			record.Set("material", materialID)
		}
		record.Set("unit_price", services.ParseNumeric(e.Request.FormValue("unit_price")))

		if err := app.Save(record); err != nil {
			log.Printf("material_overrides: could not save override: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Override saved")
		NotifyKpisChanged(e)
		e.Response.Header().Set("HX-Redirect", "/variants/"+variantID)
		return e.String(http.StatusOK, "")
	}
}

// HandleMaterialOverrideDelete removes an override; the catalog price applies
// again.
func HandleMaterialOverrideDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		rec, err := app.FindRecordById("material_overrides", id)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Override not found")
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("material_overrides: could not delete override %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Override removed")
		NotifyKpisChanged(e)
		return e.String(http.StatusOK, "")
	}
}
