package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleVariantDelete removes a variant and its nested cost records.
func HandleVariantDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		rec, err := app.FindRecordById("variants", id)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Variant not found")
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("variant_delete: could not delete variant %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Variant deleted")
		return e.String(http.StatusOK, "")
	}
}
