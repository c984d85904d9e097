package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleContractDelete removes a contract and, via cascade delete, all of its
// variants and their cost records.
func HandleContractDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		rec, err := app.FindRecordById("contracts", id)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Contract not found")
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("contract_delete: could not delete contract %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Contract deleted")
		return e.String(http.StatusOK, "")
	}
}
