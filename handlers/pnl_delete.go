package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandlePnlDelete removes a P&L. Contracts, variants and their cost records
// follow via cascade delete.
func HandlePnlDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		rec, err := app.FindRecordById("pnls", id)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "P&L not found")
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("pnl_delete: could not delete pnl %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		// Clear the active cookie if it pointed at the deleted P&L
		if cookie, err := e.Request.Cookie("active_pnl"); err == nil && cookie.Value == id {
			http.SetCookie(e.Response, &http.Cookie{
				Name:   "active_pnl",
				Value:  "",
				Path:   "/",
				MaxAge: -1,
			})
		}

		SetToast(e, "success", "P&L deleted")
		return e.String(http.StatusOK, "")
	}
}
