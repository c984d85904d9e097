package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandlePnlActivate sets the active P&L cookie and returns a full page
// redirect via HX-Redirect so the entire shell (header + sidebar) re-renders.
func HandlePnlActivate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		pnlID := e.Request.PathValue("id")

		// Verify the P&L exists
		_, err := app.FindRecordById("pnls", pnlID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "P&L not found")
		}

		// Set cookie (30-day expiry, HttpOnly)
		http.SetCookie(e.Response, &http.Cookie{
			Name:     "active_pnl",
			Value:    pnlID,
			Path:     "/",
			MaxAge:   60 * 60 * 24 * 30,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		SetToast(e, "success", "P&L activated")

		// Tell HTMX to do a full page redirect so header + sidebar re-render
		e.Response.Header().Set("HX-Redirect", "/contracts")
		return e.String(200, "OK")
	}
}

// HandlePnlDeactivate clears the active P&L cookie and redirects to /pnls.
func HandlePnlDeactivate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		http.SetCookie(e.Response, &http.Cookie{
			Name:   "active_pnl",
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})

		SetToast(e, "success", "P&L closed")

		e.Response.Header().Set("HX-Redirect", "/pnls")
		return e.String(200, "OK")
	}
}
