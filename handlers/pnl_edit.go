package handlers

import (
	"log"
	"net/http"
	"slices"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"plantpnl/services"
	"plantpnl/templates"
)

func HandlePnlEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		rec, err := app.FindRecordById("pnls", id)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "P&L not found")
		}

		data := templates.PnlFormData{
			ID:     rec.Id,
			Name:   rec.GetString("name"),
			Client: rec.GetString("client"),
			Status: rec.GetString("status"),
			Notes:  rec.GetString("notes"),
			IsEdit: true,
		}
		component := templates.PnlFormPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		return component.Render(e.Request.Context(), e.Response)
	}
}

func HandlePnlUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		rec, err := app.FindRecordById("pnls", id)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "P&L not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return ErrorToast(e, http.StatusBadRequest, "P&L name is required")
		}
		status := strings.TrimSpace(e.Request.FormValue("status"))
		if !slices.Contains(services.PnlStatusOptions, status) {
			status = rec.GetString("status")
		}

		rec.Set("name", name)
		rec.Set("client", strings.TrimSpace(e.Request.FormValue("client")))
		rec.Set("status", status)
		rec.Set("notes", strings.TrimSpace(e.Request.FormValue("notes")))

		if err := app.Save(rec); err != nil {
			log.Printf("pnl_edit: could not save pnl %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "P&L updated")

		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", "/pnls")
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/pnls")
	}
}
