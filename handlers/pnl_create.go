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

func HandlePnlCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.PnlFormData{Status: "draft"}
		component := templates.PnlFormPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		return component.Render(e.Request.Context(), e.Response)
	}
}

func HandlePnlSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		client := strings.TrimSpace(e.Request.FormValue("client"))
		status := strings.TrimSpace(e.Request.FormValue("status"))
		notes := strings.TrimSpace(e.Request.FormValue("notes"))

		if name == "" {
			return ErrorToast(e, http.StatusBadRequest, "P&L name is required")
		}
		if !slices.Contains(services.PnlStatusOptions, status) {
			status = "draft"
		}

		pnlsCol, err := app.FindCollectionByNameOrId("pnls")
		if err != nil {
			log.Printf("pnl_create: could not find pnls collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(pnlsCol)
		record.Set("name", name)
		record.Set("client", client)
		record.Set("status", status)
		record.Set("notes", notes)

		if err := app.Save(record); err != nil {
			log.Printf("pnl_create: could not save pnl: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "P&L created")

		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", "/pnls")
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/pnls")
	}
}
