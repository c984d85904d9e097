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

func HandleVariantEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		rec, err := app.FindRecordById("variants", id)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Variant not found")
		}

		data := templates.VariantFormData{
			ID:            rec.Id,
			ContractID:    rec.GetString("contract"),
			Name:          rec.GetString("name"),
			Status:        rec.GetString("status"),
			MajorationPct: services.FormatQty(rec.GetFloat("majoration_pct")),
			Notes:         rec.GetString("notes"),
			IsEdit:        true,
		}
		component := templates.VariantFormPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		return component.Render(e.Request.Context(), e.Response)
	}
}

func HandleVariantUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		rec, err := app.FindRecordById("variants", id)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Variant not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return ErrorToast(e, http.StatusBadRequest, "Variant name is required")
		}
		status := strings.TrimSpace(e.Request.FormValue("status"))
		if !slices.Contains(services.VariantStatusOptions, status) {
			status = rec.GetString("status")
		}

		rec.Set("name", name)
		rec.Set("status", status)
		rec.Set("majoration_pct", services.ParseNumeric(e.Request.FormValue("majoration_pct")))
		rec.Set("notes", strings.TrimSpace(e.Request.FormValue("notes")))

		if err := app.Save(rec); err != nil {
			log.Printf("variant_edit: could not save variant %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Variant updated")

		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", "/variants/"+id)
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/variants/"+id)
	}
}
