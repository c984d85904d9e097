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

func HandleVariantCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		contractID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("contracts", contractID); err != nil {
			return ErrorToast(e, http.StatusNotFound, "Contract not found")
		}

		data := templates.VariantFormData{
			ContractID:    contractID,
			Status:        "draft",
			MajorationPct: "0",
		}
		component := templates.VariantFormPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		return component.Render(e.Request.Context(), e.Response)
	}
}

func HandleVariantSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		contractID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("contracts", contractID); err != nil {
			return ErrorToast(e, http.StatusNotFound, "Contract not found")
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
			status = "draft"
		}

		variantsCol, err := app.FindCollectionByNameOrId("variants")
		if err != nil {
			log.Printf("variant_create: could not find variants collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(variantsCol)
		record.Set("contract", contractID)
		record.Set("name", name)
		record.Set("status", status)
		record.Set("majoration_pct", services.ParseNumeric(e.Request.FormValue("majoration_pct")))
		record.Set("notes", strings.TrimSpace(e.Request.FormValue("notes")))

		if err := app.Save(record); err != nil {
			log.Printf("variant_create: could not save variant: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Variant created")

		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", "/variants/"+record.Id)
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/variants/"+record.Id)
	}
}
