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

func HandleContractEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		rec, err := app.FindRecordById("contracts", id)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Contract not found")
		}

		data := templates.ContractFormData{
			ID:             rec.Id,
			Name:           rec.GetString("name"),
			DurationMonths: services.FormatQty(rec.GetFloat("duration_months")),
			ConcreteBy:     rec.GetString("concrete_by"),
			ElectricityBy:  rec.GetString("electricity_by"),
			WaterBy:        rec.GetString("water_by"),
			Notes:          rec.GetString("notes"),
			IsEdit:         true,
		}
		component := templates.ContractFormPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		return component.Render(e.Request.Context(), e.Response)
	}
}

func HandleContractUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		rec, err := app.FindRecordById("contracts", id)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Contract not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return ErrorToast(e, http.StatusBadRequest, "Contract name is required")
		}

		rec.Set("name", name)
		rec.Set("duration_months", services.ParseNumeric(e.Request.FormValue("duration_months")))
		rec.Set("notes", strings.TrimSpace(e.Request.FormValue("notes")))
		for _, field := range []string{"concrete_by", "electricity_by", "water_by"} {
			value := e.Request.FormValue(field)
			if slices.Contains(services.ResponsibilityOptions, value) {
				rec.Set(field, value)
			}
		}

		if err := app.Save(rec); err != nil {
			log.Printf("contract_edit: could not save contract %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Contract updated")

		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", "/contracts")
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/contracts")
	}
}
