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

func HandleContractCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if GetActivePnl(e.Request) == nil {
			return e.Redirect(http.StatusFound, "/pnls")
		}

		data := templates.ContractFormData{
			DurationMonths: "12",
			ConcreteBy:     "supplier",
			ElectricityBy:  "client",
			WaterBy:        "client",
		}
		component := templates.ContractFormPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		return component.Render(e.Request.Context(), e.Response)
	}
}

func HandleContractSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		activePnl := GetActivePnl(e.Request)
		if activePnl == nil {
			return ErrorToast(e, http.StatusBadRequest, "Open a P&L first")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return ErrorToast(e, http.StatusBadRequest, "Contract name is required")
		}

		contractsCol, err := app.FindCollectionByNameOrId("contracts")
		if err != nil {
			log.Printf("contract_create: could not find contracts collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(contractsCol)
		record.Set("pnl", activePnl.ID)
		record.Set("name", name)
		record.Set("duration_months", services.ParseNumeric(e.Request.FormValue("duration_months")))
		record.Set("notes", strings.TrimSpace(e.Request.FormValue("notes")))
		for _, field := range []string{"concrete_by", "electricity_by", "water_by"} {
			value := e.Request.FormValue(field)
			if slices.Contains(services.ResponsibilityOptions, value) {
				record.Set(field, value)
			}
		}

		if err := app.Save(record); err != nil {
			log.Printf("contract_create: could not save contract: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Contract created")

		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", "/contracts")
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/contracts")
	}
}
