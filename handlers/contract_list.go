package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"plantpnl/services"
	"plantpnl/templates"
)

func HandleContractList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		activePnl := GetActivePnl(e.Request)
		if activePnl == nil {
			return e.Redirect(http.StatusFound, "/pnls")
		}

		contractsCol, err := app.FindCollectionByNameOrId("contracts")
		if err != nil {
			log.Printf("contract_list: could not find contracts collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindRecordsByFilter(
			contractsCol,
			"pnl = {:pnlId}",
			"-created", 0, 0,
			map[string]any{"pnlId": activePnl.ID},
		)
		if err != nil {
			log.Printf("contract_list: could not query contracts: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		variantsCol, _ := app.FindCollectionByNameOrId("variants")

		var items []templates.ContractListItem
		for _, rec := range records {
			var variantCount int
			if variantsCol != nil {
				variants, err := app.FindRecordsByFilter(
					variantsCol,
					"contract = {:contractId}",
					"", 0, 0,
					map[string]any{"contractId": rec.Id},
				)
				if err == nil {
					variantCount = len(variants)
				}
			}

			items = append(items, templates.ContractListItem{
				ID:             rec.Id,
				Name:           rec.GetString("name"),
				DurationMonths: services.FormatQty(rec.GetFloat("duration_months")),
				ConcreteBy:     rec.GetString("concrete_by"),
				ElectricityBy:  rec.GetString("electricity_by"),
				WaterBy:        rec.GetString("water_by"),
				VariantCount:   variantCount,
			})
		}

		data := templates.ContractListData{
			Items:      items,
			TotalCount: len(records),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ContractListContent(data)
		} else {
			component = templates.ContractListPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
