package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"

	"plantpnl/templates"
)

// BuildSidebarData constructs the SidebarData from the current request
// context. Contract and variant counts are scoped to the active P&L; the
// catalog counts are global.
func BuildSidebarData(r *http.Request, app *pocketbase.PocketBase) templates.SidebarData {
	data := templates.SidebarData{
		ActivePnl:  GetActivePnl(r),
		ActivePath: r.URL.Path,
	}

	materialsCol, _ := app.FindCollectionByNameOrId("materials")
	if materialsCol != nil {
		materials, _ := app.FindAllRecords(materialsCol)
		data.MaterialCount = len(materials)
	}
	formulasCol, _ := app.FindCollectionByNameOrId("formulas")
	if formulasCol != nil {
		formulas, _ := app.FindAllRecords(formulasCol)
		data.FormulaCount = len(formulas)
	}

	if data.ActivePnl == nil {
		return data
	}

	contractsCol, _ := app.FindCollectionByNameOrId("contracts")
	if contractsCol == nil {
		return data
	}
	contracts, _ := app.FindRecordsByFilter(
		contractsCol,
		"pnl = {:pnlId}",
		"", 0, 0,
		map[string]any{"pnlId": data.ActivePnl.ID},
	)
	data.ContractCount = len(contracts)

	variantsCol, _ := app.FindCollectionByNameOrId("variants")
	if variantsCol != nil {
		for _, contract := range contracts {
			variants, err := app.FindRecordsByFilter(
				variantsCol,
				"contract = {:contractId}",
				"", 0, 0,
				map[string]any{"contractId": contract.Id},
			)
			if err == nil {
				data.VariantCount += len(variants)
			}
		}
	}

	return data
}
