package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"plantpnl/templates"
)

func pnlStatusBadgeClass(status string) string {
	switch status {
	case "active":
		return "badge-success"
	case "draft":
		return "badge-warning"
	case "archived":
		return "badge-ghost"
	default:
		return "badge-ghost"
	}
}

func HandlePnlList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		pnlsCol, err := app.FindCollectionByNameOrId("pnls")
		if err != nil {
			log.Printf("pnl_list: could not find pnls collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindAllRecords(pnlsCol)
		if err != nil {
			log.Printf("pnl_list: could not query pnls: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		contractsCol, _ := app.FindCollectionByNameOrId("contracts")

		var items []templates.PnlListItem
		for _, rec := range records {
			var contractCount int
			if contractsCol != nil {
				contracts, err := app.FindRecordsByFilter(
					contractsCol,
					"pnl = {:pnlId}",
					"", 0, 0,
					map[string]any{"pnlId": rec.Id},
				)
				if err == nil {
					contractCount = len(contracts)
				}
			}

			createdDate := "-"
			if dt := rec.GetDateTime("created"); !dt.IsZero() {
				createdDate = dt.Time().Format("02 Jan 2006")
			}

			status := rec.GetString("status")

			items = append(items, templates.PnlListItem{
				ID:               rec.Id,
				Name:             rec.GetString("name"),
				Client:           rec.GetString("client"),
				Status:           status,
				StatusBadgeClass: pnlStatusBadgeClass(status),
				ContractCount:    contractCount,
				CreatedDate:      createdDate,
			})
		}

		data := templates.PnlListData{
			Items:      items,
			TotalCount: len(records),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.PnlListContent(data)
		} else {
			component = templates.PnlListPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
