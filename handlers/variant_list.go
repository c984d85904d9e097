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

func variantStatusBadgeClass(status string) string {
	switch status {
	case "retained":
		return "badge-success"
	case "submitted":
		return "badge-info"
	case "rejected":
		return "badge-error"
	case "draft":
		return "badge-warning"
	default:
		return "badge-ghost"
	}
}

func HandleVariantList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		contractID := e.Request.PathValue("id")
		contract, err := app.FindRecordById("contracts", contractID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Contract not found")
		}

		variantsCol, err := app.FindCollectionByNameOrId("variants")
		if err != nil {
			log.Printf("variant_list: could not find variants collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindRecordsByFilter(
			variantsCol,
			"contract = {:contractId}",
			"-created", 0, 0,
			map[string]any{"contractId": contractID},
		)
		if err != nil {
			log.Printf("variant_list: could not query variants: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		linesCol, _ := app.FindCollectionByNameOrId("formula_lines")

		var items []templates.VariantListItem
		for _, rec := range records {
			var lineCount int
			if linesCol != nil {
				lines, err := app.FindRecordsByFilter(
					linesCol,
					"variant = {:variantId}",
					"", 0, 0,
					map[string]any{"variantId": rec.Id},
				)
				if err == nil {
					lineCount = len(lines)
				}
			}

			updatedDate := "-"
			if dt := rec.GetDateTime("updated"); !dt.IsZero() {
				updatedDate = dt.Time().Format("02 Jan 2006")
			}

			status := rec.GetString("status")

			items = append(items, templates.VariantListItem{
				ID:               rec.Id,
				Name:             rec.GetString("name"),
				Status:           status,
				StatusBadgeClass: variantStatusBadgeClass(status),
				MajorationPct:    services.FormatQty(rec.GetFloat("majoration_pct")) + " %",
				LineCount:        lineCount,
				UpdatedDate:      updatedDate,
			})
		}

		data := templates.VariantListData{
			ContractID:   contractID,
			ContractName: contract.GetString("name"),
			Items:        items,
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.VariantListContent(data)
		} else {
			component = templates.VariantListPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
