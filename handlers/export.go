package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"plantpnl/services"
)

func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleQuoteExportPDF generates the client-facing quote PDF for a variant.
// Quote pricing applies majorations and surcharges, unlike the dashboard.
// Each export is recorded in the quotes collection with its own number.
func HandleQuoteExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		variantID := e.Request.PathValue("id")
		if variantID == "" {
			return e.String(http.StatusBadRequest, "Missing variant ID")
		}

		graph, err := services.LoadVariantGraph(app, variantID)
		if err != nil {
			log.Printf("quote_export: variant not found %s: %v", variantID, err)
			return e.String(http.StatusNotFound, "Variant not found")
		}

		now := time.Now()
		number := services.GenerateQuoteNumber(app, now)
		issueDate := now.Format("02 Jan 2006")
		validUntil := now.AddDate(0, 1, 0).Format("02 Jan 2006")

		data := services.BuildQuoteData(graph, number, issueDate, validUntil)

		pdfBytes, err := services.GenerateQuotePDF(data)
		if err != nil {
			log.Printf("quote_export: failed to generate PDF: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF")
		}

		// Record the export so the numbering sequence advances.
		quotesCol, err := app.FindCollectionByNameOrId("quotes")
		if err == nil {
			rec := core.NewRecord(quotesCol)
			rec.Set("variant", variantID)
			rec.Set("number", number)
			rec.Set("issue_date", now.Format("2006-01-02"))
			if err := app.Save(rec); err != nil {
				log.Printf("quote_export: failed to record quote %s: %v", number, err)
			}
		}

		filename := fmt.Sprintf("%s.pdf", sanitizeFilename(number))

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleVariantExportExcel generates the internal costing workbook for a
// variant. Workbook figures match the dashboard: no majorations, no
// surcharges.
func HandleVariantExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		variantID := e.Request.PathValue("id")
		if variantID == "" {
			return e.String(http.StatusBadRequest, "Missing variant ID")
		}

		graph, err := services.LoadVariantGraph(app, variantID)
		if err != nil {
			log.Printf("excel_export: variant not found %s: %v", variantID, err)
			return e.String(http.StatusNotFound, "Variant not found")
		}

		kpi := services.ComputeHeaderKPIs(graph, contractDurationMonths(app, variantID))

		excelBytes, err := services.GenerateVariantExcel(graph, kpi)
		if err != nil {
			log.Printf("excel_export: failed to generate workbook: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		name := graph.Name
		if name == "" {
			name = variantID
		}
		filename := fmt.Sprintf("%s.xlsx", sanitizeFilename(name))

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(excelBytes)
		return nil
	}
}
