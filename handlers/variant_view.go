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

// contractDurationMonths resolves the duration of the contract a variant
// belongs to. Variants without a reachable contract price over zero months.
func contractDurationMonths(app *pocketbase.PocketBase, variantID string) float64 {
	variant, err := app.FindRecordById("variants", variantID)
	if err != nil {
		return 0
	}
	contract, err := app.FindRecordById("contracts", variant.GetString("contract"))
	if err != nil {
		return 0
	}
	return services.ToFiniteNumber(contract.GetFloat("duration_months"))
}

// buildKpiRows formats a KPI result for the dashboard grid.
func buildKpiRows(kpi services.KPIResult) []templates.KpiRow {
	return []templates.KpiRow{
		{Label: "Total volume", Value: services.FormatQty(kpi.TotalVolumeM3) + " m³"},
		{Label: "Revenue", Value: services.FormatEUR(kpi.Revenue)},
		{Label: "Avg sale price / m³", Value: services.FormatEUR(kpi.AvgSalePriceM3)},
		{Label: "Transport price / m³", Value: services.FormatEUR(kpi.TransportPriceM3)},
		{Label: "Material cost", Value: services.FormatEUR(kpi.MaterialCost)},
		{Label: "Avg material cost / m³", Value: services.FormatEUR(kpi.AvgMaterialCostM3)},
		{Label: "MOMD", Value: services.FormatEUR(kpi.MOMDTotal)},
		{Label: "Avg MOMD / m³", Value: services.FormatEUR(kpi.AvgMOMDM3)},
		{Label: "Gross margin", Value: services.FormatEUR(kpi.GrossMargin), Emphasis: true},
		{Label: "Gross margin %", Value: services.FormatPct(kpi.GrossMarginPct), Emphasis: true},
		{Label: "Production cost", Value: services.FormatEUR(kpi.ProductionCost)},
		{Label: "Avg production cost / m³", Value: services.FormatEUR(kpi.AvgProductionCostM3)},
		{Label: "Overhead %", Value: services.FormatPct(kpi.OverheadPct)},
		{Label: "Overhead", Value: services.FormatEUR(kpi.OverheadTotal)},
		{Label: "Pumped volume", Value: services.FormatQty(kpi.PumpedVolumeM3) + " m³"},
		{Label: "Pumping margin", Value: services.FormatEUR(kpi.PumpingMargin)},
		{Label: "EBITDA", Value: services.FormatEUR(kpi.EBITDA), Emphasis: true},
		{Label: "Amortization", Value: services.FormatEUR(kpi.Amortization)},
		{Label: "EBIT", Value: services.FormatEUR(kpi.EBIT), Emphasis: true},
	}
}

// buildVariantViewData assembles everything the variant detail page shows.
func buildVariantViewData(app *pocketbase.PocketBase, variantID string) (templates.VariantViewData, error) {
	graph, err := services.LoadVariantGraph(app, variantID)
	if err != nil {
		return templates.VariantViewData{}, err
	}

	variant, err := app.FindRecordById("variants", variantID)
	if err != nil {
		return templates.VariantViewData{}, err
	}

	duration := contractDurationMonths(app, variantID)
	kpi := services.ComputeHeaderKPIs(graph, duration)

	data := templates.VariantViewData{
		ID:               variantID,
		ContractID:       variant.GetString("contract"),
		ContractName:     graph.ContractName,
		Name:             graph.Name,
		Status:           graph.Status,
		StatusBadgeClass: variantStatusBadgeClass(graph.Status),
		MajorationPct:    services.FormatQty(graph.MajorationPct) + " %",
		DurationMonths:   services.FormatQty(duration),
		KpiRows:          buildKpiRows(kpi),
	}

	// Priced formula lines. Dashboard view: no majoration, no surcharge.
	prices := services.MaterialPriceIndex(graph.Materials)
	opts := services.PricingOptions{}
	lineRecords, _ := app.FindRecordsByFilter(
		"formula_lines",
		"variant = {:variantId}",
		"sort_order", 0, 0,
		map[string]any{"variantId": variantID},
	)
	for i, line := range graph.FormulaLines {
		pricing := services.PriceFormulaLine(line, prices, graph.Transport, graph.MajorationPct, opts)
		row := templates.FormulaLineRow{
			FormulaName: line.FormulaName,
			Volume:      services.FormatQty(line.VolumeM3),
			MOMD:        services.FormatQty(line.MOMD),
			Surcharge:   services.FormatQty(line.QuoteSurcharge),
			UnitCost:    services.FormatEUR(pricing.UnitMaterialCost),
			SalePrice:   services.FormatEUR(pricing.UnitSalePrice),
			Revenue:     services.FormatEUR(line.VolumeM3 * pricing.UnitSalePrice),
		}
		if i < len(lineRecords) {
			row.ID = lineRecords[i].Id
		}
		data.Lines = append(data.Lines, row)
	}

	// Overrides need record ids for the remove buttons, so query them directly.
	catalogPrices := map[string]templates.MaterialOption{}
	for _, m := range graph.Materials {
		catalogPrices[m.MaterialID] = templates.MaterialOption{ID: m.MaterialID, Name: m.Name}
		data.MaterialOptions = append(data.MaterialOptions, templates.MaterialOption{ID: m.MaterialID, Name: m.Name})
	}
	catalogByID := map[string]float64{}
	for _, m := range graph.Materials {
		catalogByID[m.MaterialID] = m.CatalogPrice
	}
	overrideRecords, _ := app.FindRecordsByFilter(
		"material_overrides",
		"variant = {:variantId}",
		"", 0, 0,
		map[string]any{"variantId": variantID},
	)
	for _, o := range overrideRecords {
		materialID := o.GetString("material")
		name := materialID
		if opt, ok := catalogPrices[materialID]; ok {
			name = opt.Name
		}
		data.Overrides = append(data.Overrides, templates.OverrideRow{
			ID:           o.Id,
			MaterialName: name,
			CatalogPrice: services.FormatEUR(catalogByID[materialID]),
			Override:     services.FormatEUR(o.GetFloat("unit_price")),
		})
	}

	miscRecords, _ := app.FindRecordsByFilter(
		"misc_costs",
		"variant = {:variantId}",
		"created", 0, 0,
		map[string]any{"variantId": variantID},
	)
	for _, m := range miscRecords {
		unit := m.GetString("unit")
		value := services.ToFiniteNumber(m.GetFloat("value"))
		valueText := services.FormatEUR(value)
		if unit == services.MiscUnitPctRevenue {
			valueText = services.FormatQty(value) + " %"
		}
		data.MiscCosts = append(data.MiscCosts, templates.MiscCostRow{
			ID:        m.Id,
			Label:     m.GetString("label"),
			UnitLabel: services.MiscUnitLabels[unit],
			Value:     valueText,
		})
	}

	formulas, _ := app.FindAllRecords("formulas")
	for _, f := range formulas {
		data.FormulaOptions = append(data.FormulaOptions, templates.FormulaOption{
			ID:   f.Id,
			Name: f.GetString("name"),
		})
	}

	for _, unit := range services.MiscUnitOptions {
		data.MiscUnitOptions = append(data.MiscUnitOptions, templates.SelectOption{
			Value: unit,
			Label: services.MiscUnitLabels[unit],
		})
	}

	return data, nil
}

// HandleVariantView renders the variant detail page with the KPI dashboard.
func HandleVariantView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		data, err := buildVariantViewData(app, id)
		if err != nil {
			log.Printf("variant_view: could not build view data for %s: %v", id, err)
			return ErrorToast(e, http.StatusNotFound, "Variant not found")
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.VariantViewContent(data)
		} else {
			component = templates.VariantViewPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleVariantKpis serves just the KPI dashboard partial so HTMX can refresh
// it after costing edits without reloading the page.
func HandleVariantKpis(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		data, err := buildVariantViewData(app, id)
		if err != nil {
			log.Printf("variant_kpis: could not build view data for %s: %v", id, err)
			return ErrorToast(e, http.StatusNotFound, "Variant not found")
		}
		return templates.KpiDashboard(data).Render(e.Request.Context(), e.Response)
	}
}
