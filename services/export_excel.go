package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateVariantExcel creates a costing workbook for a variant: the priced
// formula lines followed by the dashboard KPI summary. Pricing matches the
// KPI dashboard (no majoration, no surcharges) and returns the file contents
// as a byte slice.
func GenerateVariantExcel(g VariantGraph, kpi KPIResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Determine sheet name (max 31 chars).
	sheetName := g.Name
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Variant"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	lastCol := columns[len(columns)-1]

	widths := []float64{6, 36, 14, 16, 16, 18}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	lineStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create line style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header rows (1-3) ───────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(g.Name))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if g.ContractName != "" {
		if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
			return nil, fmt.Errorf("merge contract: %w", err)
		}
		f.SetCellValue(sheetName, "A2", "Contract: "+sanitizeExcelCell(g.ContractName))
		f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)
	}

	if g.Client != "" {
		if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
			return nil, fmt.Errorf("merge client: %w", err)
		}
		f.SetCellValue(sheetName, "A3", "Client: "+sanitizeExcelCell(g.Client))
		f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)
	}

	// ── Row 5: column headers ───────────────────────────────────────────

	headers := []string{"#", "Formula", "Volume (m³)", "CMP / m³", "Price / m³", "Revenue"}
	for i, h := range headers {
		cell := fmt.Sprintf("%s5", columns[i])
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A5", lastCol+"5", headerStyle)

	// ── Data rows (starting row 6) ──────────────────────────────────────

	prices := MaterialPriceIndex(g.Materials)
	opts := PricingOptions{ApplyMajoration: false, ApplySurcharges: false}

	row := 6
	for i, line := range g.FormulaLines {
		rowStr := fmt.Sprintf("%d", row)
		pricing := PriceFormulaLine(line, prices, g.Transport, g.MajorationPct, opts)
		volume := ToFiniteNumber(line.VolumeM3)

		f.SetCellValue(sheetName, "A"+rowStr, i+1)
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(line.FormulaName))
		f.SetCellValue(sheetName, "C"+rowStr, volume)
		f.SetCellValue(sheetName, "D"+rowStr, FormatEUR(pricing.UnitMaterialCost))
		f.SetCellValue(sheetName, "E"+rowStr, FormatEUR(pricing.UnitSalePrice))
		f.SetCellValue(sheetName, "F"+rowStr, FormatEUR(volume*pricing.UnitSalePrice))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, lineStyle)

		row++
	}

	// ── KPI summary rows ────────────────────────────────────────────────

	row++

	summaries := []struct {
		label string
		value string
	}{
		{"Total Volume:", FormatQty(kpi.TotalVolumeM3) + " m³"},
		{"Revenue:", FormatEUR(kpi.Revenue)},
		{"Material Cost:", FormatEUR(kpi.MaterialCost)},
		{"Gross Margin (" + FormatPct(kpi.GrossMarginPct) + "):", FormatEUR(kpi.GrossMargin)},
		{"Production Cost:", FormatEUR(kpi.ProductionCost)},
		{"Overhead (" + FormatPct(kpi.OverheadPct) + "):", FormatEUR(kpi.OverheadTotal)},
		{"Pumping Margin:", FormatEUR(kpi.PumpingMargin)},
		{"EBITDA:", FormatEUR(kpi.EBITDA)},
		{"Amortization:", FormatEUR(kpi.Amortization)},
		{"EBIT:", FormatEUR(kpi.EBIT)},
	}
	for _, s := range summaries {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "D"+rowStr, s.label)
		f.SetCellStyle(sheetName, "D"+rowStr, "D"+rowStr, summaryLabelStyle)
		f.SetCellValue(sheetName, "E"+rowStr, s.value)
		f.SetCellStyle(sheetName, "E"+rowStr, "E"+rowStr, summaryValueStyle)
		row++
	}

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
