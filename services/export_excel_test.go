package services

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateVariantExcel_Basic(t *testing.T) {
	g := quoteGraph()
	kpi := ComputeHeaderKPIs(g, 6)

	result, err := GenerateVariantExcel(g, kpi)
	if err != nil {
		t.Fatalf("GenerateVariantExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateVariantExcel() returned empty bytes")
	}
	// xlsx files are zip archives starting with PK
	if string(result[:2]) != "PK" {
		t.Errorf("result does not start with zip header, got %q", string(result[:2]))
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("could not reopen workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet != "Variant A" {
		t.Errorf("sheet name = %q, want %q", sheet, "Variant A")
	}

	name, err := f.GetCellValue(sheet, "B6")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if name != "C25/30" {
		t.Errorf("B6 = %q, want formula name", name)
	}
}

func TestGenerateVariantExcel_EmptyVariant(t *testing.T) {
	g := VariantGraph{}
	kpi := ComputeHeaderKPIs(g, 0)

	result, err := GenerateVariantExcel(g, kpi)
	if err != nil {
		t.Fatalf("GenerateVariantExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateVariantExcel() returned empty bytes")
	}
}

func TestGenerateVariantExcel_LongNameTruncated(t *testing.T) {
	g := quoteGraph()
	g.Name = "An Extremely Long Variant Name That Exceeds The Sheet Limit"
	kpi := ComputeHeaderKPIs(g, 6)

	result, err := GenerateVariantExcel(g, kpi)
	if err != nil {
		t.Fatalf("GenerateVariantExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("could not reopen workbook: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetName(0); len(got) > 31 {
		t.Errorf("sheet name %q longer than 31 chars", got)
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "C25/30", "C25/30"},
		{"formula", "=SUM(A1:A2)", "'=SUM(A1:A2)"},
		{"plus", "+1234", "'+1234"},
		{"minus", "-deduction", "'-deduction"},
		{"at", "@cmd", "'@cmd"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeExcelCell(tt.input); got != tt.want {
				t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
