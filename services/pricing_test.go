package services

import (
	"math"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestResolveMaterialPrice(t *testing.T) {
	tests := []struct {
		name     string
		material MaterialPrice
		want     float64
	}{
		{"override set, catalog absent", MaterialPrice{OverridePrice: floatPtr(85)}, 85},
		{"override absent, catalog set", MaterialPrice{CatalogPrice: 92}, 92},
		{"neither set", MaterialPrice{}, 0},
		{"override wins over catalog", MaterialPrice{CatalogPrice: 92, OverridePrice: floatPtr(85)}, 85},
		{"zero override still wins", MaterialPrice{CatalogPrice: 92, OverridePrice: floatPtr(0)}, 0},
		{"nan catalog coerced", MaterialPrice{CatalogPrice: math.NaN()}, 0},
		{"inf override coerced", MaterialPrice{OverridePrice: floatPtr(math.Inf(1))}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveMaterialPrice(tt.material)
			if got != tt.want {
				t.Errorf("ResolveMaterialPrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaterialPriceIndex(t *testing.T) {
	materials := []MaterialPrice{
		{MaterialID: "cement", CatalogPrice: 120},
		{MaterialID: "sand", CatalogPrice: 25, OverridePrice: floatPtr(22)},
	}

	index := MaterialPriceIndex(materials)

	if index["cement"] != 120 {
		t.Errorf("index[cement] = %v, want 120", index["cement"])
	}
	if index["sand"] != 22 {
		t.Errorf("index[sand] = %v, want 22", index["sand"])
	}
	if _, ok := index["gravel"]; ok {
		t.Error("unexpected entry for gravel")
	}
}

func TestPriceFormulaLine(t *testing.T) {
	prices := map[string]float64{"cement": 2}
	line := FormulaLine{
		VolumeM3:       100,
		MOMD:           5,
		QuoteSurcharge: 3,
		Components:     []FormulaComponent{{MaterialID: "cement", QtyPerM3: 10}},
	}
	transport := TransportParams{AvgPriceM3: 20}

	tests := []struct {
		name          string
		majorationPct float64
		opts          PricingOptions
		wantCMP       float64
		wantPrice     float64
	}{
		{
			name:      "dashboard pricing",
			opts:      PricingOptions{},
			wantCMP:   20, // 10 * 2
			wantPrice: 45, // 20 + 20 + 5
		},
		{
			name:          "majoration only",
			majorationPct: 10,
			opts:          PricingOptions{ApplyMajoration: true},
			wantCMP:       22, // 20 * 1.10
			wantPrice:     49, // 22 + 22 + 5
		},
		{
			name:      "surcharge only",
			opts:      PricingOptions{ApplySurcharges: true},
			wantCMP:   20,
			wantPrice: 48, // 45 + 3
		},
		{
			name:          "majoration and surcharge",
			majorationPct: 10,
			opts:          PricingOptions{ApplyMajoration: true, ApplySurcharges: true},
			wantCMP:       22,
			wantPrice:     52, // 49 + 3
		},
		{
			name:          "majoration flag off ignores percentage",
			majorationPct: 10,
			opts:          PricingOptions{},
			wantCMP:       20,
			wantPrice:     45,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceFormulaLine(line, prices, transport, tt.majorationPct, tt.opts)
			if math.Abs(got.UnitMaterialCost-tt.wantCMP) > 1e-9 {
				t.Errorf("UnitMaterialCost = %v, want %v", got.UnitMaterialCost, tt.wantCMP)
			}
			if math.Abs(got.UnitSalePrice-tt.wantPrice) > 1e-9 {
				t.Errorf("UnitSalePrice = %v, want %v", got.UnitSalePrice, tt.wantPrice)
			}
		})
	}
}

func TestPriceFormulaLine_UnknownMaterial(t *testing.T) {
	line := FormulaLine{
		Components: []FormulaComponent{{MaterialID: "unknown", QtyPerM3: 50}},
	}

	got := PriceFormulaLine(line, map[string]float64{}, TransportParams{}, 0, PricingOptions{})
	if got.UnitMaterialCost != 0 {
		t.Errorf("UnitMaterialCost = %v, want 0 for unknown material", got.UnitMaterialCost)
	}
}

func TestPriceFormulaLine_MultipleComponents(t *testing.T) {
	prices := map[string]float64{"cement": 0.12, "sand": 0.02, "gravel": 0.015}
	line := FormulaLine{
		Components: []FormulaComponent{
			{MaterialID: "cement", QtyPerM3: 350},
			{MaterialID: "sand", QtyPerM3: 800},
			{MaterialID: "gravel", QtyPerM3: 1050},
		},
	}

	got := PriceFormulaLine(line, prices, TransportParams{}, 0, PricingOptions{})
	want := 350*0.12 + 800*0.02 + 1050*0.015
	if math.Abs(got.UnitMaterialCost-want) > 1e-9 {
		t.Errorf("UnitMaterialCost = %v, want %v", got.UnitMaterialCost, want)
	}
}
