package services

import (
	"math"
	"testing"
)

// sampleGraph builds the reference scenario: one formula line of 100 m³ with
// MOMD 5, a mix of 10 units of one material at catalog price 2, transport 20.
func sampleGraph() VariantGraph {
	return VariantGraph{
		Status: "draft",
		Client: "Grand Chantier SA",
		FormulaLines: []FormulaLine{
			{
				FormulaID: "f1",
				VolumeM3:  100,
				MOMD:      5,
				Components: []FormulaComponent{
					{MaterialID: "m1", QtyPerM3: 10},
				},
			},
		},
		Materials: []MaterialPrice{
			{MaterialID: "m1", CatalogPrice: 2},
		},
		Transport: TransportParams{AvgPriceM3: 20},
	}
}

func TestComputeHeaderKPIs_ReferenceScenario(t *testing.T) {
	kpi := ComputeHeaderKPIs(sampleGraph(), 0)

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"TotalVolumeM3", kpi.TotalVolumeM3, 100},
		{"Revenue", kpi.Revenue, 4500},        // 100 * (20 + 20 + 5)
		{"MaterialCost", kpi.MaterialCost, 2000}, // 100 * 20
		{"MOMDTotal", kpi.MOMDTotal, 500},
		{"GrossMargin", kpi.GrossMargin, 2500},
		{"AvgSalePriceM3", kpi.AvgSalePriceM3, 45},
		{"AvgMaterialCostM3", kpi.AvgMaterialCostM3, 20},
		{"AvgMOMDM3", kpi.AvgMOMDM3, 5},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if kpi.GrossMarginPct == nil {
		t.Fatal("GrossMarginPct is nil, want ~55.56")
	}
	if math.Abs(*kpi.GrossMarginPct-2500.0/4500.0*100) > 1e-9 {
		t.Errorf("GrossMarginPct = %v, want %v", *kpi.GrossMarginPct, 2500.0/4500.0*100)
	}

	if kpi.Status != "draft" || kpi.Client != "Grand Chantier SA" {
		t.Errorf("pass-through fields = (%q, %q)", kpi.Status, kpi.Client)
	}
}

func TestComputeHeaderKPIs_Pumping(t *testing.T) {
	g := sampleGraph()
	g.Transport.PumpedPct = 50
	g.Transport.PumpPurchase = 10
	g.Transport.PumpSale = 15

	kpi := ComputeHeaderKPIs(g, 0)

	if kpi.PumpedVolumeM3 != 50 {
		t.Errorf("PumpedVolumeM3 = %v, want 50", kpi.PumpedVolumeM3)
	}
	if kpi.PumpingMargin != 250 {
		t.Errorf("PumpingMargin = %v, want 250", kpi.PumpingMargin)
	}
}

func TestComputeHeaderKPIs_ZeroVolume(t *testing.T) {
	g := sampleGraph()
	g.FormulaLines[0].VolumeM3 = 0

	kpi := ComputeHeaderKPIs(g, 6)

	if kpi.TotalVolumeM3 != 0 {
		t.Errorf("TotalVolumeM3 = %v, want 0", kpi.TotalVolumeM3)
	}
	for name, got := range map[string]float64{
		"AvgSalePriceM3":      kpi.AvgSalePriceM3,
		"AvgMaterialCostM3":   kpi.AvgMaterialCostM3,
		"AvgMOMDM3":           kpi.AvgMOMDM3,
		"AvgProductionCostM3": kpi.AvgProductionCostM3,
	} {
		if got != 0 {
			t.Errorf("%s = %v, want 0 when volume is 0", name, got)
		}
	}
	if kpi.GrossMarginPct != nil {
		t.Errorf("GrossMarginPct = %v, want nil when revenue is 0", *kpi.GrossMarginPct)
	}
}

func TestComputeHeaderKPIs_MarginIdentity(t *testing.T) {
	graphs := []VariantGraph{
		sampleGraph(),
		{},
		{
			FormulaLines: []FormulaLine{
				{VolumeM3: 40, MOMD: -12},
				{VolumeM3: 0, MOMD: 99},
				{VolumeM3: 3.5, Components: []FormulaComponent{{MaterialID: "x", QtyPerM3: 2}}},
			},
			Materials: []MaterialPrice{{MaterialID: "x", CatalogPrice: 300}},
			Transport: TransportParams{AvgPriceM3: 7.5},
		},
	}

	for i, g := range graphs {
		kpi := ComputeHeaderKPIs(g, 12)
		if math.Abs(kpi.GrossMargin-(kpi.Revenue-kpi.MaterialCost)) > 1e-9 {
			t.Errorf("graph %d: GrossMargin = %v, want Revenue-MaterialCost = %v",
				i, kpi.GrossMargin, kpi.Revenue-kpi.MaterialCost)
		}
		if kpi.Revenue == 0 && kpi.GrossMarginPct != nil {
			t.Errorf("graph %d: GrossMarginPct set with zero revenue", i)
		}
		if kpi.Revenue != 0 {
			want := kpi.GrossMargin / kpi.Revenue * 100
			if kpi.GrossMarginPct == nil || math.Abs(*kpi.GrossMarginPct-want) > 1e-9 {
				t.Errorf("graph %d: GrossMarginPct = %v, want %v", i, kpi.GrossMarginPct, want)
			}
		}
	}
}

func TestComputeHeaderKPIs_ProductionBuckets(t *testing.T) {
	g := sampleGraph()
	g.PerM3 = PerM3Costs{Water: 0.5, Electricity: 1.5}       // 2 per m³
	g.Monthly = MonthlyCosts{Rent: 1000, Insurance: 200}     // 1200 per month
	g.Maintenance = MaintenanceCosts{SpareParts: 300}        // 300 per month
	g.Staffing = StaffingCosts{OperatorCount: 2, OperatorCost: 2500} // 5000 per month
	g.OneOff = OneOffCosts{Installation: 8000}

	kpi := ComputeHeaderKPIs(g, 6)

	// 2*100 + (1200+300+5000)*6 + 8000
	want := 200.0 + 6500.0*6 + 8000.0
	if math.Abs(kpi.ProductionCost-want) > 1e-9 {
		t.Errorf("ProductionCost = %v, want %v", kpi.ProductionCost, want)
	}
	if math.Abs(kpi.AvgProductionCostM3-want/100) > 1e-9 {
		t.Errorf("AvgProductionCostM3 = %v, want %v", kpi.AvgProductionCostM3, want/100)
	}
}

func TestComputeHeaderKPIs_MiscCostBuckets(t *testing.T) {
	tests := []struct {
		name           string
		misc           MiscCost
		wantProduction float64
		wantOverhead   float64
	}{
		{"per m3", MiscCost{Unit: MiscUnitPerM3, Value: 2}, 200, 0},          // 2 * 100 m³
		{"per month", MiscCost{Unit: MiscUnitPerMonth, Value: 150}, 900, 0},  // 150 * 6
		{"lump sum", MiscCost{Unit: MiscUnitLumpSum, Value: 1234}, 1234, 0},
		{"percent of revenue", MiscCost{Unit: MiscUnitPctRevenue, Value: 10}, 0, 450}, // 4500 * 10%
		{"unknown unit treated as lump sum", MiscCost{Unit: "banana", Value: 77}, 77, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := sampleGraph()
			g.MiscCosts = []MiscCost{tt.misc}

			kpi := ComputeHeaderKPIs(g, 6)

			if math.Abs(kpi.ProductionCost-tt.wantProduction) > 1e-9 {
				t.Errorf("ProductionCost = %v, want %v", kpi.ProductionCost, tt.wantProduction)
			}
			if math.Abs(kpi.OverheadTotal-tt.wantOverhead) > 1e-9 {
				t.Errorf("OverheadTotal = %v, want %v", kpi.OverheadTotal, tt.wantOverhead)
			}
		})
	}
}

func TestComputeHeaderKPIs_OverheadPctNil(t *testing.T) {
	kpi := ComputeHeaderKPIs(sampleGraph(), 6)
	if kpi.OverheadPct != nil {
		t.Errorf("OverheadPct = %v, want nil with no percent items", *kpi.OverheadPct)
	}
	if kpi.OverheadTotal != 0 {
		t.Errorf("OverheadTotal = %v, want 0", kpi.OverheadTotal)
	}

	g := sampleGraph()
	g.MiscCosts = []MiscCost{
		{Unit: MiscUnitPctRevenue, Value: 3},
		{Unit: MiscUnitPctRevenue, Value: 2},
	}
	kpi = ComputeHeaderKPIs(g, 6)
	if kpi.OverheadPct == nil || *kpi.OverheadPct != 5 {
		t.Errorf("OverheadPct = %v, want 5 (percentages summed)", kpi.OverheadPct)
	}
	if math.Abs(kpi.OverheadTotal-4500*0.05) > 1e-9 {
		t.Errorf("OverheadTotal = %v, want %v", kpi.OverheadTotal, 4500*0.05)
	}
}

func TestComputeHeaderKPIs_EbitdaAndEbit(t *testing.T) {
	g := sampleGraph()
	g.Transport.PumpedPct = 50
	g.Transport.PumpPurchase = 10
	g.Transport.PumpSale = 15
	g.Monthly = MonthlyCosts{Rent: 100}
	g.MiscCosts = []MiscCost{{Unit: MiscUnitPctRevenue, Value: 10}}
	g.Plant = PlantParams{MonthlyAmortization: 1500}

	kpi := ComputeHeaderKPIs(g, 6)

	// momd 500 + pumping 250 - production 600 - overhead 450
	wantEbitda := 500.0 + 250.0 - 600.0 - 450.0
	if math.Abs(kpi.EBITDA-wantEbitda) > 1e-9 {
		t.Errorf("EBITDA = %v, want %v", kpi.EBITDA, wantEbitda)
	}
	if kpi.Amortization != 9000 {
		t.Errorf("Amortization = %v, want 9000", kpi.Amortization)
	}
	if math.Abs(kpi.EBIT-(wantEbitda-9000)) > 1e-9 {
		t.Errorf("EBIT = %v, want %v", kpi.EBIT, wantEbitda-9000)
	}
}

func TestComputeHeaderKPIs_OverridePrecedence(t *testing.T) {
	g := sampleGraph()
	g.Materials[0].OverridePrice = floatPtr(3)

	kpi := ComputeHeaderKPIs(g, 0)

	// cmp becomes 10*3 = 30 per m³
	if kpi.MaterialCost != 3000 {
		t.Errorf("MaterialCost = %v, want 3000 with override price", kpi.MaterialCost)
	}
}

// assertAllFinite fails if any numeric output field is NaN or infinite.
func assertAllFinite(t *testing.T, kpi KPIResult) {
	t.Helper()
	fields := map[string]float64{
		"TotalVolumeM3":       kpi.TotalVolumeM3,
		"Revenue":             kpi.Revenue,
		"AvgSalePriceM3":      kpi.AvgSalePriceM3,
		"MaterialCost":        kpi.MaterialCost,
		"AvgMaterialCostM3":   kpi.AvgMaterialCostM3,
		"MOMDTotal":           kpi.MOMDTotal,
		"AvgMOMDM3":           kpi.AvgMOMDM3,
		"TransportPriceM3":    kpi.TransportPriceM3,
		"GrossMargin":         kpi.GrossMargin,
		"ProductionCost":      kpi.ProductionCost,
		"AvgProductionCostM3": kpi.AvgProductionCostM3,
		"OverheadTotal":       kpi.OverheadTotal,
		"PumpedVolumeM3":      kpi.PumpedVolumeM3,
		"PumpingMargin":       kpi.PumpingMargin,
		"EBITDA":              kpi.EBITDA,
		"Amortization":        kpi.Amortization,
		"EBIT":                kpi.EBIT,
	}
	if kpi.GrossMarginPct != nil {
		fields["GrossMarginPct"] = *kpi.GrossMarginPct
	}
	if kpi.OverheadPct != nil {
		fields["OverheadPct"] = *kpi.OverheadPct
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s = %v, want finite", name, v)
		}
	}
}

func TestComputeHeaderKPIs_NeverNaNOrInf(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	graphs := map[string]VariantGraph{
		"empty": {},
		"nan everywhere": {
			FormulaLines: []FormulaLine{
				{VolumeM3: nan, MOMD: nan, QuoteSurcharge: nan,
					Components: []FormulaComponent{{MaterialID: "m", QtyPerM3: nan}}},
			},
			Materials:   []MaterialPrice{{MaterialID: "m", CatalogPrice: nan, OverridePrice: &nan}},
			Transport:   TransportParams{AvgPriceM3: nan, PumpedPct: nan, PumpPurchase: nan, PumpSale: nan},
			Plant:       PlantParams{MonthlyAmortization: nan},
			Maintenance: MaintenanceCosts{SpareParts: nan},
			PerM3:       PerM3Costs{Water: nan},
			Monthly:     MonthlyCosts{Rent: nan},
			OneOff:      OneOffCosts{Installation: nan},
			Staffing:    StaffingCosts{OperatorCount: nan, OperatorCost: nan},
			MiscCosts: []MiscCost{
				{Unit: MiscUnitPerM3, Value: nan},
				{Unit: MiscUnitPctRevenue, Value: nan},
			},
		},
		"infinities": {
			FormulaLines: []FormulaLine{
				{VolumeM3: 10, MOMD: inf,
					Components: []FormulaComponent{{MaterialID: "m", QtyPerM3: inf}}},
			},
			Materials: []MaterialPrice{{MaterialID: "m", CatalogPrice: inf}},
			Transport: TransportParams{AvgPriceM3: inf, PumpedPct: inf},
		},
	}

	for name, g := range graphs {
		t.Run(name, func(t *testing.T) {
			for _, months := range []float64{0, 6, nan, inf} {
				assertAllFinite(t, ComputeHeaderKPIs(g, months))
			}
		})
	}
}

func TestComputeHeaderKPIs_InputsNotMutated(t *testing.T) {
	g := sampleGraph()
	ComputeHeaderKPIs(g, 6)

	if g.FormulaLines[0].VolumeM3 != 100 || g.FormulaLines[0].MOMD != 5 {
		t.Error("formula line mutated")
	}
	if g.Materials[0].CatalogPrice != 2 {
		t.Error("material price mutated")
	}
}
