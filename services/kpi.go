package services

// KPIResult is the flat output of the header KPI computation. Percentages
// that have no basis (zero revenue, no percent-of-revenue items) are nil
// pointers so callers can tell "undefined" apart from "zero".
type KPIResult struct {
	Status string
	Client string

	TotalVolumeM3 float64

	Revenue        float64
	AvgSalePriceM3 float64

	MaterialCost      float64
	AvgMaterialCostM3 float64

	MOMDTotal float64
	AvgMOMDM3 float64

	TransportPriceM3 float64

	GrossMargin    float64
	GrossMarginPct *float64

	ProductionCost      float64
	AvgProductionCostM3 float64

	OverheadPct   *float64
	OverheadTotal float64

	PumpedVolumeM3 float64
	PumpingMargin  float64

	EBITDA       float64
	Amortization float64
	EBIT         float64
}

// ComputeHeaderKPIs aggregates a hydrated variant graph into the financial
// figures shown on the variant dashboard. It is a pure function: no inputs
// are mutated, nothing is validated, and dirty numeric data degrades to zero
// instead of failing — a best-effort estimate over whatever is supplied.
//
// Dashboard figures are priced without quote majorations and surcharges; the
// quote export applies them through the same pricing engine (see quote_data.go).
func ComputeHeaderKPIs(g VariantGraph, durationMonths float64) KPIResult {
	durationMonths = ToFiniteNumber(durationMonths)

	result := KPIResult{
		Status:           g.Status,
		Client:           g.Client,
		TransportPriceM3: ToFiniteNumber(g.Transport.AvgPriceM3),
	}

	prices := MaterialPriceIndex(g.Materials)
	opts := PricingOptions{ApplyMajoration: false, ApplySurcharges: false}

	// Revenue, material cost and MOMD accumulate over lines with volume.
	var totalVolume float64
	for _, line := range g.FormulaLines {
		volume := ToFiniteNumber(line.VolumeM3)
		totalVolume += volume
		if volume <= 0 {
			continue
		}
		pricing := PriceFormulaLine(line, prices, g.Transport, g.MajorationPct, opts)
		result.Revenue += volume * pricing.UnitSalePrice
		result.MaterialCost += volume * pricing.UnitMaterialCost
		result.MOMDTotal += volume * ToFiniteNumber(line.MOMD)
	}
	result.TotalVolumeM3 = totalVolume

	if totalVolume > 0 {
		result.AvgSalePriceM3 = result.Revenue / totalVolume
		result.AvgMaterialCostM3 = result.MaterialCost / totalVolume
		result.AvgMOMDM3 = result.MOMDTotal / totalVolume
	}

	result.GrossMargin = result.Revenue - result.MaterialCost
	if result.Revenue != 0 {
		pct := result.GrossMargin / result.Revenue * 100
		result.GrossMarginPct = &pct
	}

	// Production bucket: per-m3 sections scale with volume, monthly sections
	// with duration, one-offs stay flat. Misc items land per their unit tag;
	// unrecognized tags count as lump sums.
	production := g.PerM3.Total() * totalVolume
	production += g.Monthly.Total() * durationMonths
	production += g.Maintenance.MonthlyTotal() * durationMonths
	production += g.Staffing.MonthlyTotal() * durationMonths
	production += g.OneOff.Total()

	var overheadPctSum float64
	var hasOverheadPct bool
	for _, misc := range g.MiscCosts {
		value := ToFiniteNumber(misc.Value)
		switch misc.Unit {
		case MiscUnitPerM3:
			production += value * totalVolume
		case MiscUnitPerMonth:
			production += value * durationMonths
		case MiscUnitPctRevenue:
			overheadPctSum += value
			hasOverheadPct = true
		default:
			production += value
		}
	}
	result.ProductionCost = ToFiniteNumber(production)
	if totalVolume > 0 {
		result.AvgProductionCostM3 = result.ProductionCost / totalVolume
	}

	if hasOverheadPct {
		result.OverheadPct = &overheadPctSum
		result.OverheadTotal = ToFiniteNumber(result.Revenue * overheadPctSum / 100)
	}

	result.PumpedVolumeM3 = ToFiniteNumber(totalVolume * g.Transport.PumpedPct / 100)
	result.PumpingMargin = ToFiniteNumber(
		(ToFiniteNumber(g.Transport.PumpSale) - ToFiniteNumber(g.Transport.PumpPurchase)) * result.PumpedVolumeM3)

	result.EBITDA = result.MOMDTotal + result.PumpingMargin - result.ProductionCost - result.OverheadTotal
	result.Amortization = ToFiniteNumber(g.Plant.MonthlyAmortization) * durationMonths
	result.EBIT = result.EBITDA - result.Amortization

	return sanitizeKPIs(result)
}

// sanitizeKPIs re-applies the finite-number policy to every output field so
// no NaN or infinity can reach presentation code, whatever the inputs were.
func sanitizeKPIs(r KPIResult) KPIResult {
	r.TotalVolumeM3 = ToFiniteNumber(r.TotalVolumeM3)
	r.Revenue = ToFiniteNumber(r.Revenue)
	r.AvgSalePriceM3 = ToFiniteNumber(r.AvgSalePriceM3)
	r.MaterialCost = ToFiniteNumber(r.MaterialCost)
	r.AvgMaterialCostM3 = ToFiniteNumber(r.AvgMaterialCostM3)
	r.MOMDTotal = ToFiniteNumber(r.MOMDTotal)
	r.AvgMOMDM3 = ToFiniteNumber(r.AvgMOMDM3)
	r.TransportPriceM3 = ToFiniteNumber(r.TransportPriceM3)
	r.GrossMargin = ToFiniteNumber(r.GrossMargin)
	r.ProductionCost = ToFiniteNumber(r.ProductionCost)
	r.AvgProductionCostM3 = ToFiniteNumber(r.AvgProductionCostM3)
	r.OverheadTotal = ToFiniteNumber(r.OverheadTotal)
	r.PumpedVolumeM3 = ToFiniteNumber(r.PumpedVolumeM3)
	r.PumpingMargin = ToFiniteNumber(r.PumpingMargin)
	r.EBITDA = ToFiniteNumber(r.EBITDA)
	r.Amortization = ToFiniteNumber(r.Amortization)
	r.EBIT = ToFiniteNumber(r.EBIT)
	if r.GrossMarginPct != nil {
		pct := ToFiniteNumber(*r.GrossMarginPct)
		r.GrossMarginPct = &pct
	}
	if r.OverheadPct != nil {
		pct := ToFiniteNumber(*r.OverheadPct)
		r.OverheadPct = &pct
	}
	return r
}
