// Package services holds the pure domain logic of the P&L application:
// numeric policy, formula pricing, KPI aggregation and document export data.
package services

// PricingOptions selects which quote-only adjustments a pricing pass applies.
// The KPI dashboard and the Excel export price with both flags off; the quote
// PDF prices with both on. Keeping a single engine behind the flags is what
// prevents the two paths from drifting apart.
type PricingOptions struct {
	ApplyMajoration bool
	ApplySurcharges bool
}

// FormulaPricing is the priced view of one formula line.
type FormulaPricing struct {
	UnitMaterialCost float64 // material cost per m3 (CMP)
	UnitTransport    float64 // transport share per m3
	UnitSalePrice    float64 // sale price per m3
}

// ResolveMaterialPrice returns the effective unit price of a material:
// variant override first, catalog price second, zero when neither is set.
func ResolveMaterialPrice(m MaterialPrice) float64 {
	if m.OverridePrice != nil {
		return ToFiniteNumber(*m.OverridePrice)
	}
	return ToFiniteNumber(m.CatalogPrice)
}

// MaterialPriceIndex builds a material-id -> effective price lookup for a graph.
func MaterialPriceIndex(materials []MaterialPrice) map[string]float64 {
	index := make(map[string]float64, len(materials))
	for _, m := range materials {
		index[m.MaterialID] = ResolveMaterialPrice(m)
	}
	return index
}

// PriceFormulaLine prices one formula line. The unit material cost is the
// dosage-weighted sum of effective material prices; the unit sale price adds
// transport and the line's MOMD. With ApplyMajoration the majoration
// percentage inflates material and transport costs; with ApplySurcharges the
// line's quote surcharge is added to the sale price.
func PriceFormulaLine(line FormulaLine, prices map[string]float64, transport TransportParams, majorationPct float64, opts PricingOptions) FormulaPricing {
	var materialCost float64
	for _, c := range line.Components {
		materialCost += ToFiniteNumber(c.QtyPerM3) * ToFiniteNumber(prices[c.MaterialID])
	}

	unitTransport := ToFiniteNumber(transport.AvgPriceM3)
	if opts.ApplyMajoration {
		factor := 1 + ToFiniteNumber(majorationPct)/100
		materialCost *= factor
		unitTransport *= factor
	}

	salePrice := materialCost + unitTransport + ToFiniteNumber(line.MOMD)
	if opts.ApplySurcharges {
		salePrice += ToFiniteNumber(line.QuoteSurcharge)
	}

	return FormulaPricing{
		UnitMaterialCost: ToFiniteNumber(materialCost),
		UnitTransport:    unitTransport,
		UnitSalePrice:    ToFiniteNumber(salePrice),
	}
}
