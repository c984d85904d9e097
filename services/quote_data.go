package services

// QuoteLine is one priced formula row of a quote document.
type QuoteLine struct {
	SINo        int
	FormulaName string
	VolumeM3    float64
	UnitPrice   float64
	LineTotal   float64
}

// QuoteData holds everything the quote PDF layout needs. Prices include the
// variant's majoration and per-line quote surcharges; they intentionally may
// differ from the KPI dashboard, which prices without either adjustment.
type QuoteData struct {
	CompanyName    string
	CompanyAddress string
	CompanyEmail   string

	Number     string
	IssueDate  string
	ValidUntil string

	Client       string
	ContractName string
	VariantName  string
	Status       string

	Lines []QuoteLine

	TotalVolumeM3 float64
	TotalAmount   float64
	AvgPriceM3    float64
	AmountInWords string

	PaymentTerms  string
	DeliveryTerms string
}

// quotePricingOptions is the adjustment set quotes are priced with.
var quotePricingOptions = PricingOptions{ApplyMajoration: true, ApplySurcharges: true}

// BuildQuoteData prices a variant graph for quote export. Lines with zero
// volume are kept on the document (a quoted formula can be optional), but
// only positive volumes feed the totals.
func BuildQuoteData(g VariantGraph, number, issueDate, validUntil string) QuoteData {
	data := QuoteData{
		CompanyName:    "BATIBETON SAS",
		CompanyAddress: "14 Quai des Chantiers, Lyon",
		CompanyEmail:   "contact@batibeton.fr",

		Number:     number,
		IssueDate:  issueDate,
		ValidUntil: validUntil,

		Client:       g.Client,
		ContractName: g.ContractName,
		VariantName:  g.Name,
		Status:       g.Status,

		PaymentTerms:  "Payment within 45 days of invoice date.",
		DeliveryTerms: "Prices valid for concrete produced on site during the contract period.",
	}

	prices := MaterialPriceIndex(g.Materials)

	for i, line := range g.FormulaLines {
		pricing := PriceFormulaLine(line, prices, g.Transport, g.MajorationPct, quotePricingOptions)
		volume := ToFiniteNumber(line.VolumeM3)
		lineTotal := 0.0
		if volume > 0 {
			lineTotal = volume * pricing.UnitSalePrice
			data.TotalVolumeM3 += volume
			data.TotalAmount += lineTotal
		}
		data.Lines = append(data.Lines, QuoteLine{
			SINo:        i + 1,
			FormulaName: line.FormulaName,
			VolumeM3:    volume,
			UnitPrice:   pricing.UnitSalePrice,
			LineTotal:   lineTotal,
		})
	}

	if data.TotalVolumeM3 > 0 {
		data.AvgPriceM3 = data.TotalAmount / data.TotalVolumeM3
	}
	data.AmountInWords = AmountToWords(data.TotalAmount)

	return data
}
