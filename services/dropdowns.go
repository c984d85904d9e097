package services

// PnlStatusOptions lists the lifecycle states of a P&L.
var PnlStatusOptions = []string{"draft", "active", "archived"}

// VariantStatusOptions lists the lifecycle states of a pricing variant.
var VariantStatusOptions = []string{"draft", "submitted", "retained", "rejected"}

// ResponsibilityOptions lists which party bears an operating responsibility.
var ResponsibilityOptions = []string{"client", "supplier"}

// MaterialUOMOptions lists the units materials are priced in.
var MaterialUOMOptions = []string{"t", "kg", "m3", "L", "unit"}

// MiscUnitOptions lists the aggregation bucket tags for misc cost items.
var MiscUnitOptions = []string{
	MiscUnitPerM3,
	MiscUnitPerMonth,
	MiscUnitLumpSum,
	MiscUnitPctRevenue,
}

// MiscUnitLabels maps misc unit tags to display labels.
var MiscUnitLabels = map[string]string{
	MiscUnitPerM3:      "per m³",
	MiscUnitPerMonth:   "per month",
	MiscUnitLumpSum:    "lump sum",
	MiscUnitPctRevenue: "% of revenue",
}
