package services

// Cost sections are flat records of named amounts. Each section exposes its
// fields explicitly and totals them with a fixed fold, so the set of costs
// that feed the production bucket is visible in the type itself.

// MaintenanceCosts are monthly plant upkeep amounts.
type MaintenanceCosts struct {
	SpareParts  float64
	Servicing   float64
	WearParts   float64
	Calibration float64
}

// MonthlyTotal returns the maintenance cost for one month of operation.
func (m MaintenanceCosts) MonthlyTotal() float64 {
	return ToFiniteNumber(m.SpareParts) +
		ToFiniteNumber(m.Servicing) +
		ToFiniteNumber(m.WearParts) +
		ToFiniteNumber(m.Calibration)
}

// PerM3Costs are operating costs incurred per cubic meter produced.
type PerM3Costs struct {
	Water       float64
	Electricity float64
	Additives   float64
	LoaderFuel  float64
}

// Total returns the operating cost per cubic meter.
func (p PerM3Costs) Total() float64 {
	return ToFiniteNumber(p.Water) +
		ToFiniteNumber(p.Electricity) +
		ToFiniteNumber(p.Additives) +
		ToFiniteNumber(p.LoaderFuel)
}

// MonthlyCosts are fixed site costs incurred per month of operation.
type MonthlyCosts struct {
	Rent           float64
	SiteFacilities float64
	Insurance      float64
	Telecom        float64
	Vehicles       float64
}

// Total returns the fixed site cost for one month.
func (m MonthlyCosts) Total() float64 {
	return ToFiniteNumber(m.Rent) +
		ToFiniteNumber(m.SiteFacilities) +
		ToFiniteNumber(m.Insurance) +
		ToFiniteNumber(m.Telecom) +
		ToFiniteNumber(m.Vehicles)
}

// OneOffCosts are costs incurred once over the life of the contract,
// independent of volume and duration.
type OneOffCosts struct {
	Installation  float64
	Dismantling   float64
	TransportIn   float64
	TransportOut  float64
	Commissioning float64
}

// Total returns the sum of all one-off costs.
func (o OneOffCosts) Total() float64 {
	return ToFiniteNumber(o.Installation) +
		ToFiniteNumber(o.Dismantling) +
		ToFiniteNumber(o.TransportIn) +
		ToFiniteNumber(o.TransportOut) +
		ToFiniteNumber(o.Commissioning)
}

// StaffingCosts hold headcount and monthly cost per head for each site role.
type StaffingCosts struct {
	ManagerCount  float64
	ManagerCost   float64
	OperatorCount float64
	OperatorCost  float64
	LabCount      float64
	LabCost       float64
	DriverCount   float64
	DriverCost    float64
}

// MonthlyTotal returns the staffing cost for one month: headcount times
// monthly cost per head, summed over roles.
func (s StaffingCosts) MonthlyTotal() float64 {
	return ToFiniteNumber(s.ManagerCount)*ToFiniteNumber(s.ManagerCost) +
		ToFiniteNumber(s.OperatorCount)*ToFiniteNumber(s.OperatorCost) +
		ToFiniteNumber(s.LabCount)*ToFiniteNumber(s.LabCost) +
		ToFiniteNumber(s.DriverCount)*ToFiniteNumber(s.DriverCost)
}

// Misc cost unit tags. Unrecognized tags are treated as lump sums.
const (
	MiscUnitPerM3      = "per_m3"
	MiscUnitPerMonth   = "per_month"
	MiscUnitLumpSum    = "lump_sum"
	MiscUnitPctRevenue = "pct_revenue"
)

// MiscCost is a free-form cost line whose unit tag decides which aggregation
// bucket it lands in.
type MiscCost struct {
	Label string
	Unit  string
	Value float64
}
