// Package templates renders the HTML pages and HTMX partials of the
// application. Components receive plain data structs built by the handlers;
// no database access happens here.
package templates

// ActivePnl identifies the P&L the user is currently working in.
type ActivePnl struct {
	ID   string
	Name string
}

// PnlSelectorItem is one entry in the header P&L switcher dropdown.
type PnlSelectorItem struct {
	ID       string
	Name     string
	Client   string
	IsActive bool
}

// HeaderData feeds the top bar: the active P&L plus the switcher list.
type HeaderData struct {
	ActivePnl *ActivePnl
	Pnls      []PnlSelectorItem
}

// SidebarData feeds the navigation sidebar.
type SidebarData struct {
	ActivePnl     *ActivePnl
	ActivePath    string
	ContractCount int
	VariantCount  int
	MaterialCount int
	FormulaCount  int
}

// ── P&L pages ────────────────────────────────────────────────────────────

type PnlListItem struct {
	ID               string
	Name             string
	Client           string
	Status           string
	StatusBadgeClass string
	ContractCount    int
	CreatedDate      string
}

type PnlListData struct {
	Items      []PnlListItem
	TotalCount int
}

type PnlFormData struct {
	ID     string
	Name   string
	Client string
	Status string
	Notes  string
	IsEdit bool
}

// ── Contract pages ───────────────────────────────────────────────────────

type ContractListItem struct {
	ID             string
	Name           string
	DurationMonths string
	ConcreteBy     string
	ElectricityBy  string
	WaterBy        string
	VariantCount   int
}

type ContractListData struct {
	Items      []ContractListItem
	TotalCount int
}

type ContractFormData struct {
	ID             string
	Name           string
	DurationMonths string
	ConcreteBy     string
	ElectricityBy  string
	WaterBy        string
	Notes          string
	IsEdit         bool
}

// ── Variant pages ────────────────────────────────────────────────────────

type VariantListItem struct {
	ID               string
	Name             string
	Status           string
	StatusBadgeClass string
	MajorationPct    string
	LineCount        int
	UpdatedDate      string
}

type VariantListData struct {
	ContractID   string
	ContractName string
	Items        []VariantListItem
}

type VariantFormData struct {
	ID            string
	ContractID    string
	Name          string
	Status        string
	MajorationPct string
	Notes         string
	IsEdit        bool
}

// KpiRow is one formatted line of the variant dashboard.
type KpiRow struct {
	Label string
	Value string
	// Emphasis marks subtotal rows (gross margin, EBITDA, EBIT).
	Emphasis bool
}

// FormulaLineRow is one priced row of the variant's sales table.
type FormulaLineRow struct {
	ID          string
	FormulaName string
	// Volume/MOMD/Surcharge are rendered as inline-editable inputs, so they
	// carry plain numbers rather than formatted amounts.
	Volume    string
	MOMD      string
	Surcharge string
	UnitCost  string
	SalePrice string
	Revenue   string
}

// OverrideRow is one variant-scoped material price override.
type OverrideRow struct {
	ID           string
	MaterialName string
	CatalogPrice string
	Override     string
}

// MiscCostRow is one miscellaneous cost line.
type MiscCostRow struct {
	ID        string
	Label     string
	UnitLabel string
	Value     string
}

// FormulaOption is a selectable catalog formula for the add-line form.
type FormulaOption struct {
	ID   string
	Name string
}

// MaterialOption is a selectable catalog material for the override form.
type MaterialOption struct {
	ID   string
	Name string
}

// VariantViewData is everything the variant detail page shows.
type VariantViewData struct {
	ID               string
	ContractID       string
	ContractName     string
	Name             string
	Status           string
	StatusBadgeClass string
	MajorationPct    string
	DurationMonths   string

	KpiRows []KpiRow

	Lines           []FormulaLineRow
	FormulaOptions  []FormulaOption
	Overrides       []OverrideRow
	MaterialOptions []MaterialOption
	MiscCosts       []MiscCostRow
	MiscUnitOptions []SelectOption
}

// SelectOption is a generic value/label pair for dropdowns.
type SelectOption struct {
	Value string
	Label string
}

// ── Cost section form ────────────────────────────────────────────────────

// CostField is one numeric input of the costs form.
type CostField struct {
	Name  string
	Label string
	Value string
}

// CostSection groups the fields of one cost collection.
type CostSection struct {
	Title  string
	Prefix string
	Fields []CostField
}

type CostsFormData struct {
	VariantID   string
	VariantName string
	Sections    []CostSection
}

// ── Catalog pages ────────────────────────────────────────────────────────

type MaterialListItem struct {
	ID        string
	Name      string
	UOM       string
	UnitPrice string
}

type MaterialListData struct {
	Items      []MaterialListItem
	UOMOptions []string
}

type FormulaComponentRow struct {
	ID           string
	MaterialName string
	Qty          string
	UOM          string
}

type FormulaListItem struct {
	ID             string
	Name           string
	Code           string
	ComponentCount int
}

type FormulaListData struct {
	Items []FormulaListItem
}

type FormulaViewData struct {
	ID              string
	Name            string
	Code            string
	Components      []FormulaComponentRow
	MaterialOptions []MaterialOption
}
