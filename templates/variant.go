package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// VariantListPage renders the variants of one contract.
func VariantListPage(data VariantListData, header HeaderData, sidebar SidebarData) templ.Component {
	return Layout("Variants", header, sidebar, VariantListContent(data))
}

func VariantListContent(data VariantListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)

		h.raw(`<div class="flex items-center justify-between mb-4"><div>`)
		h.raw(`<h1 class="text-2xl font-semibold">Variants</h1>`)
		h.raw(`<p class="text-sm opacity-70">`)
		h.text(data.ContractName)
		h.raw(`</p></div><a class="btn btn-primary btn-sm"`)
		h.attr("href", "/contracts/"+data.ContractID+"/variants/new")
		h.raw(`>New variant</a></div>`)

		if len(data.Items) == 0 {
			h.raw(`<div class="card bg-base-100 p-8 text-center opacity-70">No variants on this contract yet.</div>`)
			return h.err
		}

		h.raw(`<div class="overflow-x-auto"><table class="table bg-base-100">`)
		h.raw(`<thead><tr><th>Name</th><th>Status</th><th>Majoration</th><th>Lines</th><th>Updated</th><th></th></tr></thead><tbody>`)
		for _, item := range data.Items {
			h.raw(`<tr><td><a class="link"`)
			h.attr("href", "/variants/"+item.ID)
			h.raw(`>`)
			h.text(item.Name)
			h.raw(`</a></td><td><span class="badge `)
			h.raw(item.StatusBadgeClass)
			h.raw(`">`)
			h.text(item.Status)
			h.raw(`</span></td><td>`)
			h.text(item.MajorationPct)
			h.rawf(`</td><td>%d</td><td>`, item.LineCount)
			h.text(item.UpdatedDate)
			h.raw(`</td><td class="text-right"><a class="btn btn-ghost btn-xs"`)
			h.attr("href", "/variants/"+item.ID+"/edit")
			h.raw(`>Edit</a>`)
			h.raw(`<button class="btn btn-ghost btn-xs text-error"`)
			h.attr("hx-delete", "/variants/"+item.ID)
			h.raw(` hx-confirm="Delete this variant?" hx-target="closest tr" hx-swap="outerHTML">Delete</button>`)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table></div>`)
		return h.err
	})
}

// VariantFormPage renders the create/edit variant form.
func VariantFormPage(data VariantFormData, header HeaderData, sidebar SidebarData) templ.Component {
	title := "New variant"
	if data.IsEdit {
		title = "Edit variant"
	}
	return Layout(title, header, sidebar, VariantFormContent(data))
}

func VariantFormContent(data VariantFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)

		h.raw(`<div class="card bg-base-100 max-w-xl p-6">`)
		if data.IsEdit {
			h.raw(`<h1 class="text-xl font-semibold mb-4">Edit variant</h1><form`)
			h.attr("hx-post", "/variants/"+data.ID+"/edit")
		} else {
			h.raw(`<h1 class="text-xl font-semibold mb-4">New variant</h1><form`)
			h.attr("hx-post", "/contracts/"+data.ContractID+"/variants/new")
		}
		h.raw(` hx-swap="none">`)

		h.raw(`<label class="form-control mb-3"><span class="label-text">Name</span>`)
		h.raw(`<input type="text" name="name" class="input input-bordered" required`)
		h.attr("value", data.Name)
		h.raw(`></label>`)

		h.raw(`<label class="form-control mb-3"><span class="label-text">Status</span>`)
		h.raw(`<select name="status" class="select select-bordered">`)
		for _, status := range []string{"draft", "submitted", "retained", "rejected"} {
			h.raw(`<option`)
			h.attr("value", status)
			if status == data.Status {
				h.raw(` selected`)
			}
			h.raw(`>`)
			h.text(status)
			h.raw(`</option>`)
		}
		h.raw(`</select></label>`)

		h.raw(`<label class="form-control mb-3"><span class="label-text">Majoration (%)</span>`)
		h.raw(`<input type="number" name="majoration_pct" step="0.1" class="input input-bordered"`)
		h.attr("value", data.MajorationPct)
		h.raw(`></label>`)

		h.raw(`<label class="form-control mb-4"><span class="label-text">Notes</span>`)
		h.raw(`<textarea name="notes" class="textarea textarea-bordered">`)
		h.text(data.Notes)
		h.raw(`</textarea></label>`)

		h.raw(`<div class="flex gap-2"><button type="submit" class="btn btn-primary btn-sm">Save</button>`)
		h.raw(`<a href="/variants" class="btn btn-ghost btn-sm">Cancel</a></div>`)
		h.raw(`</form></div>`)
		return h.err
	})
}

// VariantViewPage renders the variant detail page with the KPI dashboard.
func VariantViewPage(data VariantViewData, header HeaderData, sidebar SidebarData) templ.Component {
	return Layout(data.Name, header, sidebar, VariantViewContent(data))
}

func VariantViewContent(data VariantViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)

		// Title row with status and export actions
		h.raw(`<div class="flex items-center justify-between mb-4"><div>`)
		h.raw(`<h1 class="text-2xl font-semibold">`)
		h.text(data.Name)
		h.raw(` <span class="badge `)
		h.raw(data.StatusBadgeClass)
		h.raw(`">`)
		h.text(data.Status)
		h.raw(`</span></h1><p class="text-sm opacity-70">`)
		h.text(data.ContractName)
		h.raw(` · `)
		h.text(data.DurationMonths)
		h.raw(` months · majoration `)
		h.text(data.MajorationPct)
		h.raw(`</p></div><div class="flex gap-2">`)
		h.raw(`<a class="btn btn-outline btn-sm"`)
		h.attr("href", "/variants/"+data.ID+"/export/excel")
		h.raw(`>Excel</a><a class="btn btn-outline btn-sm"`)
		h.attr("href", "/variants/"+data.ID+"/export/quote")
		h.raw(`>Quote PDF</a><a class="btn btn-ghost btn-sm"`)
		h.attr("href", "/variants/"+data.ID+"/costs")
		h.raw(`>Costs</a></div></div>`)

		if err := KpiDashboard(data).Render(ctx, w); err != nil {
			return err
		}

		renderFormulaLinesCard(h, data)
		renderOverridesCard(h, data)
		renderMiscCostsCard(h, data)
		return h.err
	})
}

// KpiDashboard renders the header KPI grid. Served standalone at
// /variants/{id}/kpis so HTMX can refresh it after any edit.
func KpiDashboard(data VariantViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)

		h.raw(`<div id="kpi-dashboard" class="card bg-base-100 p-4 mb-4"`)
		h.attr("hx-get", "/variants/"+data.ID+"/kpis")
		h.raw(` hx-trigger="kpis-changed from:body" hx-swap="outerHTML">`)
		h.raw(`<div class="grid grid-cols-2 md:grid-cols-4 gap-3">`)
		for _, row := range data.KpiRows {
			h.raw(`<div class="stat p-2`)
			if row.Emphasis {
				h.raw(` bg-base-200 rounded`)
			}
			h.raw(`"><div class="stat-title text-xs">`)
			h.text(row.Label)
			h.raw(`</div><div class="stat-value text-base`)
			if row.Emphasis {
				h.raw(` text-primary`)
			}
			h.raw(`">`)
			h.text(row.Value)
			h.raw(`</div></div>`)
		}
		h.raw(`</div></div>`)
		return h.err
	})
}

// lineInputCell renders one inline-editable numeric cell; a change posts the
// single field back to the line so the dashboard can refresh.
func lineInputCell(h *htmlWriter, lineID, name, value string) {
	h.raw(`<td class="text-right"><input type="number" step="any" class="input input-ghost input-xs w-20 text-right"`)
	h.attr("name", name)
	h.attr("value", value)
	h.attr("hx-post", "/formula-lines/"+lineID)
	h.raw(` hx-trigger="change" hx-swap="none"></td>`)
}

func renderFormulaLinesCard(h *htmlWriter, data VariantViewData) {
	h.raw(`<div class="card bg-base-100 p-4 mb-4"><h2 class="font-semibold mb-2">Formula lines</h2>`)
	h.raw(`<div class="overflow-x-auto"><table class="table table-sm">`)
	h.raw(`<thead><tr><th>Formula</th><th class="text-right">Volume (m³)</th><th class="text-right">MOMD</th><th class="text-right">Surcharge</th><th class="text-right">Cost / m³</th><th class="text-right">Price / m³</th><th class="text-right">Revenue</th><th></th></tr></thead><tbody id="formula-lines">`)
	for _, line := range data.Lines {
		h.raw(`<tr><td>`)
		h.text(line.FormulaName)
		h.raw(`</td>`)
		lineInputCell(h, line.ID, "volume_m3", line.Volume)
		lineInputCell(h, line.ID, "momd", line.MOMD)
		lineInputCell(h, line.ID, "quote_surcharge", line.Surcharge)
		h.raw(`<td class="text-right">`)
		h.text(line.UnitCost)
		h.raw(`</td><td class="text-right">`)
		h.text(line.SalePrice)
		h.raw(`</td><td class="text-right">`)
		h.text(line.Revenue)
		h.raw(`</td><td class="text-right">`)
		h.raw(`<button class="btn btn-ghost btn-xs text-error"`)
		h.attr("hx-delete", "/formula-lines/"+line.ID)
		h.raw(` hx-confirm="Remove this line?" hx-target="closest tr" hx-swap="outerHTML">Remove</button></td></tr>`)
	}
	h.raw(`</tbody></table></div>`)

	// Add-line form
	h.raw(`<form class="flex gap-2 items-end mt-2"`)
	h.attr("hx-post", "/variants/"+data.ID+"/formula-lines")
	h.raw(` hx-swap="none">`)
	h.raw(`<label class="form-control"><span class="label-text text-xs">Formula</span>`)
	h.raw(`<select name="formula" class="select select-bordered select-sm" required>`)
	h.raw(`<option value="">Choose…</option>`)
	for _, opt := range data.FormulaOptions {
		h.raw(`<option`)
		h.attr("value", opt.ID)
		h.raw(`>`)
		h.text(opt.Name)
		h.raw(`</option>`)
	}
	h.raw(`</select></label>`)
	h.raw(`<label class="form-control"><span class="label-text text-xs">Volume (m³)</span>`)
	h.raw(`<input type="number" name="volume_m3" step="any" class="input input-bordered input-sm" value="0"></label>`)
	h.raw(`<label class="form-control"><span class="label-text text-xs">MOMD / m³</span>`)
	h.raw(`<input type="number" name="momd" step="any" class="input input-bordered input-sm" value="0"></label>`)
	h.raw(`<label class="form-control"><span class="label-text text-xs">Quote surcharge / m³</span>`)
	h.raw(`<input type="number" name="quote_surcharge" step="any" class="input input-bordered input-sm" value="0"></label>`)
	h.raw(`<button type="submit" class="btn btn-primary btn-sm">Add line</button></form></div>`)
}

func renderOverridesCard(h *htmlWriter, data VariantViewData) {
	h.raw(`<div class="card bg-base-100 p-4 mb-4"><h2 class="font-semibold mb-2">Material price overrides</h2>`)
	if len(data.Overrides) > 0 {
		h.raw(`<table class="table table-sm"><thead><tr><th>Material</th><th class="text-right">Catalog</th><th class="text-right">Override</th><th></th></tr></thead><tbody>`)
		for _, o := range data.Overrides {
			h.raw(`<tr><td>`)
			h.text(o.MaterialName)
			h.raw(`</td><td class="text-right">`)
			h.text(o.CatalogPrice)
			h.raw(`</td><td class="text-right">`)
			h.text(o.Override)
			h.raw(`</td><td class="text-right"><button class="btn btn-ghost btn-xs text-error"`)
			h.attr("hx-delete", "/material-overrides/"+o.ID)
			h.raw(` hx-confirm="Remove this override?" hx-target="closest tr" hx-swap="outerHTML">Remove</button></td></tr>`)
		}
		h.raw(`</tbody></table>`)
	} else {
		h.raw(`<p class="text-sm opacity-70">No overrides; catalog prices apply.</p>`)
	}

	h.raw(`<form class="flex gap-2 items-end mt-2"`)
	h.attr("hx-post", "/variants/"+data.ID+"/material-overrides")
	h.raw(` hx-swap="none">`)
	h.raw(`<label class="form-control"><span class="label-text text-xs">Material</span>`)
	h.raw(`<select name="material" class="select select-bordered select-sm" required>`)
	h.raw(`<option value="">Choose…</option>`)
	for _, opt := range data.MaterialOptions {
		h.raw(`<option`)
		h.attr("value", opt.ID)
		h.raw(`>`)
		h.text(opt.Name)
		h.raw(`</option>`)
	}
	h.raw(`</select></label>`)
	h.raw(`<label class="form-control"><span class="label-text text-xs">Price / unit</span>`)
	h.raw(`<input type="number" name="unit_price" step="any" class="input input-bordered input-sm" value="0"></label>`)
	h.raw(`<button type="submit" class="btn btn-primary btn-sm">Add override</button></form></div>`)
}

func renderMiscCostsCard(h *htmlWriter, data VariantViewData) {
	h.raw(`<div class="card bg-base-100 p-4 mb-4"><h2 class="font-semibold mb-2">Miscellaneous costs</h2>`)
	if len(data.MiscCosts) > 0 {
		h.raw(`<table class="table table-sm"><thead><tr><th>Label</th><th>Basis</th><th class="text-right">Value</th><th></th></tr></thead><tbody>`)
		for _, m := range data.MiscCosts {
			h.raw(`<tr><td>`)
			h.text(m.Label)
			h.raw(`</td><td>`)
			h.text(m.UnitLabel)
			h.raw(`</td><td class="text-right">`)
			h.text(m.Value)
			h.raw(`</td><td class="text-right"><button class="btn btn-ghost btn-xs text-error"`)
			h.attr("hx-delete", "/misc-costs/"+m.ID)
			h.raw(` hx-confirm="Remove this cost?" hx-target="closest tr" hx-swap="outerHTML">Remove</button></td></tr>`)
		}
		h.raw(`</tbody></table>`)
	} else {
		h.raw(`<p class="text-sm opacity-70">No miscellaneous costs.</p>`)
	}

	h.raw(`<form class="flex gap-2 items-end mt-2"`)
	h.attr("hx-post", "/variants/"+data.ID+"/misc-costs")
	h.raw(` hx-swap="none">`)
	h.raw(`<label class="form-control"><span class="label-text text-xs">Label</span>`)
	h.raw(`<input type="text" name="label" class="input input-bordered input-sm" required></label>`)
	h.raw(`<label class="form-control"><span class="label-text text-xs">Basis</span>`)
	h.raw(`<select name="unit" class="select select-bordered select-sm">`)
	for _, opt := range data.MiscUnitOptions {
		h.raw(`<option`)
		h.attr("value", opt.Value)
		h.raw(`>`)
		h.text(opt.Label)
		h.raw(`</option>`)
	}
	h.raw(`</select></label>`)
	h.raw(`<label class="form-control"><span class="label-text text-xs">Value</span>`)
	h.raw(`<input type="number" name="value" step="any" class="input input-bordered input-sm" value="0"></label>`)
	h.raw(`<button type="submit" class="btn btn-primary btn-sm">Add cost</button></form></div>`)
}
