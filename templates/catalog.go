package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// MaterialListPage renders the material catalog.
func MaterialListPage(data MaterialListData, header HeaderData, sidebar SidebarData) templ.Component {
	return Layout("Materials", header, sidebar, MaterialListContent(data))
}

func MaterialListContent(data MaterialListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)

		h.raw(`<h1 class="text-2xl font-semibold mb-4">Materials</h1>`)

		h.raw(`<div class="overflow-x-auto mb-4"><table class="table bg-base-100">`)
		h.raw(`<thead><tr><th>Name</th><th>UOM</th><th class="text-right">Unit price</th><th></th></tr></thead><tbody>`)
		for _, item := range data.Items {
			h.raw(`<tr><td>`)
			h.text(item.Name)
			h.raw(`</td><td>`)
			h.text(item.UOM)
			h.raw(`</td><td class="text-right">`)
			h.text(item.UnitPrice)
			h.raw(`</td><td class="text-right">`)
			h.raw(`<button class="btn btn-ghost btn-xs text-error"`)
			h.attr("hx-delete", "/materials/"+item.ID)
			h.raw(` hx-confirm="Delete this material?" hx-target="closest tr" hx-swap="outerHTML">Delete</button>`)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table></div>`)

		h.raw(`<div class="card bg-base-100 max-w-xl p-4"><h2 class="font-semibold mb-2">Add material</h2>`)
		h.raw(`<form class="flex gap-2 items-end" hx-post="/materials" hx-swap="none">`)
		h.raw(`<label class="form-control"><span class="label-text text-xs">Name</span>`)
		h.raw(`<input type="text" name="name" class="input input-bordered input-sm" required></label>`)
		h.raw(`<label class="form-control"><span class="label-text text-xs">UOM</span>`)
		h.raw(`<select name="uom" class="select select-bordered select-sm">`)
		for _, uom := range data.UOMOptions {
			h.raw(`<option`)
			h.attr("value", uom)
			h.raw(`>`)
			h.text(uom)
			h.raw(`</option>`)
		}
		h.raw(`</select></label>`)
		h.raw(`<label class="form-control"><span class="label-text text-xs">Unit price</span>`)
		h.raw(`<input type="number" name="unit_price" step="any" class="input input-bordered input-sm" value="0"></label>`)
		h.raw(`<button type="submit" class="btn btn-primary btn-sm">Add</button></form></div>`)
		return h.err
	})
}

// FormulaListPage renders the formula catalog.
func FormulaListPage(data FormulaListData, header HeaderData, sidebar SidebarData) templ.Component {
	return Layout("Formulas", header, sidebar, FormulaListContent(data))
}

func FormulaListContent(data FormulaListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)

		h.raw(`<h1 class="text-2xl font-semibold mb-4">Formulas</h1>`)

		h.raw(`<div class="overflow-x-auto mb-4"><table class="table bg-base-100">`)
		h.raw(`<thead><tr><th>Name</th><th>Code</th><th>Components</th><th></th></tr></thead><tbody>`)
		for _, item := range data.Items {
			h.raw(`<tr><td><a class="link"`)
			h.attr("href", "/formulas/"+item.ID)
			h.raw(`>`)
			h.text(item.Name)
			h.raw(`</a></td><td>`)
			h.text(item.Code)
			h.rawf(`</td><td>%d</td><td class="text-right">`, item.ComponentCount)
			h.raw(`<button class="btn btn-ghost btn-xs text-error"`)
			h.attr("hx-delete", "/formulas/"+item.ID)
			h.raw(` hx-confirm="Delete this formula?" hx-target="closest tr" hx-swap="outerHTML">Delete</button>`)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table></div>`)

		h.raw(`<div class="card bg-base-100 max-w-xl p-4"><h2 class="font-semibold mb-2">Add formula</h2>`)
		h.raw(`<form class="flex gap-2 items-end" hx-post="/formulas" hx-swap="none">`)
		h.raw(`<label class="form-control"><span class="label-text text-xs">Name</span>`)
		h.raw(`<input type="text" name="name" class="input input-bordered input-sm" required></label>`)
		h.raw(`<label class="form-control"><span class="label-text text-xs">Code</span>`)
		h.raw(`<input type="text" name="code" class="input input-bordered input-sm"></label>`)
		h.raw(`<button type="submit" class="btn btn-primary btn-sm">Add</button></form></div>`)
		return h.err
	})
}

// FormulaViewPage renders one formula's recipe.
func FormulaViewPage(data FormulaViewData, header HeaderData, sidebar SidebarData) templ.Component {
	return Layout(data.Name, header, sidebar, FormulaViewContent(data))
}

func FormulaViewContent(data FormulaViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)

		h.raw(`<div class="flex items-center justify-between mb-4"><div>`)
		h.raw(`<h1 class="text-2xl font-semibold">`)
		h.text(data.Name)
		h.raw(`</h1>`)
		if data.Code != "" {
			h.raw(`<p class="text-sm opacity-70">`)
			h.text(data.Code)
			h.raw(`</p>`)
		}
		h.raw(`</div><a href="/formulas" class="btn btn-ghost btn-sm">Back</a></div>`)

		h.raw(`<div class="card bg-base-100 p-4"><h2 class="font-semibold mb-2">Recipe (per m³)</h2>`)
		if len(data.Components) > 0 {
			h.raw(`<table class="table table-sm"><thead><tr><th>Material</th><th class="text-right">Qty / m³</th><th>UOM</th><th></th></tr></thead><tbody>`)
			for _, c := range data.Components {
				h.raw(`<tr><td>`)
				h.text(c.MaterialName)
				h.raw(`</td><td class="text-right">`)
				h.text(c.Qty)
				h.raw(`</td><td>`)
				h.text(c.UOM)
				h.raw(`</td><td class="text-right"><button class="btn btn-ghost btn-xs text-error"`)
				h.attr("hx-delete", "/formula-components/"+c.ID)
				h.raw(` hx-confirm="Remove this component?" hx-target="closest tr" hx-swap="outerHTML">Remove</button></td></tr>`)
			}
			h.raw(`</tbody></table>`)
		} else {
			h.raw(`<p class="text-sm opacity-70">No components yet.</p>`)
		}

		h.raw(`<form class="flex gap-2 items-end mt-2"`)
		h.attr("hx-post", "/formulas/"+data.ID+"/components")
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
		h.raw(`<label class="form-control"><span class="label-text text-xs">Qty / m³</span>`)
		h.raw(`<input type="number" name="qty_per_m3" step="any" class="input input-bordered input-sm" required></label>`)
		h.raw(`<button type="submit" class="btn btn-primary btn-sm">Add component</button></form></div>`)
		return h.err
	})
}
