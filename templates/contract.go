package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ContractListPage renders the contract list of the active P&L.
func ContractListPage(data ContractListData, header HeaderData, sidebar SidebarData) templ.Component {
	return Layout("Contracts", header, sidebar, ContractListContent(data))
}

func ContractListContent(data ContractListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)

		h.raw(`<div class="flex items-center justify-between mb-4">`)
		h.rawf(`<h1 class="text-2xl font-semibold">Contracts <span class="badge">%d</span></h1>`, data.TotalCount)
		h.raw(`<a href="/contracts/new" class="btn btn-primary btn-sm">New contract</a></div>`)

		if len(data.Items) == 0 {
			h.raw(`<div class="card bg-base-100 p-8 text-center opacity-70">No contracts in this P&amp;L yet.</div>`)
			return h.err
		}

		h.raw(`<div class="overflow-x-auto"><table class="table bg-base-100">`)
		h.raw(`<thead><tr><th>Name</th><th>Duration</th><th>Concrete</th><th>Electricity</th><th>Water</th><th>Variants</th><th></th></tr></thead><tbody>`)
		for _, item := range data.Items {
			h.raw(`<tr><td><a class="link"`)
			h.attr("href", "/contracts/"+item.ID+"/variants")
			h.raw(`>`)
			h.text(item.Name)
			h.raw(`</a></td><td>`)
			h.text(item.DurationMonths)
			h.raw(` mo</td><td>`)
			h.text(item.ConcreteBy)
			h.raw(`</td><td>`)
			h.text(item.ElectricityBy)
			h.raw(`</td><td>`)
			h.text(item.WaterBy)
			h.rawf(`</td><td>%d</td>`, item.VariantCount)
			h.raw(`<td class="text-right"><a class="btn btn-ghost btn-xs"`)
			h.attr("href", "/contracts/"+item.ID+"/edit")
			h.raw(`>Edit</a>`)
			h.raw(`<button class="btn btn-ghost btn-xs text-error"`)
			h.attr("hx-delete", "/contracts/"+item.ID)
			h.raw(` hx-confirm="Delete this contract and its variants?" hx-target="closest tr" hx-swap="outerHTML">Delete</button>`)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table></div>`)
		return h.err
	})
}

// ContractFormPage renders the create/edit contract form.
func ContractFormPage(data ContractFormData, header HeaderData, sidebar SidebarData) templ.Component {
	title := "New contract"
	if data.IsEdit {
		title = "Edit contract"
	}
	return Layout(title, header, sidebar, ContractFormContent(data))
}

func ContractFormContent(data ContractFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)

		h.raw(`<div class="card bg-base-100 max-w-xl p-6">`)
		if data.IsEdit {
			h.raw(`<h1 class="text-xl font-semibold mb-4">Edit contract</h1><form`)
			h.attr("hx-post", "/contracts/"+data.ID+"/edit")
		} else {
			h.raw(`<h1 class="text-xl font-semibold mb-4">New contract</h1><form`)
			h.attr("hx-post", "/contracts/new")
		}
		h.raw(` hx-swap="none">`)

		h.raw(`<label class="form-control mb-3"><span class="label-text">Name</span>`)
		h.raw(`<input type="text" name="name" class="input input-bordered" required`)
		h.attr("value", data.Name)
		h.raw(`></label>`)

		h.raw(`<label class="form-control mb-3"><span class="label-text">Duration (months)</span>`)
		h.raw(`<input type="number" name="duration_months" step="0.5" min="0" class="input input-bordered"`)
		h.attr("value", data.DurationMonths)
		h.raw(`></label>`)

		writeResponsibilitySelect(h, "concrete_by", "Concrete supplied by", data.ConcreteBy)
		writeResponsibilitySelect(h, "electricity_by", "Electricity paid by", data.ElectricityBy)
		writeResponsibilitySelect(h, "water_by", "Water paid by", data.WaterBy)

		h.raw(`<label class="form-control mb-4"><span class="label-text">Notes</span>`)
		h.raw(`<textarea name="notes" class="textarea textarea-bordered">`)
		h.text(data.Notes)
		h.raw(`</textarea></label>`)

		h.raw(`<div class="flex gap-2"><button type="submit" class="btn btn-primary btn-sm">Save</button>`)
		h.raw(`<a href="/contracts" class="btn btn-ghost btn-sm">Cancel</a></div>`)
		h.raw(`</form></div>`)
		return h.err
	})
}

func writeResponsibilitySelect(h *htmlWriter, name, label, selected string) {
	h.raw(`<label class="form-control mb-3"><span class="label-text">`)
	h.text(label)
	h.raw(`</span><select class="select select-bordered"`)
	h.attr("name", name)
	h.raw(`>`)
	for _, value := range []string{"client", "supplier"} {
		h.raw(`<option`)
		h.attr("value", value)
		if value == selected {
			h.raw(` selected`)
		}
		h.raw(`>`)
		h.text(value)
		h.raw(`</option>`)
	}
	h.raw(`</select></label>`)
}
