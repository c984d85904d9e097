package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// PnlListPage renders the full P&L list page.
func PnlListPage(data PnlListData, header HeaderData, sidebar SidebarData) templ.Component {
	return Layout("P&Ls", header, sidebar, PnlListContent(data))
}

// PnlListContent renders just the list, for HTMX swaps.
func PnlListContent(data PnlListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)

		h.raw(`<div class="flex items-center justify-between mb-4">`)
		h.rawf(`<h1 class="text-2xl font-semibold">P&amp;Ls <span class="badge">%d</span></h1>`, data.TotalCount)
		h.raw(`<a href="/pnls/new" class="btn btn-primary btn-sm">New P&amp;L</a></div>`)

		if len(data.Items) == 0 {
			h.raw(`<div class="card bg-base-100 p-8 text-center opacity-70">No P&amp;Ls yet. Create one to get started.</div>`)
			return h.err
		}

		h.raw(`<div class="overflow-x-auto"><table class="table bg-base-100">`)
		h.raw(`<thead><tr><th>Name</th><th>Client</th><th>Status</th><th>Contracts</th><th>Created</th><th></th></tr></thead><tbody>`)
		for _, item := range data.Items {
			h.raw(`<tr>`)
			h.raw(`<td><a class="link"`)
			h.attr("href", "/pnls/"+item.ID+"/edit")
			h.raw(`>`)
			h.text(item.Name)
			h.raw(`</a></td><td>`)
			h.text(item.Client)
			h.raw(`</td><td><span class="badge `)
			h.raw(item.StatusBadgeClass)
			h.raw(`">`)
			h.text(item.Status)
			h.rawf(`</span></td><td>%d</td><td>`, item.ContractCount)
			h.text(item.CreatedDate)
			h.raw(`</td><td class="text-right">`)
			h.raw(`<button class="btn btn-ghost btn-xs"`)
			h.attr("hx-post", "/pnls/"+item.ID+"/activate")
			h.raw(` hx-swap="none">Open</button>`)
			h.raw(`<button class="btn btn-ghost btn-xs text-error"`)
			h.attr("hx-delete", "/pnls/"+item.ID)
			h.raw(` hx-confirm="Delete this P&amp;L and everything under it?" hx-target="closest tr" hx-swap="outerHTML">Delete</button>`)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table></div>`)
		return h.err
	})
}

// PnlFormPage renders the create/edit form as a full page.
func PnlFormPage(data PnlFormData, header HeaderData, sidebar SidebarData) templ.Component {
	title := "New P&L"
	if data.IsEdit {
		title = "Edit P&L"
	}
	return Layout(title, header, sidebar, PnlFormContent(data))
}

// PnlFormContent renders just the form.
func PnlFormContent(data PnlFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)

		h.raw(`<div class="card bg-base-100 max-w-xl p-6">`)
		if data.IsEdit {
			h.raw(`<h1 class="text-xl font-semibold mb-4">Edit P&amp;L</h1><form`)
			h.attr("hx-post", "/pnls/"+data.ID+"/edit")
		} else {
			h.raw(`<h1 class="text-xl font-semibold mb-4">New P&amp;L</h1><form`)
			h.attr("hx-post", "/pnls/new")
		}
		h.raw(` hx-swap="none">`)

		h.raw(`<label class="form-control mb-3"><span class="label-text">Name</span>`)
		h.raw(`<input type="text" name="name" class="input input-bordered" required`)
		h.attr("value", data.Name)
		h.raw(`></label>`)

		h.raw(`<label class="form-control mb-3"><span class="label-text">Client</span>`)
		h.raw(`<input type="text" name="client" class="input input-bordered"`)
		h.attr("value", data.Client)
		h.raw(`></label>`)

		h.raw(`<label class="form-control mb-3"><span class="label-text">Status</span>`)
		h.raw(`<select name="status" class="select select-bordered">`)
		for _, status := range []string{"draft", "active", "archived"} {
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

		h.raw(`<label class="form-control mb-4"><span class="label-text">Notes</span>`)
		h.raw(`<textarea name="notes" class="textarea textarea-bordered">`)
		h.text(data.Notes)
		h.raw(`</textarea></label>`)

		h.raw(`<div class="flex gap-2"><button type="submit" class="btn btn-primary btn-sm">Save</button>`)
		h.raw(`<a href="/pnls" class="btn btn-ghost btn-sm">Cancel</a></div>`)
		h.raw(`</form></div>`)
		return h.err
	})
}
