package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// CostsFormPage renders the variant cost sections as one big form.
func CostsFormPage(data CostsFormData, header HeaderData, sidebar SidebarData) templ.Component {
	return Layout("Costs · "+data.VariantName, header, sidebar, CostsFormContent(data))
}

func CostsFormContent(data CostsFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)

		h.raw(`<div class="flex items-center justify-between mb-4">`)
		h.raw(`<h1 class="text-2xl font-semibold">Costs · `)
		h.text(data.VariantName)
		h.raw(`</h1><a class="btn btn-ghost btn-sm"`)
		h.attr("href", "/variants/"+data.VariantID)
		h.raw(`>Back to variant</a></div>`)

		h.raw(`<form`)
		h.attr("hx-post", "/variants/"+data.VariantID+"/costs")
		h.raw(` hx-swap="none">`)

		h.raw(`<div class="grid md:grid-cols-2 gap-4">`)
		for _, section := range data.Sections {
			h.raw(`<div class="card bg-base-100 p-4"><h2 class="font-semibold mb-2">`)
			h.text(section.Title)
			h.raw(`</h2>`)
			for _, field := range section.Fields {
				h.raw(`<label class="form-control mb-2"><span class="label-text text-xs">`)
				h.text(field.Label)
				h.raw(`</span><input type="number" step="any" class="input input-bordered input-sm"`)
				h.attr("name", section.Prefix+"."+field.Name)
				h.attr("value", field.Value)
				h.raw(`></label>`)
			}
			h.raw(`</div>`)
		}
		h.raw(`</div>`)

		h.raw(`<div class="mt-4"><button type="submit" class="btn btn-primary">Save all sections</button></div>`)
		h.raw(`</form>`)
		return h.err
	})
}
