package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps page content with the document shell, top bar and sidebar.
func Layout(title string, header HeaderData, sidebar SidebarData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)

		h.raw(`<!DOCTYPE html><html lang="en" data-theme="corporate"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(` · Plant P&amp;L</title>`)
		h.raw(`<link href="https://cdn.jsdelivr.net/npm/daisyui@4/dist/full.min.css" rel="stylesheet" type="text/css">`)
		h.raw(`<script src="https://cdn.tailwindcss.com"></script>`)
		h.raw(`<script src="https://unpkg.com/htmx.org@1.9.12"></script>`)
		h.raw(`</head><body class="min-h-screen bg-base-200">`)

		if err := renderHeader(h, header); err != nil {
			return err
		}

		h.raw(`<div class="flex">`)
		if err := renderSidebar(h, sidebar); err != nil {
			return err
		}

		h.raw(`<main id="main-content" class="flex-1 p-6">`)
		if h.err != nil {
			return h.err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</main></div>`)

		renderToastContainer(h)
		h.raw(`</body></html>`)
		return h.err
	})
}

func renderHeader(h *htmlWriter, data HeaderData) error {
	h.raw(`<header class="navbar bg-base-100 shadow-sm px-4"><div class="flex-1">`)
	h.raw(`<a href="/" class="text-lg font-semibold">Plant P&amp;L</a></div>`)

	h.raw(`<div class="flex-none"><div class="dropdown dropdown-end">`)
	h.raw(`<label tabindex="0" class="btn btn-ghost btn-sm" data-testid="pnl-switcher">`)
	if data.ActivePnl != nil {
		h.text(data.ActivePnl.Name)
	} else {
		h.raw(`Select P&amp;L`)
	}
	h.raw(`</label><ul tabindex="0" class="dropdown-content menu bg-base-100 rounded-box shadow w-64 p-2 z-50">`)
	for _, p := range data.Pnls {
		h.raw(`<li><a`)
		h.attr("hx-post", "/pnls/"+p.ID+"/activate")
		h.raw(` hx-swap="none"`)
		if p.IsActive {
			h.raw(` class="active"`)
		}
		h.raw(`>`)
		h.text(p.Name)
		if p.Client != "" {
			h.raw(`<span class="text-xs opacity-60">`)
			h.text(p.Client)
			h.raw(`</span>`)
		}
		h.raw(`</a></li>`)
	}
	h.raw(`<li><a href="/pnls">Manage P&amp;Ls…</a></li>`)
	h.raw(`</ul></div></div></header>`)
	return h.err
}

func renderSidebar(h *htmlWriter, data SidebarData) error {
	h.raw(`<aside id="sidebar" class="w-56 min-h-screen bg-base-100 shadow-sm">`)
	h.raw(`<ul class="menu p-2">`)

	writeNavItem(h, data.ActivePath, "/pnls", "P&amp;Ls", -1)
	if data.ActivePnl != nil {
		writeNavItem(h, data.ActivePath, "/contracts", "Contracts", data.ContractCount)
		writeNavItem(h, data.ActivePath, "/variants", "Variants", data.VariantCount)
	}
	h.raw(`<li class="menu-title">Catalogs</li>`)
	writeNavItem(h, data.ActivePath, "/materials", "Materials", data.MaterialCount)
	writeNavItem(h, data.ActivePath, "/formulas", "Formulas", data.FormulaCount)

	h.raw(`</ul></aside>`)
	return h.err
}

func writeNavItem(h *htmlWriter, activePath, href, label string, count int) {
	h.raw(`<li><a`)
	h.attr("href", href)
	if activePath == href {
		h.raw(` class="active"`)
	}
	h.raw(`>`)
	h.raw(label)
	if count >= 0 {
		h.rawf(`<span class="badge badge-sm">%d</span>`, count)
	}
	h.raw(`</a></li>`)
}

func renderToastContainer(h *htmlWriter) {
	h.raw(`<div id="toast-container" class="toast toast-end z-50"></div>`)
	h.raw(`<script>
document.body.addEventListener("showToast", function(evt) {
  var d = evt.detail || {};
  showToast(d.message, d.type);
});
function showToast(message, type) {
  var container = document.getElementById("toast-container");
  var alert = document.createElement("div");
  alert.className = "alert alert-" + (type || "info");
  alert.textContent = message || "";
  container.appendChild(alert);
  setTimeout(function() { alert.remove(); }, 4000);
}
(function() {
  var m = document.cookie.match(/(?:^|; )flash_toast=([^;]*)/);
  if (!m) return;
  document.cookie = "flash_toast=; Path=/; Max-Age=0";
  try {
    var d = JSON.parse(decodeURIComponent(m[1]));
    showToast(d.message, d.type);
  } catch (e) {}
})();
</script>`)
}
