package templates

import (
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter collects write errors so components can emit markup without
// checking every call. The first error wins; later writes are skipped.
type htmlWriter struct {
	w   io.Writer
	err error
}

func newHTMLWriter(w io.Writer) *htmlWriter {
	return &htmlWriter{w: w}
}

// raw writes s verbatim.
func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes s HTML-escaped.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// rawf writes a formatted string verbatim. Arguments must already be safe.
func (h *htmlWriter) rawf(format string, args ...any) {
	if h.err != nil {
		return
	}
	_, h.err = fmt.Fprintf(h.w, format, args...)
}

// attr writes a key="value" pair with the value escaped.
func (h *htmlWriter) attr(key, value string) {
	h.raw(" ")
	h.raw(key)
	h.raw(`="`)
	h.text(value)
	h.raw(`"`)
}
