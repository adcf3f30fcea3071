package render

import (
	"html"

	"github.com/valyala/bytebufferpool"
)

// Section is the render-side view of one page section. HTML is trusted markup
// produced by this package; Message is upstream-free sanitized text.
type Section struct {
	ID      string
	Title   string
	Phase   string
	HTML    string
	Message string
}

const (
	PhaseLoading = "loading"
	PhaseReady   = "ready"
	PhaseEmpty   = "empty"
	PhaseError   = "error"
)

// Page renders the full page shell. The shell always survives: failed
// sections show their sanitized message in place, nothing else changes.
func Page(title string, sections []Section) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8"><title>`)
	_, _ = buf.WriteString(html.EscapeString(title))
	_, _ = buf.WriteString(`</title></head><body><header><h1>`)
	_, _ = buf.WriteString(html.EscapeString(title))
	_, _ = buf.WriteString(`</h1></header><main>`)

	for _, section := range sections {
		_, _ = buf.WriteString(`<section id="`)
		_, _ = buf.WriteString(html.EscapeString(section.ID))
		_, _ = buf.WriteString(`"><h2>`)
		_, _ = buf.WriteString(html.EscapeString(section.Title))
		_, _ = buf.WriteString(`</h2>`)

		switch section.Phase {
		case PhaseReady:
			_, _ = buf.WriteString(`<div class="section-content">`)
			_, _ = buf.WriteString(section.HTML)
			_, _ = buf.WriteString(`</div>`)
		case PhaseEmpty:
			_, _ = buf.WriteString(`<p class="section-empty">`)
			_, _ = buf.WriteString(html.EscapeString(section.Message))
			_, _ = buf.WriteString(`</p>`)
		case PhaseError:
			_, _ = buf.WriteString(`<p class="section-error">`)
			_, _ = buf.WriteString(html.EscapeString(section.Message))
			_, _ = buf.WriteString(`</p>`)
		default:
			_, _ = buf.WriteString(`<p class="section-loading">`)
			_, _ = buf.WriteString(LoadingMessage)
			_, _ = buf.WriteString(`</p>`)
		}

		_, _ = buf.WriteString(`</section>`)
	}

	_, _ = buf.WriteString(`</main></body></html>`)
	return buf.String()
}
