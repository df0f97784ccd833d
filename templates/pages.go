package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"quotereview/session"
)

// PageData carries everything the index page needs.
type PageData struct {
	State             session.State
	ExtractionEnabled bool
}

// IndexPage renders the whole tool: upload controls, the editable source
// table, tax settings, the live preview and the export actions.
func IndexPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Quote Review &amp; Price Analysis</h1>`); err != nil {
			return err
		}

		// PDF submission to the extraction workflow.
		if _, err := io.WriteString(w, `<section><h2>Upload 3 Quote PDFs</h2>`); err != nil {
			return err
		}
		if data.ExtractionEnabled {
			if _, err := io.WriteString(w,
				`<form hx-post="/extract" hx-encoding="multipart/form-data" hx-target="#dataset" hx-swap="outerHTML">`+
					`<input type="file" name="pdfs" accept=".pdf" multiple required> `+
					`<button class="btn" type="submit">Process PDFs</button> `+
					`<span class="htmx-indicator">Extracting, this can take a few minutes…</span>`+
					`</form>`); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w,
				`<p class="muted">PDF extraction is not configured. Set QUOTES_EXTRACTION_URL to enable it.</p>`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</section>`); err != nil {
			return err
		}

		// Manual override upload.
		if _, err := io.WriteString(w,
			`<section><h2>Upload CSV or Excel (manual override)</h2>`+
				`<form hx-post="/dataset/upload" hx-encoding="multipart/form-data" hx-target="#dataset" hx-swap="outerHTML">`+
				`<input type="file" name="file" accept=".csv,.xlsx" required> `+
				`<button class="btn btn-secondary" type="submit">Load File</button>`+
				`</form></section>`); err != nil {
			return err
		}

		// Editable source table.
		if err := DatasetSection(data.State).Render(ctx, w); err != nil {
			return err
		}

		// Tax settings.
		if _, err := fmt.Fprintf(w,
			`<section><h2>Tax Settings</h2><label>Tax Percentage `+
				`<input type="number" name="tax_percent" min="0" step="0.01" value="%.2f" hx-post="/tax" hx-trigger="change" hx-swap="none">`+
				`</label></section>`,
			data.State.TaxPercent); err != nil {
			return err
		}

		// Live preview, refreshed whenever the dataset or tax changes.
		if _, err := io.WriteString(w,
			`<section><h2>Price Analysis Preview</h2>`+
				`<div id="preview" hx-get="/preview" hx-trigger="load, datasetChanged from:body" hx-swap="innerHTML"></div>`+
				`</section>`); err != nil {
			return err
		}

		// Export actions.
		_, err := io.WriteString(w,
			`<section><h2>Export</h2>`+
				`<a class="btn" href="/export/excel">Download Excel</a> `+
				`<a class="btn btn-secondary" href="/export/pdf">Download PDF</a>`+
				`</section>`)
		return err
	})
}
