package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"quotereview/session"
)

// DatasetSection renders the editable source table, or a hint when nothing is
// loaded yet. Cell edits post back per row on change; the section is swapped
// wholesale after uploads and row operations.
func DatasetSection(state session.State) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section id="dataset"><h2>Review Source Table</h2>`); err != nil {
			return err
		}

		if !state.HasDataset() {
			_, err := io.WriteString(w,
				`<p class="muted">No data loaded. Process PDFs or upload a CSV/Excel file to get started.</p></section>`)
			return err
		}

		ds := state.Dataset
		if _, err := fmt.Fprintf(w, `<p class="muted">%d rows, source: %s</p>`, len(ds.Rows), sourceLabel(state.Source)); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<div style="overflow-x:auto;"><table class="dataset"><tr>`); err != nil {
			return err
		}
		for _, col := range ds.Columns {
			if _, err := fmt.Fprintf(w, `<th>%s</th>`, templ.EscapeString(col)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<th></th></tr>`); err != nil {
			return err
		}

		for i, row := range ds.Rows {
			if _, err := io.WriteString(w, `<tr>`); err != nil {
				return err
			}
			for _, col := range ds.Columns {
				if _, err := fmt.Fprintf(w,
					`<td><input name="%s" value="%s" hx-post="/dataset/rows/%d" hx-trigger="change" hx-include="closest tr" hx-swap="none"></td>`,
					templ.EscapeString(col), templ.EscapeString(row[col]), i); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w,
				`<td><button class="btn btn-secondary" hx-delete="/dataset/rows/%d" hx-target="#dataset" hx-swap="outerHTML" title="Delete row">&times;</button></td></tr>`,
				i); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w,
			`</table></div>`+
				`<p><button class="btn btn-secondary" hx-post="/dataset/rows" hx-target="#dataset" hx-swap="outerHTML">Add Row</button></p>`+
				`</section>`)
		return err
	})
}

// PreviewReport embeds the rendered comparison markup. The markup is produced
// by the report renderer from data the server already escaped.
func PreviewReport(reportHTML string) templ.Component {
	return templ.Raw(reportHTML)
}

// PreviewPlaceholder is shown when no dataset is loaded yet.
func PreviewPlaceholder() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<p class="muted">Upload or generate data to see the price analysis preview.</p>`)
		return err
	})
}

// PreviewError reports a grouping/render failure inline instead of silently
// showing an empty report.
func PreviewError(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<p style="color:#c0392b;"><b>Cannot build report:</b> %s</p>`,
			templ.EscapeString(message))
		return err
	})
}

func sourceLabel(s session.Source) string {
	switch s {
	case session.SourceExtraction:
		return "PDF extraction"
	case session.SourceManual:
		return "manual upload"
	default:
		return "unknown"
	}
}
