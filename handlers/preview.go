package handlers

import (
	"log"

	"github.com/pocketbase/pocketbase/core"

	"quotereview/services"
	"quotereview/session"
	"quotereview/templates"
)

// HandlePreview renders the grouped price comparison as an HTML partial, or a
// placeholder prompt while no dataset is loaded. Grouping failures are shown
// inline; a blank report is never rendered silently.
// Route: GET /preview
func HandlePreview(store *session.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		state := store.Snapshot()
		if !state.HasDataset() {
			return templates.PreviewPlaceholder().Render(e.Request.Context(), e.Response)
		}

		report, err := services.BuildReport(state.Dataset, state.TaxPercent)
		if err != nil {
			log.Printf("preview: %v", err)
			return templates.PreviewError(err.Error()).Render(e.Request.Context(), e.Response)
		}

		return templates.PreviewReport(services.RenderHTML(report)).Render(e.Request.Context(), e.Response)
	}
}
