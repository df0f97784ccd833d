package handlers

import (
	"github.com/pocketbase/pocketbase/core"

	"quotereview/session"
	"quotereview/templates"
)

// HandleIndex renders the single-page tool.
// Route: GET /
func HandleIndex(store *session.Store, extractionEnabled bool) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.PageData{
			State:             store.Snapshot(),
			ExtractionEnabled: extractionEnabled,
		}
		page := templates.Layout("Quote Review & Price Analysis", templates.IndexPage(data))
		return page.Render(e.Request.Context(), e.Response)
	}
}
