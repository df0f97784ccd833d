package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase/core"

	"quotereview/services"
	"quotereview/session"
	"quotereview/templates"
)

// renderDatasetSection re-renders the editable table section.
func renderDatasetSection(e *core.RequestEvent, store *session.Store) error {
	return templates.DatasetSection(store.Snapshot()).Render(e.Request.Context(), e.Response)
}

// HandleManualUpload loads a CSV/xlsx file as the current dataset, replacing
// whatever was loaded before and clearing any extraction job state.
// Route: POST /dataset/upload
func HandleManualUpload(store *session.Store, maxUploadBytes int64) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(maxUploadBytes); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		ds, err := services.ParseDatasetFile(file, header.Filename)
		if err != nil {
			log.Printf("manual_upload: %v", err)
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}

		store.ReplaceDataset(ds, session.SourceManual, "")
		log.Printf("manual_upload: loaded %d rows from %s", len(ds.Rows), header.Filename)

		SetToast(e, "success", "Manual file loaded")
		TriggerRefresh(e, "datasetChanged")
		return renderDatasetSection(e, store)
	}
}

// HandleAddRow appends an empty row to the table.
// Route: POST /dataset/rows
func HandleAddRow(store *session.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := store.AddRow(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}
		TriggerRefresh(e, "datasetChanged")
		return renderDatasetSection(e, store)
	}
}

// HandleUpdateRow writes the posted cells back into one row.
// Route: POST /dataset/rows/{index}
func HandleUpdateRow(store *session.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		index, err := strconv.Atoi(e.Request.PathValue("index"))
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid row index")
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		values := make(map[string]string, len(e.Request.PostForm))
		for key := range e.Request.PostForm {
			values[key] = e.Request.PostForm.Get(key)
		}

		if err := store.UpdateRow(index, values); err != nil {
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}
		TriggerRefresh(e, "datasetChanged")
		return e.NoContent(http.StatusNoContent)
	}
}

// HandleDeleteRow removes one row from the table.
// Route: DELETE /dataset/rows/{index}
func HandleDeleteRow(store *session.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		index, err := strconv.Atoi(e.Request.PathValue("index"))
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid row index")
		}
		if err := store.DeleteRow(index); err != nil {
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}
		TriggerRefresh(e, "datasetChanged")
		return renderDatasetSection(e, store)
	}
}

// HandleSetTax updates the tax percentage used by both renderers.
// Route: POST /tax
func HandleSetTax(store *session.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}
		value, err := strconv.ParseFloat(e.Request.FormValue("tax_percent"), 64)
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Tax percentage must be a number")
		}
		if err := store.SetTaxPercent(value); err != nil {
			return ErrorToast(e, http.StatusBadRequest, fmt.Sprintf("Invalid tax percentage: %v", err))
		}
		TriggerRefresh(e, "datasetChanged")
		return e.NoContent(http.StatusNoContent)
	}
}
