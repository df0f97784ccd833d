package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase/core"

	"quotereview/services"
	"quotereview/session"
)

// HandleExtract receives the quote PDFs, sends them to the extraction
// workflow and replaces the session dataset with the returned CSV. A wrong
// file count is rejected before any network call, and a failed extraction
// leaves the previously loaded dataset untouched.
// Route: POST /extract
func HandleExtract(store *session.Store, client *services.ExtractionClient, maxUploadBytes int64) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if client == nil || client.URL == "" {
			return ErrorToast(e, http.StatusServiceUnavailable, "PDF extraction is not configured")
		}

		if err := e.Request.ParseMultipartForm(maxUploadBytes); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Files too large or invalid form data")
		}

		fileHeaders := e.Request.MultipartForm.File["pdfs"]
		if len(fileHeaders) != services.RequiredPDFCount {
			return WarningToast(e, http.StatusBadRequest,
				fmt.Sprintf("Please upload exactly %d PDF files.", services.RequiredPDFCount))
		}

		files := make([]services.PDFFile, 0, len(fileHeaders))
		for _, fh := range fileHeaders {
			f, err := fh.Open()
			if err != nil {
				return ErrorToast(e, http.StatusBadRequest, "Could not read uploaded file "+fh.Filename)
			}
			content, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return ErrorToast(e, http.StatusBadRequest, "Could not read uploaded file "+fh.Filename)
			}
			files = append(files, services.PDFFile{Name: fh.Filename, Content: content})
		}

		csvBytes, err := client.SubmitPDFs(e.Request.Context(), files)
		if err != nil {
			log.Printf("extract: %v", err)
			return ErrorToast(e, http.StatusBadGateway, "Extraction service failed to process the PDFs")
		}

		ds, err := services.ParseCSV(bytes.NewReader(csvBytes))
		if err != nil {
			log.Printf("extract: parse returned CSV: %v", err)
			return ErrorToast(e, http.StatusBadGateway, "Extraction service returned an unreadable CSV")
		}

		jobID := uuid.NewString()
		store.ReplaceDataset(ds, session.SourceExtraction, jobID)
		log.Printf("extract: job %s loaded %d rows", jobID, len(ds.Rows))

		SetToast(e, "success", "CSV generated from PDFs and loaded")
		TriggerRefresh(e, "datasetChanged")
		return renderDatasetSection(e, store)
	}
}
