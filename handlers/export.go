package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"quotereview/services"
	"quotereview/session"
)

// buildReport snapshots the session and groups it, translating the common
// failure modes into user-facing messages.
func buildReport(store *session.Store) (*services.Report, error) {
	state := store.Snapshot()
	if !state.HasDataset() {
		return nil, fmt.Errorf("no dataset loaded")
	}
	return services.BuildReport(state.Dataset, state.TaxPercent)
}

// exportFilename returns the timestamped download name, e.g.
// output_20250115_143005.xlsx.
func exportFilename(ext string) string {
	return fmt.Sprintf("output_%s.%s", time.Now().Format("20060102_150405"), ext)
}

// HandleExportExcel generates and downloads the comparison workbook.
// Route: GET /export/excel
func HandleExportExcel(store *session.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		report, err := buildReport(store)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.String(http.StatusBadRequest, "Cannot generate Excel file: "+err.Error())
		}

		xlsxBytes, err := services.GenerateWorkbook(report)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename("xlsx")))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleExportPDF generates and downloads the comparison as a PDF.
// Route: GET /export/pdf
func HandleExportPDF(store *session.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		report, err := buildReport(store)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.String(http.StatusBadRequest, "Cannot generate PDF file: "+err.Error())
		}

		pdfBytes, err := services.GeneratePDF(report)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename("pdf")))
		e.Response.Write(pdfBytes)
		return nil
	}
}
