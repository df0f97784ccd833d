package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotereview/config"
	"quotereview/handlers"
	"quotereview/services"
	"quotereview/session"
)

func main() {
	// Optional .env; the environment wins when both are set.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	app := pocketbase.New()

	store := session.NewStore(cfg.DefaultTaxPercent)
	var extractor *services.ExtractionClient
	if cfg.ExtractionURL != "" {
		extractor = services.NewExtractionClient(cfg.ExtractionURL, cfg.ExtractionTimeout)
	}
	maxUploadBytes := cfg.MaxUploadMB << 20

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Page ─────────────────────────────────────────────────
		se.Router.GET("/", handlers.HandleIndex(store, extractor != nil))

		// ── PDF extraction ───────────────────────────────────────
		se.Router.POST("/extract", handlers.HandleExtract(store, extractor, maxUploadBytes))

		// ── Dataset (manual upload + table editor) ───────────────
		se.Router.POST("/dataset/upload", handlers.HandleManualUpload(store, maxUploadBytes))
		se.Router.POST("/dataset/rows", handlers.HandleAddRow(store))
		se.Router.POST("/dataset/rows/{index}", handlers.HandleUpdateRow(store))
		se.Router.DELETE("/dataset/rows/{index}", handlers.HandleDeleteRow(store))

		// ── Tax control ──────────────────────────────────────────
		se.Router.POST("/tax", handlers.HandleSetTax(store))

		// ── Preview & export ─────────────────────────────────────
		se.Router.GET("/preview", handlers.HandlePreview(store))
		se.Router.GET("/export/excel", handlers.HandleExportExcel(store))
		se.Router.GET("/export/pdf", handlers.HandleExportPDF(store))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
