package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"quotereview/services"
)

var (
	inputPath  string
	outputPath string
	taxPercent float64
	asPDF      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build the price comparison report from a CSV or xlsx dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to the quote dataset (.csv or .xlsx)")
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path (default output_<timestamp>.xlsx/.pdf)")
	generateCmd.Flags().Float64Var(&taxPercent, "tax", 12.0, "Tax percentage applied to group totals")
	generateCmd.Flags().BoolVar(&asPDF, "pdf", false, "Write a PDF instead of an xlsx workbook")
	generateCmd.MarkFlagRequired("input")
}

func runGenerate() error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	ds, err := services.ParseDatasetFile(file, inputPath)
	if err != nil {
		return err
	}

	report, err := services.BuildReport(ds, taxPercent)
	if err != nil {
		return err
	}

	ext := "xlsx"
	if asPDF {
		ext = "pdf"
	}
	out := outputPath
	if out == "" {
		out = fmt.Sprintf("output_%s.%s", time.Now().Format("20060102_150405"), ext)
	} else if !strings.HasSuffix(strings.ToLower(out), "."+ext) {
		out += "." + ext
	}

	var doc []byte
	if asPDF {
		doc, err = services.GeneratePDF(report)
	} else {
		doc, err = services.GenerateWorkbook(report)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(out, doc, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Printf("Wrote %s (%d groups, tax %.2f%%)\n", out, len(report.Groups), taxPercent)
	return nil
}
