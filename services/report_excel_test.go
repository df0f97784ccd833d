package services

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func generateFixtureWorkbook(t *testing.T, ds *Dataset, taxPercent float64) *excelize.File {
	t.Helper()

	report, err := BuildReport(ds, taxPercent)
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}
	result, err := GenerateWorkbook(report)
	if err != nil {
		t.Fatalf("GenerateWorkbook() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateWorkbook() returned empty bytes")
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func rawCellValue(t *testing.T, f *excelize.File, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheetNameSummary, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetCellValue(%s): %v", cell, err)
	}
	return v
}

func calcCellFloat(t *testing.T, f *excelize.File, cell string) float64 {
	t.Helper()
	v, err := f.CalcCellValue(sheetNameSummary, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("CalcCellValue(%s): %v", cell, err)
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		t.Fatalf("CalcCellValue(%s) = %q, not a number", cell, v)
	}
	return n
}

func TestGenerateWorkbook_Layout(t *testing.T) {
	f := generateFixtureWorkbook(t, comparisonFixture(), 12)

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Items Summary" {
		t.Fatalf("sheets = %v, want [Items Summary]", sheets)
	}

	// Header row at row 2: Details | | QTY | Items | A | B
	for cell, want := range map[string]string{
		"B2": "Details", "D2": "QTY", "E2": "Items", "F2": "A", "G2": "B",
	} {
		if got := rawCellValue(t, f, cell); got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}

	// Identity label/value pairs.
	for cell, want := range map[string]string{
		"B3": "Brand", "C3": "Acme",
		"B4": "Code", "C4": "C100",
		"B5": "Power Type", "C5": "230V",
	} {
		if got := rawCellValue(t, f, cell); got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}

	// Item rows: literal qty 1 and description text.
	if got := rawCellValue(t, f, "D3"); got != "1" {
		t.Errorf("D3 = %q, want literal 1", got)
	}
	if got := rawCellValue(t, f, "E3"); got != "X" {
		t.Errorf("E3 = %q, want X", got)
	}
	if got := rawCellValue(t, f, "E4"); got != "Y" {
		t.Errorf("E4 = %q, want Y", got)
	}

	// Tax row directly under the 2 item rows, total row after it.
	if got := rawCellValue(t, f, "E5"); got != "Tax" {
		t.Errorf("E5 = %q, want Tax", got)
	}
	if got := rawCellValue(t, f, "F5"); got != "0.12" {
		t.Errorf("F5 = %q, want literal tax fraction 0.12", got)
	}
	if got := rawCellValue(t, f, "E6"); got != "Total" {
		t.Errorf("E6 = %q, want Total", got)
	}
}

func TestGenerateWorkbook_LiveFormulas(t *testing.T) {
	f := generateFixtureWorkbook(t, comparisonFixture(), 12)

	lineFormula, err := f.GetCellFormula(sheetNameSummary, "F3")
	if err != nil {
		t.Fatalf("GetCellFormula(F3): %v", err)
	}
	if lineFormula != "D3*10" {
		t.Errorf("F3 formula = %q, want D3*10", lineFormula)
	}

	totalFormula, err := f.GetCellFormula(sheetNameSummary, "G6")
	if err != nil {
		t.Fatalf("GetCellFormula(G6): %v", err)
	}
	if totalFormula != "SUM(G3:G4)*(1+G5)" {
		t.Errorf("G6 formula = %q, want SUM(G3:G4)*(1+G5)", totalFormula)
	}
}

// Evaluating the workbook formulas must reproduce the same numbers the
// markup renderer prints.
func TestGenerateWorkbook_FormulaValueConsistency(t *testing.T) {
	ds := comparisonFixture()
	report, err := BuildReport(ds, 12)
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}
	f := generateFixtureWorkbook(t, ds, 12)

	group := report.Groups[0]
	dataRow := 3
	for i, desc := range group.Descriptions {
		for j, supplier := range group.Suppliers {
			cell, _ := excelize.CoordinatesToCellName(6+j, dataRow+i)
			got := calcCellFloat(t, f, cell)
			want := group.PriceFor(supplier, desc)
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("%s evaluates to %v, markup shows %v", cell, got, want)
			}
		}
	}

	subtotals := group.Subtotals()
	totalRow := dataRow + len(group.Descriptions) + 1
	for j, supplier := range group.Suppliers {
		cell, _ := excelize.CoordinatesToCellName(6+j, totalRow)
		got := calcCellFloat(t, f, cell)
		want := FinalTotal(subtotals[supplier], 12)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("%s evaluates to %v, want %v", cell, got, want)
		}
	}
}

func TestGenerateWorkbook_MissingCellFormulaUsesZero(t *testing.T) {
	ds := testDataset(
		[]string{"item", "A", "Acme", "C100", "X", "230V", "10"},
		[]string{"subitem", "A", "", "C100", "Y", "", "20"},
		[]string{"item", "B", "Acme", "C100", "X", "230V", "15"},
	)
	f := generateFixtureWorkbook(t, ds, 12)

	// G4 is supplier B's cell for description Y, which B never quoted.
	formula, err := f.GetCellFormula(sheetNameSummary, "G4")
	if err != nil {
		t.Fatalf("GetCellFormula(G4): %v", err)
	}
	if formula != "D4*0" {
		t.Errorf("G4 formula = %q, want D4*0", formula)
	}
}

func hasFill(t *testing.T, f *excelize.File, cell string) bool {
	t.Helper()
	styleID, err := f.GetCellStyle(sheetNameSummary, cell)
	if err != nil {
		t.Fatalf("GetCellStyle(%s): %v", cell, err)
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		t.Fatalf("GetStyle(%d): %v", styleID, err)
	}
	return style.Fill.Pattern != 0 && len(style.Fill.Color) > 0
}

func TestGenerateWorkbook_TotalRowFillPlacement(t *testing.T) {
	f := generateFixtureWorkbook(t, comparisonFixture(), 12)

	// Every cell of the total row (row 6) is filled.
	for _, cell := range []string{"B6", "C6", "D6", "E6", "F6", "G6"} {
		if !hasFill(t, f, cell) {
			t.Errorf("total row cell %s has no fill", cell)
		}
	}
	// Item and tax rows are not.
	for _, cell := range []string{"F3", "G3", "F4", "G4", "F5", "G5"} {
		if hasFill(t, f, cell) {
			t.Errorf("non-total cell %s unexpectedly filled", cell)
		}
	}
	// The header row keeps its own fill.
	if !hasFill(t, f, "F2") {
		t.Error("header cell F2 has no fill")
	}
}

func TestGenerateWorkbook_GroupsStackedWithGap(t *testing.T) {
	ds := testDataset(
		[]string{"item", "A", "Acme", "C100", "First", "230V", "10"},
		[]string{"item", "A", "Acme", "C200", "Second", "400V", "20"},
	)
	f := generateFixtureWorkbook(t, ds, 12)

	// Group 1: header row 2, one item row, tax 4, total 5. Two blank rows,
	// then group 2's header at row 8.
	if got := rawCellValue(t, f, "E5"); got != "Total" {
		t.Errorf("E5 = %q, want first group's Total", got)
	}
	for _, cell := range []string{"B6", "B7", "E6", "E7"} {
		if got := rawCellValue(t, f, cell); got != "" {
			t.Errorf("gap cell %s = %q, want empty", cell, got)
		}
	}
	if got := rawCellValue(t, f, "B8"); got != "Details" {
		t.Errorf("B8 = %q, want second group's Details header", got)
	}
	if got := rawCellValue(t, f, "C10"); got != "C200" {
		t.Errorf("C10 = %q, want second group's code", got)
	}
}

func TestGenerateWorkbook_CurrencyFormatApplied(t *testing.T) {
	f := generateFixtureWorkbook(t, comparisonFixture(), 12)

	// Formatted read of the tax cell goes through the percent format.
	formatted, err := f.GetCellValue(sheetNameSummary, "F5")
	if err != nil {
		t.Fatalf("GetCellValue(F5): %v", err)
	}
	if !strings.Contains(formatted, "%") {
		t.Errorf("tax cell formatted as %q, want a percentage", formatted)
	}
}
