package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	input := "type,supplier,brand,code,description,Power Type,price\n" +
		"item, A ,Acme, C100 ,Pump,230V,10.50\n" +
		"subitem,A,,C100,Kit,,5\n"

	ds, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	if len(ds.Columns) != 7 {
		t.Fatalf("columns = %v", ds.Columns)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(ds.Rows))
	}

	// String columns are trimmed, price is kept as written.
	if got := ds.Rows[0]["supplier"]; got != "A" {
		t.Errorf("supplier = %q, want trimmed 'A'", got)
	}
	if got := ds.Rows[0]["code"]; got != "C100" {
		t.Errorf("code = %q, want trimmed 'C100'", got)
	}
	if got := ds.Rows[0]["price"]; got != "10.50" {
		t.Errorf("price = %q, want '10.50'", got)
	}
	if got := ds.Rows[1]["Power Type"]; got != "" {
		t.Errorf("Power Type = %q, want blank", got)
	}
}

func TestParseCSV_RaggedRows(t *testing.T) {
	// Short rows pad with blanks instead of failing.
	input := "type,supplier,brand,code,description,Power Type,price\n" +
		"item,A,Acme,C100\n"

	ds, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	if got := ds.Rows[0]["price"]; got != "" {
		t.Errorf("price = %q, want blank for short row", got)
	}
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	input := "type,supplier,brand,code,description,Power Type,price\n"
	if _, err := ParseCSV(strings.NewReader(input)); err == nil {
		t.Error("expected error for CSV without data rows")
	}
}

func TestParseExcel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range [][]any{
		{"type", "supplier", "brand", "code", "description", "Power Type", "price"},
		{"item", "A", "Acme", "C100", "Pump", "230V", 10.5},
	} {
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			f.SetCellValue(sheet, cell, v)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	f.Close()

	ds, err := ParseExcel(&buf)
	if err != nil {
		t.Fatalf("ParseExcel() error = %v", err)
	}
	if len(ds.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(ds.Rows))
	}
	if got := ds.Rows[0]["description"]; got != "Pump" {
		t.Errorf("description = %q, want 'Pump'", got)
	}
	if got := ds.Rows[0]["price"]; got != "10.5" {
		t.Errorf("price = %q, want '10.5'", got)
	}
	if missing := ds.MissingColumns(); len(missing) != 0 {
		t.Errorf("missing columns = %v, want none", missing)
	}
}

func TestParseDatasetFile_UnsupportedExtension(t *testing.T) {
	for _, name := range []string{"data.txt", "data.xls", "data", "data.pdf"} {
		if _, err := ParseDatasetFile(strings.NewReader("x"), name); err == nil {
			t.Errorf("%s: expected unsupported format error", name)
		}
	}
}

func TestParseDatasetFile_ExtensionCaseInsensitive(t *testing.T) {
	input := "type,supplier,brand,code,description,Power Type,price\nitem,A,Acme,C100,X,230V,1\n"
	if _, err := ParseDatasetFile(strings.NewReader(input), "Upload.CSV"); err != nil {
		t.Errorf("ParseDatasetFile(Upload.CSV) error = %v", err)
	}
}

func TestDatasetClone(t *testing.T) {
	ds := testDataset([]string{"item", "A", "Acme", "C100", "X", "230V", "10"})
	clone := ds.Clone()

	clone.Rows[0]["price"] = "999"
	clone.Columns[0] = "mutated"
	if ds.Rows[0]["price"] != "10" {
		t.Error("clone row edit leaked into the original")
	}
	if ds.Columns[0] != "type" {
		t.Error("clone column edit leaked into the original")
	}

	var nilDS *Dataset
	if nilDS.Clone() != nil {
		t.Error("Clone of nil dataset should be nil")
	}
}

func TestDatasetMissingColumns_ExtraColumnsIgnored(t *testing.T) {
	ds := &Dataset{Columns: append(append([]string(nil), RequiredColumns...), "notes", "vendor id")}
	if missing := ds.MissingColumns(); len(missing) != 0 {
		t.Errorf("missing = %v, want none with extra columns present", missing)
	}
}
