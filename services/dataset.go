package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Required columns for the price comparison. Uploads may carry extra columns;
// those are preserved but ignored by the report builder.
var RequiredColumns = []string{"type", "supplier", "brand", "code", "description", "Power Type", "price"}

// stringColumns are trimmed on load so that stray spreadsheet whitespace
// never splits a group or a supplier column.
var stringColumns = []string{"type", "supplier", "brand", "code", "description", "Power Type"}

// Dataset is the current working table: an ordered column list plus one
// map per row keyed by column name.
type Dataset struct {
	Columns []string
	Rows    []map[string]string
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing the underlying row maps.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	out := &Dataset{
		Columns: append([]string(nil), d.Columns...),
		Rows:    make([]map[string]string, len(d.Rows)),
	}
	for i, row := range d.Rows {
		cp := make(map[string]string, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out.Rows[i] = cp
	}
	return out
}

// MissingColumns reports which required columns are absent from the dataset.
func (d *Dataset) MissingColumns() []string {
	present := make(map[string]bool, len(d.Columns))
	for _, c := range d.Columns {
		present[c] = true
	}
	var missing []string
	for _, c := range RequiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// ParseCSV reads a CSV document into a Dataset. The first row is the header.
func ParseCSV(file io.Reader) (*Dataset, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return buildDataset(allRows[0], allRows[1:]), nil
}

// ParseExcel reads the first sheet of an xlsx document into a Dataset.
func ParseExcel(file io.Reader) (*Dataset, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return buildDataset(rows[0], rows[1:]), nil
}

// ParseDatasetFile dispatches on the uploaded file name extension.
func ParseDatasetFile(file io.Reader, fileName string) (*Dataset, error) {
	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		return ParseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		return ParseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
}

// buildDataset converts raw header + data rows into a Dataset, trimming
// headers and the known string columns.
func buildDataset(headers []string, dataRows [][]string) *Dataset {
	columns := make([]string, len(headers))
	for i, h := range headers {
		columns[i] = strings.TrimSpace(h)
	}

	trimmed := make(map[string]bool, len(stringColumns))
	for _, c := range stringColumns {
		trimmed[c] = true
	}

	ds := &Dataset{
		Columns: columns,
		Rows:    make([]map[string]string, 0, len(dataRows)),
	}
	for _, raw := range dataRows {
		row := make(map[string]string, len(columns))
		for i, col := range columns {
			if col == "" {
				continue
			}
			value := ""
			if i < len(raw) {
				value = raw[i]
			}
			if trimmed[col] {
				value = strings.TrimSpace(value)
			}
			row[col] = value
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}
