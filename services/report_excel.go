package services

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const (
	sheetNameSummary = "Items Summary"

	headerFillColor = "#DAE9F8"
	totalFillColor  = "#FCE4D6"

	currencyFormat = "$#,##0.00"
	percentFormat  = 10 // built-in 0.00%
)

// Block geometry. Everything is derived from these and the per-group supplier
// count; there are no hardcoded supplier column offsets.
const (
	firstBlockRow    = 2 // one blank row above the first group
	detailsCol       = 2 // "Details" labels (Brand / Code / Power Type)
	valueCol         = 3 // identity values
	qtyCol           = 4
	itemsCol         = 5
	firstSupplierCol = 6
	groupGapRows     = 2 // blank rows between group blocks
)

// GenerateWorkbook renders the grouped comparison as an xlsx workbook and
// returns the document bytes.
//
// Per-line supplier cells are live formulas (qty cell * quoted price) and the
// total row sums the supplier's item range times (1 + tax cell), so quantities
// and tax can be edited in the exported file and the totals recompute.
func GenerateWorkbook(report *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetNameSummary); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	styles := newStyleCache(f)

	maxSuppliers := 0
	for _, g := range report.Groups {
		if len(g.Suppliers) > maxSuppliers {
			maxSuppliers = len(g.Suppliers)
		}
	}
	if err := setReportColumnWidths(f, maxSuppliers); err != nil {
		return nil, err
	}

	row := firstBlockRow
	for i := range report.Groups {
		nextRow, err := writeGroupBlock(f, styles, &report.Groups[i], report.TaxPercent, row)
		if err != nil {
			return nil, fmt.Errorf("group %s/%s: %w", report.Groups[i].Code, report.Groups[i].PowerType, err)
		}
		row = nextRow + 1 + groupGapRows
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// writeGroupBlock lays out one group starting at headerRow and returns the
// row index of the group's total row.
func writeGroupBlock(f *excelize.File, styles *styleCache, group *ItemGroup, taxPercent float64, headerRow int) (int, error) {
	lastCol := itemsCol + len(group.Suppliers)
	dataRow := headerRow + 1

	// Header row
	setCell(f, detailsCol, headerRow, "Details")
	setCell(f, qtyCol, headerRow, "QTY")
	setCell(f, itemsCol, headerRow, "Items")
	for i, supplier := range group.Suppliers {
		setCell(f, firstSupplierCol+i, headerRow, supplier)
	}

	// Identity label/value pairs in the details columns.
	identity := []struct{ label, value string }{
		{"Brand", group.Brand},
		{"Code", group.Code},
		{"Power Type", group.PowerType},
	}
	for i, id := range identity {
		setCell(f, detailsCol, dataRow+i, id.label)
		setCell(f, valueCol, dataRow+i, id.value)
	}

	// One row per description: literal qty, description text, and a live
	// qty*price formula per supplier column.
	qtyColName, _ := excelize.ColumnNumberToName(qtyCol)
	for i, desc := range group.Descriptions {
		row := dataRow + i
		setCell(f, qtyCol, row, 1)
		setCell(f, itemsCol, row, desc)

		for j, supplier := range group.Suppliers {
			price := group.PriceFor(supplier, desc)
			cell, _ := excelize.CoordinatesToCellName(firstSupplierCol+j, row)
			formula := fmt.Sprintf("%s%d*%s", qtyColName, row, strconv.FormatFloat(price, 'f', -1, 64))
			if err := f.SetCellFormula(sheetNameSummary, cell, formula); err != nil {
				return 0, fmt.Errorf("set line formula %s: %w", cell, err)
			}
		}
	}

	// Tax row sits directly below the last description row; the same row
	// count as the preview (items + tax + total).
	taxRow := dataRow + len(group.Descriptions)
	setCell(f, itemsCol, taxRow, "Tax")
	for j := range group.Suppliers {
		setCell(f, firstSupplierCol+j, taxRow, taxPercent/100)
	}

	// Total row: live SUM over the supplier's item range times (1 + tax cell).
	totalRow := taxRow + 1
	setCell(f, itemsCol, totalRow, "Total")
	for j := range group.Suppliers {
		colName, _ := excelize.ColumnNumberToName(firstSupplierCol + j)
		cell, _ := excelize.CoordinatesToCellName(firstSupplierCol+j, totalRow)
		formula := fmt.Sprintf("SUM(%s%d:%s%d)*(1+%s%d)", colName, dataRow, colName, taxRow-1, colName, taxRow)
		if err := f.SetCellFormula(sheetNameSummary, cell, formula); err != nil {
			return 0, fmt.Errorf("set total formula %s: %w", cell, err)
		}
	}

	// Styling pass over the full rectangle: fills, number formats, and a thin
	// border on the outer edges only.
	for row := headerRow; row <= totalRow; row++ {
		for col := detailsCol; col <= lastCol; col++ {
			key := styleKey{
				top:    row == headerRow,
				bottom: row == totalRow,
				left:   col == detailsCol,
				right:  col == lastCol,
			}
			switch {
			case row == headerRow:
				key.fill = fillHeader
			case row == totalRow:
				key.fill = fillTotal
				if col >= firstSupplierCol {
					key.numFmt = fmtCurrency
				}
			case row == taxRow && col >= firstSupplierCol:
				key.numFmt = fmtPercent
			case col >= firstSupplierCol:
				key.numFmt = fmtCurrency
			}

			styleID, err := styles.get(key)
			if err != nil {
				return 0, err
			}
			cell, _ := excelize.CoordinatesToCellName(col, row)
			if err := f.SetCellStyle(sheetNameSummary, cell, cell, styleID); err != nil {
				return 0, fmt.Errorf("style cell %s: %w", cell, err)
			}
		}
	}

	return totalRow, nil
}

func setCell(f *excelize.File, col, row int, value any) {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	f.SetCellValue(sheetNameSummary, cell, value)
}

func setReportColumnWidths(f *excelize.File, supplierCount int) error {
	widths := map[int]float64{
		detailsCol: 14,
		valueCol:   20,
		qtyCol:     8,
		itemsCol:   42,
	}
	for i := 0; i < supplierCount; i++ {
		widths[firstSupplierCol+i] = 16
	}
	for col, width := range widths {
		name, _ := excelize.ColumnNumberToName(col)
		if err := f.SetColWidth(sheetNameSummary, name, name, width); err != nil {
			return fmt.Errorf("set col width %s: %w", name, err)
		}
	}
	return nil
}

type fillKind int

const (
	fillNone fillKind = iota
	fillHeader
	fillTotal
)

type numFmtKind int

const (
	fmtNone numFmtKind = iota
	fmtCurrency
	fmtPercent
)

// styleKey identifies one combination of fill, number format and outer-edge
// borders. Styles are created lazily and reused across cells and groups.
type styleKey struct {
	fill                     fillKind
	numFmt                   numFmtKind
	top, bottom, left, right bool
}

type styleCache struct {
	f      *excelize.File
	styles map[styleKey]int
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{f: f, styles: make(map[styleKey]int)}
}

func (c *styleCache) get(key styleKey) (int, error) {
	if id, ok := c.styles[key]; ok {
		return id, nil
	}

	style := &excelize.Style{}

	switch key.fill {
	case fillHeader:
		style.Fill = excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1}
	case fillTotal:
		style.Fill = excelize.Fill{Type: "pattern", Color: []string{totalFillColor}, Pattern: 1}
	}

	switch key.numFmt {
	case fmtCurrency:
		custom := currencyFormat
		style.CustomNumFmt = &custom
	case fmtPercent:
		style.NumFmt = percentFormat
	}

	var borders []excelize.Border
	edges := []struct {
		side string
		on   bool
	}{
		{"top", key.top},
		{"bottom", key.bottom},
		{"left", key.left},
		{"right", key.right},
	}
	for _, e := range edges {
		if e.on {
			borders = append(borders, excelize.Border{Type: e.side, Color: "#000000", Style: 1})
		}
	}
	style.Border = borders

	id, err := c.f.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("create style: %w", err)
	}
	c.styles[key] = id
	return id, nil
}
