package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF renders the grouped price comparison as a PDF document using
// maroto/v2 and returns the raw PDF bytes.
func GeneratePDF(report *Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("Price Analysis", props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
		row.New(4),
	)

	for i := range report.Groups {
		addGroupSection(m, &report.Groups[i], report.TaxPercent)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// columnLayout returns the 12-grid widths for (qty, items, each supplier).
func columnLayout(supplierCount int) (qtyWidth, itemsWidth, supplierWidth int) {
	qtyWidth = 1
	supplierWidth = 2
	itemsWidth = 12 - qtyWidth - supplierWidth*supplierCount
	if itemsWidth < 2 {
		// Many suppliers: shrink their columns before the items column.
		supplierWidth = (12 - qtyWidth - 2) / supplierCount
		if supplierWidth < 1 {
			supplierWidth = 1
		}
		itemsWidth = 12 - qtyWidth - supplierWidth*supplierCount
	}
	return qtyWidth, itemsWidth, supplierWidth
}

func addGroupSection(m core.Maroto, group *ItemGroup, taxPercent float64) {
	qtyW, itemsW, supW := columnLayout(len(group.Suppliers))

	// Identity line: brand, code, power type.
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("%s / Code %s / %s", group.Brand, group.Code, group.PowerType),
					props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left},
				),
			),
		),
	)

	headerBg := &props.Color{Red: 218, Green: 233, Blue: 248}
	headerCell := props.Cell{BackgroundColor: headerBg}
	headerText := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCols := []core.Col{
		col.New(qtyW).Add(text.New("QTY", headerText)).WithStyle(&headerCell),
		col.New(itemsW).Add(text.New("Items", headerTextLeft)).WithStyle(&headerCell),
	}
	for _, s := range group.Suppliers {
		headerCols = append(headerCols,
			col.New(supW).Add(text.New(s, headerText)).WithStyle(&headerCell))
	}
	m.AddRows(row.New(8).Add(headerCols...))

	bodyText := props.Text{Size: 8, Align: align.Center}
	bodyTextLeft := bodyText
	bodyTextLeft.Align = align.Left
	bodyTextRight := bodyText
	bodyTextRight.Align = align.Right

	for _, desc := range group.Descriptions {
		cols := []core.Col{
			col.New(qtyW).Add(text.New("1", bodyText)),
			col.New(itemsW).Add(text.New(desc, bodyTextLeft)),
		}
		for _, s := range group.Suppliers {
			cols = append(cols,
				col.New(supW).Add(text.New(FormatUSD(group.PriceFor(s, desc)), bodyTextRight)))
		}
		m.AddRows(row.New(7).Add(cols...))
	}

	// Tax row
	taxCols := []core.Col{
		col.New(qtyW),
		col.New(itemsW).Add(text.New("Tax", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left})),
	}
	for range group.Suppliers {
		taxCols = append(taxCols,
			col.New(supW).Add(text.New(fmt.Sprintf("%.2f%%", taxPercent), bodyTextRight)))
	}
	m.AddRows(row.New(7).Add(taxCols...))

	// Total row with the same highlight as the workbook.
	totalBg := &props.Color{Red: 252, Green: 228, Blue: 214}
	totalCell := props.Cell{BackgroundColor: totalBg}
	totalText := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}

	subtotals := group.Subtotals()
	totalCols := []core.Col{
		col.New(qtyW).WithStyle(&totalCell),
		col.New(itemsW).Add(
			text.New("Total", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}),
		).WithStyle(&totalCell),
	}
	for _, s := range group.Suppliers {
		totalCols = append(totalCols,
			col.New(supW).Add(
				text.New(FormatUSD(FinalTotal(subtotals[s], taxPercent)), totalText),
			).WithStyle(&totalCell))
	}
	m.AddRows(row.New(8).Add(totalCols...))

	// Gap before the next group.
	m.AddRows(row.New(6))
}
