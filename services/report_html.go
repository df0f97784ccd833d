package services

import (
	"fmt"
	"html"
	"strings"
)

// reportCSS styles the preview to match the exported workbook: blue header
// fill, orange total-row fill, thin grey grid.
const reportCSS = `<style>
	table.price-report {
		border-collapse: collapse;
		width: 100%;
		margin-bottom: 40px;
		font-family: Arial, sans-serif;
		background-color: #ffffff;
		color: #000000;
		border: 1px solid #bfbfbf;
	}
	table.price-report th, table.price-report td {
		border: 1px solid #bfbfbf;
		padding: 6px 8px;
		vertical-align: middle;
		text-align: left;
	}
	table.price-report th {
		background-color: #dae9f8;
		font-weight: 600;
	}
	table.price-report .total-row td {
		background-color: #fce4d6;
		font-weight: bold;
	}
</style>
`

// RenderHTML renders the grouped price comparison as one self-contained HTML
// table per item group. It is a pure function of the report: re-rendering an
// unchanged report produces byte-identical markup, so the preview can be
// regenerated on every table or tax edit.
func RenderHTML(report *Report) string {
	var b strings.Builder

	b.WriteString(`<div class="price-report-wrap" style="overflow-x:auto;">`)
	b.WriteString("\n")
	b.WriteString(reportCSS)

	for i := range report.Groups {
		renderGroupHTML(&b, &report.Groups[i], report.TaxPercent)
	}

	b.WriteString("</div>")
	return b.String()
}

func renderGroupHTML(b *strings.Builder, group *ItemGroup, taxPercent float64) {
	// items + tax + total; also the rowspan of the identity cell
	bodyRows := len(group.Descriptions) + 2

	b.WriteString(`<table class="price-report">`)

	// Header row
	b.WriteString("<tr><th>Details</th><th></th><th>QTY</th><th>Items</th>")
	for _, s := range group.Suppliers {
		fmt.Fprintf(b, "<th>%s</th>", html.EscapeString(s))
	}
	b.WriteString("</tr>")

	// First item row carries the merged identity cell.
	first := group.Descriptions[0]
	fmt.Fprintf(b,
		`<tr><td rowspan="%d"><b>Brand</b><br>%s<br><br><b>Code</b><br>%s<br><br><b>Power Type</b><br>%s</td><td rowspan="%d"></td><td>1</td><td>%s</td>`,
		bodyRows,
		html.EscapeString(group.Brand),
		html.EscapeString(group.Code),
		html.EscapeString(group.PowerType),
		bodyRows,
		html.EscapeString(first),
	)
	for _, s := range group.Suppliers {
		fmt.Fprintf(b, "<td>%s</td>", FormatUSD(group.PriceFor(s, first)))
	}
	b.WriteString("</tr>")

	// Remaining item rows
	for _, desc := range group.Descriptions[1:] {
		fmt.Fprintf(b, "<tr><td>1</td><td>%s</td>", html.EscapeString(desc))
		for _, s := range group.Suppliers {
			fmt.Fprintf(b, "<td>%s</td>", FormatUSD(group.PriceFor(s, desc)))
		}
		b.WriteString("</tr>")
	}

	// Tax row
	b.WriteString("<tr><td></td><td><b>Tax</b></td>")
	for range group.Suppliers {
		fmt.Fprintf(b, "<td>%.2f%%</td>", taxPercent)
	}
	b.WriteString("</tr>")

	// Total row
	subtotals := group.Subtotals()
	b.WriteString(`<tr class="total-row"><td></td><td>Total</td>`)
	for _, s := range group.Suppliers {
		fmt.Fprintf(b, "<td>%s</td>", FormatUSD(FinalTotal(subtotals[s], taxPercent)))
	}
	b.WriteString("</tr>")

	b.WriteString("</table>")
}
