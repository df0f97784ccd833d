package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyDataset is returned when a report is requested with no data loaded.
var ErrEmptyDataset = errors.New("dataset is empty")

// MissingColumnsError is returned when the dataset lacks required columns.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("dataset is missing required columns: %s", strings.Join(e.Columns, ", "))
}

// MissingBrandError is returned when an item group has no "item" row to take
// its brand from. The report is aborted rather than rendered with a blank brand.
type MissingBrandError struct {
	Code      string
	PowerType string
}

func (e *MissingBrandError) Error() string {
	return fmt.Sprintf("no item row for code %q power type %q: cannot determine brand", e.Code, e.PowerType)
}

// ItemGroup is one product/configuration compared across suppliers: all rows
// sharing a (code, Power Type) key.
type ItemGroup struct {
	Code      string
	PowerType string
	Brand     string

	// Suppliers and Descriptions are in first-occurrence order within the group.
	Suppliers    []string
	Descriptions []string

	prices map[string]map[string]float64
}

// PriceFor returns the price quoted by a supplier for a description, or 0 when
// the group has no matching row. When the source table carries duplicate
// (supplier, description) rows the first match wins.
func (g *ItemGroup) PriceFor(supplier, description string) float64 {
	return g.prices[supplier][description]
}

// Subtotals returns the pre-tax sum per supplier across every description in
// the group, substituting 0 for missing cells.
func (g *ItemGroup) Subtotals() map[string]float64 {
	totals := make(map[string]float64, len(g.Suppliers))
	for _, s := range g.Suppliers {
		for _, d := range g.Descriptions {
			totals[s] += g.PriceFor(s, d)
		}
	}
	return totals
}

// FinalTotal applies the tax percentage to a pre-tax subtotal.
func FinalTotal(subtotal, taxPercent float64) float64 {
	return subtotal * (1 + taxPercent/100)
}

// Report is the grouped comparison both renderers consume.
type Report struct {
	Groups     []ItemGroup
	TaxPercent float64
}

// BuildReport groups the dataset into per-product comparison blocks.
//
// Grouping keys are the unique (code, Power Type) pairs over rows with
// type "item" and a non-blank Power Type, in first-occurrence order. A group
// contains every item/subitem row with a matching code whose Power Type either
// matches or is blank; blank-Power-Type rows therefore join every group that
// shares their code.
func BuildReport(ds *Dataset, taxPercent float64) (*Report, error) {
	if taxPercent < 0 {
		return nil, fmt.Errorf("tax percent must be >= 0, got %v", taxPercent)
	}
	if ds == nil || len(ds.Rows) == 0 {
		return nil, ErrEmptyDataset
	}
	if missing := ds.MissingColumns(); len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	report := &Report{TaxPercent: taxPercent}

	type groupKey struct {
		code      string
		powerType string
	}
	seen := make(map[groupKey]bool)

	for _, row := range ds.Rows {
		if row["type"] != "item" || row["Power Type"] == "" {
			continue
		}
		key := groupKey{code: row["code"], powerType: row["Power Type"]}
		if seen[key] {
			continue
		}
		seen[key] = true

		group, err := buildGroup(ds, key.code, key.powerType)
		if err != nil {
			return nil, err
		}
		report.Groups = append(report.Groups, *group)
	}

	return report, nil
}

// buildGroup collects the member rows for one (code, Power Type) key and
// derives brand, supplier/description order and the price matrix.
func buildGroup(ds *Dataset, code, powerType string) (*ItemGroup, error) {
	group := &ItemGroup{
		Code:      code,
		PowerType: powerType,
		prices:    make(map[string]map[string]float64),
	}

	seenSupplier := make(map[string]bool)
	seenDescription := make(map[string]bool)
	brandFound := false

	for i, row := range ds.Rows {
		if row["code"] != code {
			continue
		}
		if pt := row["Power Type"]; pt != "" && pt != powerType {
			continue
		}
		if t := row["type"]; t != "item" && t != "subitem" {
			continue
		}

		if !brandFound && row["type"] == "item" {
			group.Brand = row["brand"]
			brandFound = true
		}

		supplier := row["supplier"]
		description := row["description"]
		if !seenSupplier[supplier] {
			seenSupplier[supplier] = true
			group.Suppliers = append(group.Suppliers, supplier)
		}
		if !seenDescription[description] {
			seenDescription[description] = true
			group.Descriptions = append(group.Descriptions, description)
		}

		if group.prices[supplier] == nil {
			group.prices[supplier] = make(map[string]float64)
		}
		if _, exists := group.prices[supplier][description]; !exists {
			price, err := parsePrice(row["price"])
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			group.prices[supplier][description] = price
		}
	}

	if !brandFound {
		return nil, &MissingBrandError{Code: code, PowerType: powerType}
	}
	return group, nil
}

// parsePrice converts a price cell to a number. Blank cells count as 0 so a
// supplier that did not quote a line still gets a comparable column.
func parsePrice(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	price, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", value)
	}
	return price, nil
}
