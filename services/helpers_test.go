package services

import "bytes"

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

// testDataset builds a dataset with the required columns in their usual
// order: type, supplier, brand, code, description, Power Type, price.
func testDataset(rows ...[]string) *Dataset {
	ds := &Dataset{Columns: append([]string(nil), RequiredColumns...)}
	for _, raw := range rows {
		row := make(map[string]string, len(ds.Columns))
		for i, col := range ds.Columns {
			if i < len(raw) {
				row[col] = raw[i]
			} else {
				row[col] = ""
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}

// comparisonFixture is the canonical two-supplier group: A quotes X=10 Y=20,
// B quotes X=15 Y=5, so at 12% tax the totals are A=33.60 and B=22.40.
func comparisonFixture() *Dataset {
	return testDataset(
		[]string{"item", "A", "Acme", "C100", "X", "230V", "10"},
		[]string{"subitem", "A", "", "C100", "Y", "", "20"},
		[]string{"item", "B", "Acme", "C100", "X", "230V", "15"},
		[]string{"subitem", "B", "", "C100", "Y", "", "5"},
	)
}
