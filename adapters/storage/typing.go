package storage

import (
	"strconv"
	"strings"

	"autodash/domain/dataset"
)

// TableFromRecords types each column from its raw string cells. A column
// where every non-empty cell parses as a boolean becomes boolean, every
// cell parsing as a number becomes numeric, anything else stays string.
// Empty cells are missing values.
func TableFromRecords(header []string, raw [][]string) *dataset.Table {
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	kinds := make([]dataset.Kind, len(columns))
	for col := range columns {
		kinds[col] = stringColumnKind(raw, col)
	}

	rows := make([][]dataset.Value, 0, len(raw))
	for _, record := range raw {
		row := make([]dataset.Value, len(columns))
		for col := range columns {
			cell := ""
			if col < len(record) {
				cell = strings.TrimSpace(record[col])
			}
			row[col] = parseCell(cell, kinds[col])
		}
		rows = append(rows, row)
	}
	return &dataset.Table{Columns: columns, Rows: rows}
}

func stringColumnKind(raw [][]string, col int) dataset.Kind {
	allBool := true
	allNumber := true
	sawValue := false

	for _, record := range raw {
		if col >= len(record) {
			continue
		}
		cell := strings.TrimSpace(record[col])
		if cell == "" {
			continue
		}
		sawValue = true
		if !isBoolLiteral(cell) {
			allBool = false
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			allNumber = false
		}
		if !allBool && !allNumber {
			return dataset.KindString
		}
	}

	switch {
	case !sawValue:
		return dataset.KindString
	case allBool:
		return dataset.KindBool
	case allNumber:
		return dataset.KindNumber
	default:
		return dataset.KindString
	}
}

func isBoolLiteral(cell string) bool {
	return strings.EqualFold(cell, "true") || strings.EqualFold(cell, "false")
}

func parseCell(cell string, kind dataset.Kind) dataset.Value {
	if cell == "" {
		return dataset.Missing()
	}
	switch kind {
	case dataset.KindBool:
		return dataset.BoolValue(strings.EqualFold(cell, "true"))
	case dataset.KindNumber:
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return dataset.Missing()
		}
		return dataset.NumberValue(v)
	default:
		return dataset.StringValue(cell)
	}
}

// unifyColumns forces columns with mixed value kinds down to strings so a
// column always carries a single kind, mirroring how a JSON array with
// heterogeneous cells would load as an object column.
func unifyColumns(t *dataset.Table) {
	for col := range t.Columns {
		var kind dataset.Kind
		mixed := false
		seen := false
		for _, row := range t.Rows {
			v := row[col]
			if v.IsMissing() {
				continue
			}
			if !seen {
				kind = v.Kind
				seen = true
			} else if v.Kind != kind {
				mixed = true
				break
			}
		}
		if !mixed {
			continue
		}
		for i, row := range t.Rows {
			v := row[col]
			if v.IsMissing() || v.Kind == dataset.KindString {
				continue
			}
			t.Rows[i][col] = dataset.StringValue(stringifyValue(v))
		}
	}
}

func stringifyValue(v dataset.Value) string {
	switch v.Kind {
	case dataset.KindBool:
		return strconv.FormatBool(v.Bool)
	case dataset.KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case dataset.KindTime:
		return v.Time.Format("2006-01-02 15:04:05")
	default:
		return v.Str
	}
}
