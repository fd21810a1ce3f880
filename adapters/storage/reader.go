package storage

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"autodash/domain/core"
	"autodash/domain/dataset"
)

// ReadCSV parses a CSV file with a header row into a typed table
func ReadCSV(path string) (*dataset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	if len(records) == 0 {
		return nil, core.ErrEmptyDataset
	}
	return TableFromRecords(records[0], records[1:]), nil
}

// ReadXLSX parses the first sheet of an Excel workbook into a typed table
func ReadXLSX(path string) (*dataset.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening xlsx file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, core.ErrEmptyDataset
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, core.ErrEmptyDataset
	}

	// excelize trims trailing empty cells per row, so pad to the header width
	header := rows[0]
	raw := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		padded := make([]string, len(header))
		copy(padded, row)
		raw = append(raw, padded)
	}
	return TableFromRecords(header, raw), nil
}

// ReadJSON parses an array of flat records into a typed table. Column order
// follows key order in the first record; keys appearing only in later
// records are appended alphabetically.
func ReadJSON(path string) (*dataset.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening json file: %w", err)
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing json records: %w", err)
	}
	if len(records) == 0 {
		return nil, core.ErrEmptyDataset
	}

	columns := jsonColumnOrder(data, records)
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		index[name] = i
	}

	rows := make([][]dataset.Value, 0, len(records))
	for _, record := range records {
		row := make([]dataset.Value, len(columns))
		for i := range row {
			row[i] = dataset.Missing()
		}
		for key, raw := range record {
			row[index[key]] = jsonValue(raw)
		}
		rows = append(rows, row)
	}

	t := &dataset.Table{Columns: columns, Rows: rows}
	unifyColumns(t)
	return t, nil
}

func jsonValue(raw interface{}) dataset.Value {
	switch v := raw.(type) {
	case nil:
		return dataset.Missing()
	case bool:
		return dataset.BoolValue(v)
	case float64:
		return dataset.NumberValue(v)
	case string:
		if strings.TrimSpace(v) == "" {
			return dataset.Missing()
		}
		return dataset.StringValue(strings.TrimSpace(v))
	default:
		// nested objects and arrays become their JSON text
		encoded, err := json.Marshal(v)
		if err != nil {
			return dataset.Missing()
		}
		return dataset.StringValue(string(encoded))
	}
}

// jsonColumnOrder recovers key order from the first record's raw tokens,
// then appends any keys only later records carry.
func jsonColumnOrder(data []byte, records []map[string]interface{}) []string {
	seen := make(map[string]bool)
	var columns []string

	var rawRecords []json.RawMessage
	if err := json.Unmarshal(data, &rawRecords); err == nil && len(rawRecords) > 0 {
		dec := json.NewDecoder(bytes.NewReader(rawRecords[0]))
		if tok, err := dec.Token(); err == nil {
			if delim, ok := tok.(json.Delim); ok && delim == '{' {
				for dec.More() {
					tok, err := dec.Token()
					if err != nil {
						break
					}
					key, ok := tok.(string)
					if !ok {
						break
					}
					if !seen[key] {
						seen[key] = true
						columns = append(columns, key)
					}
					var discard interface{}
					if err := dec.Decode(&discard); err != nil {
						break
					}
				}
			}
		}
	}

	var extra []string
	for _, record := range records {
		for key := range record {
			if !seen[key] {
				seen[key] = true
				extra = append(extra, key)
			}
		}
	}
	sort.Strings(extra)
	return append(columns, extra...)
}
