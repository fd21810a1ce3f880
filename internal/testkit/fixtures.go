package testkit

import (
	"bytes"
	"fmt"
	"time"

	"autodash/domain/dataset"
)

var salesRegions = []string{"north", "south", "east", "west"}

// SalesTable builds a deterministic date/region/revenue table. Revenue grows
// linearly so trend detection sees an upward series.
func SalesTable(rows int) *dataset.Table {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t := &dataset.Table{Columns: []string{"date", "region", "revenue"}}
	for i := 0; i < rows; i++ {
		t.Rows = append(t.Rows, []dataset.Value{
			dataset.TimeValue(start.AddDate(0, 0, i)),
			dataset.StringValue(salesRegions[i%len(salesRegions)]),
			dataset.NumberValue(100 + float64(i)*10),
		})
	}
	return t
}

// SalesCSV renders the same sales fixture as an uploadable CSV file
func SalesCSV(rows int) []byte {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	buf.WriteString("date,region,revenue\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&buf, "%s,%s,%.2f\n",
			start.AddDate(0, 0, i).Format("2006-01-02"),
			salesRegions[i%len(salesRegions)],
			100+float64(i)*10)
	}
	return buf.Bytes()
}
