package table

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV writes the table with a header row.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns()); err != nil {
		return err
	}
	record := make([]string, len(t.schema.Columns))
	for r := 0; r < t.rows; r++ {
		for c, value := range t.Row(r) {
			switch v := value.(type) {
			case int64:
				record[c] = strconv.FormatInt(v, 10)
			case string:
				record[c] = v
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
