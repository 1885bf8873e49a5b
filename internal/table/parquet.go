package table

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
)

// ParquetSchema maps the table schema onto required parquet leaves: int
// columns become INT64, string columns UTF-8 byte arrays.
func ParquetSchema(t *Table) *parquet.Schema {
	group := parquet.Group{}
	for _, cs := range t.schema.Columns {
		switch cs.Kind {
		case KindInt:
			group[cs.Name] = parquet.Int(64)
		case KindString:
			group[cs.Name] = parquet.String()
		}
	}
	return parquet.NewSchema("boxoffice", group)
}

// WriteParquet writes the table as a single row group parquet file.
func WriteParquet(w io.Writer, t *Table) error {
	schema := ParquetSchema(t)

	// parquet groups order their fields by name; map each leaf back to the
	// table column feeding it.
	fields := schema.Fields()
	source := make([]int, len(fields))
	for i, field := range fields {
		idx, ok := t.schema.Index(field.Name())
		if !ok {
			return fmt.Errorf("parquet field %q has no column", field.Name())
		}
		source[i] = idx
	}

	rows := make([]parquet.Row, 0, t.rows)
	for r := 0; r < t.rows; r++ {
		values := t.Row(r)
		row := make(parquet.Row, len(fields))
		for i, idx := range source {
			switch v := values[idx].(type) {
			case int64:
				row[i] = parquet.Int64Value(v).Level(0, 0, i)
			case string:
				row[i] = parquet.ByteArrayValue([]byte(v)).Level(0, 0, i)
			}
		}
		rows = append(rows, row)
	}

	writer := parquet.NewWriter(w, schema)
	if _, err := writer.WriteRows(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("parquet write rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("parquet close: %w", err)
	}
	return nil
}
