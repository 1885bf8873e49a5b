package report

import (
	"bytes"
	"fmt"
	"strings"

	"boxoffice/internal/services"
	"boxoffice/internal/table"
)

type tableFormat struct {
	ext         string
	contentType string
	write       func(*bytes.Buffer, *table.Table, string) error
}

var tableFormats = map[string]tableFormat{
	"csv": {
		ext:         "csv",
		contentType: "text/csv",
		write: func(buf *bytes.Buffer, t *table.Table, _ string) error {
			return table.WriteCSV(buf, t)
		},
	},
	"xlsx": {
		ext:         "xlsx",
		contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		write: func(buf *bytes.Buffer, t *table.Table, name string) error {
			return table.WriteXLSX(buf, t, name)
		},
	},
	"parquet": {
		ext:         "parquet",
		contentType: "application/vnd.apache.parquet",
		write: func(buf *bytes.Buffer, t *table.Table, _ string) error {
			return table.WriteParquet(buf, t)
		},
	},
}

func encodeTable(format string, t *table.Table, name string) ([]byte, tableFormat, error) {
	tf, ok := tableFormats[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, tableFormat{}, services.Wrap(services.ErrValidation, stageReport, "export", fmt.Sprintf("unsupported table format %q", format), nil)
	}
	var buf bytes.Buffer
	if err := tf.write(&buf, t, name); err != nil {
		return nil, tableFormat{}, fmt.Errorf("export %s as %s: %w", name, tf.ext, err)
	}
	return buf.Bytes(), tf, nil
}
