package table_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"

	"boxoffice/internal/table"
)

func sampleTable(t *testing.T) *table.Table {
	t.Helper()
	tbl := mustTable(t, allTimeSchema())
	rows := [][]any{
		{"Avatar", int64(2781505847), int64(-237000000), "2009-12-10"},
		{"Titanic", int64(1845034188), int64(-200000000), "1997-11-18"},
	}
	for _, row := range rows {
		if err := tbl.Append(row...); err != nil {
			t.Fatalf("Append returned error: %v", err)
		}
	}
	withGross, err := table.WithGross(tbl)
	if err != nil {
		t.Fatalf("WithGross returned error: %v", err)
	}
	return withGross
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := table.WriteCSV(&buf, sampleTable(t)); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	if got := records[0][4]; got != "gross" {
		t.Fatalf("expected gross header, got %q", got)
	}
	if got := records[1][4]; got != "2544505847" {
		t.Fatalf("unexpected gross cell %q", got)
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := table.WriteXLSX(&buf, sampleTable(t), "all_time"); err != nil {
		t.Fatalf("WriteXLSX returned error: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("all_time")
	if err != nil {
		t.Fatalf("GetRows returned error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "film" || rows[2][0] != "Titanic" {
		t.Fatalf("unexpected sheet contents: %v", rows)
	}
}

func TestWriteParquet(t *testing.T) {
	var buf bytes.Buffer
	if err := table.WriteParquet(&buf, sampleTable(t)); err != nil {
		t.Fatalf("WriteParquet returned error: %v", err)
	}
	file, err := parquet.OpenFile(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("open parquet: %v", err)
	}
	if file.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", file.NumRows())
	}
	if got := len(file.Schema().Fields()); got != 5 {
		t.Fatalf("expected 5 fields, got %d", got)
	}
}
