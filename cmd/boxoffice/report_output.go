package main

import (
	"fmt"
	"strings"

	"boxoffice/internal/artifact"
	"boxoffice/internal/dataset"
	"boxoffice/internal/money"
	"boxoffice/internal/report"
	"boxoffice/internal/table"
)

type reportSummary struct {
	RunID     string              `json:"run_id"`
	Bucket    string              `json:"bucket"`
	Manifest  string              `json:"manifest"`
	Datasets  []datasetSummary    `json:"datasets"`
	Charts    []chartSummary      `json:"charts"`
	Artifacts []artifact.Artifact `json:"artifacts"`
}

type datasetSummary struct {
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Columns  []string `json:"columns"`
	Rows     [][]any  `json:"rows"`
	Rejected []string `json:"rejected,omitempty"`
}

type chartSummary struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	Mean string `json:"mean,omitempty"`
}

func summarizeReport(result *report.Result, bucket string) reportSummary {
	summary := reportSummary{
		RunID:     result.RunID,
		Bucket:    bucket,
		Manifest:  result.ManifestKey,
		Datasets:  []datasetSummary{summarizeDataset(result.Yearly, result.Yearly.Table)},
		Charts:    make([]chartSummary, 0, len(result.Charts)),
		Artifacts: result.Artifacts,
	}
	summary.Datasets = append(summary.Datasets, summarizeDataset(result.AllTime, result.Gross))
	for _, c := range result.Charts {
		entry := chartSummary{Name: c.Name, Key: c.Key}
		if c.HasMean {
			entry.Mean = c.Mean.StringFixed(2)
		}
		summary.Charts = append(summary.Charts, entry)
	}
	return summary
}

func summarizeDataset(ds *dataset.Dataset, tbl *table.Table) datasetSummary {
	out := datasetSummary{
		Name:    ds.Variant.Name,
		Title:   ds.Variant.Title,
		Columns: tbl.Columns(),
		Rows:    make([][]any, 0, tbl.Len()),
	}
	for i := range tbl.Len() {
		out.Rows = append(out.Rows, tbl.Row(i))
	}
	for _, row := range ds.Rejected {
		out.Rejected = append(out.Rejected, row.Film)
	}
	return out
}

func renderReport(result *report.Result, formatter money.Formatter, bucket string, colorize bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s\n\n", result.RunID)

	sections := []struct {
		ds  *dataset.Dataset
		tbl *table.Table
	}{
		{result.Yearly, result.Yearly.Table},
		{result.AllTime, result.Gross},
	}
	for _, s := range sections {
		b.WriteString(heading(s.ds.Variant.Title, colorize))
		b.WriteString("\n")
		b.WriteString(renderDatasetTable(s.tbl, formatter))
		b.WriteString("\n")
		for _, row := range s.ds.Rejected {
			fmt.Fprintf(&b, "Excluded %q (budget %s)\n", row.Film, formatter.FormatInt(row.Budget))
		}
		b.WriteString("\n")
	}

	chartRows := make([][]string, 0, len(result.Charts))
	for _, c := range result.Charts {
		mean := "-"
		if c.HasMean {
			mean = formatter.Format(c.Mean.InexactFloat64(), 0)
		}
		chartRows = append(chartRows, []string{c.Name, mean, c.Key})
	}
	b.WriteString(heading("Charts", colorize))
	b.WriteString("\n")
	b.WriteString(renderTable([]string{"Chart", "Mean", "Key"}, chartRows, []columnAlignment{alignLeft, alignRight, alignLeft}))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Wrote %d artifacts to %s\n", len(result.Artifacts), bucket)
	fmt.Fprintf(&b, "Manifest: %s\n", result.ManifestKey)
	return b.String()
}

func renderDatasetTable(tbl *table.Table, formatter money.Formatter) string {
	schema := tbl.Schema()
	headers := make([]string, 0, len(schema.Columns)+1)
	aligns := make([]columnAlignment, 0, len(schema.Columns)+1)
	headers = append(headers, "#")
	aligns = append(aligns, alignRight)
	for _, col := range schema.Columns {
		headers = append(headers, columnTitle(col.Name))
		if col.Kind == table.KindInt {
			aligns = append(aligns, alignRight)
		} else {
			aligns = append(aligns, alignLeft)
		}
	}

	rows := make([][]string, 0, tbl.Len())
	for i := range tbl.Len() {
		values := tbl.Row(i)
		row := make([]string, 0, len(values)+1)
		row = append(row, fmt.Sprintf("%d", i+1))
		for _, v := range values {
			switch typed := v.(type) {
			case int64:
				row = append(row, formatter.FormatInt(typed))
			default:
				row = append(row, fmt.Sprint(typed))
			}
		}
		rows = append(rows, row)
	}
	return renderTable(headers, rows, aligns)
}

func columnTitle(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
