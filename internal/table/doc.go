// Package table holds the ordered, typed tables the report pipeline builds.
//
// A Table has a fixed schema of named int or string columns. Rows keep the
// order they were appended in; nothing here sorts or deduplicates. Derived
// columns (gross profit) are computed from their source columns on every
// append, so they can never drift from the values they summarize.
//
// The package also encodes tables as CSV, XLSX, and Parquet.
package table
