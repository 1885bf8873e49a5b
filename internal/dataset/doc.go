// Package dataset turns TMDB discover results into box office tables.
//
// A Variant names the discover filters, the table schema, and whether the
// budget sanity filter applies. The Builder walks the discover pages in
// order, looks up each movie's details one at a time, and appends the
// enriched rows to a table in the order the catalog returned them. The first
// failed lookup aborts the build; no partial table is returned.
package dataset
