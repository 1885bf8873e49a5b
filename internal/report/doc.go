// Package report runs the end-to-end box office pipeline.
//
// One Run discovers and enriches the yearly and all-time datasets, derives
// gross profit for the all-time table, renders the four charts, exports the
// tables in every configured format, and writes all of it plus a manifest
// under a fresh run ID in the artifact store. The first error aborts the
// run; artifacts already written stay in the bucket but no manifest is
// produced for a failed run.
package report
