// Package services defines shared utilities consumed by the report pipeline
// and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, and dataset variants
//     for logging.
//   - Structured error markers plus the Wrap helper so transport, parse,
//     lookup, and schema failures can be told apart with errors.Is.
//
// Use these helpers when wiring new pipeline steps so error classification
// and log fields stay uniform.
package services
