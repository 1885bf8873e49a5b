// Package config loads, normalizes, and validates boxoffice configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files (or YAML when the path says so), and honours
// the TMDB_API_KEY environment fallback. The Config type centralizes every
// knob the report pipeline and CLI need: catalog credentials, dataset
// selection, chart styling, currency formatting, and the output bucket.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical formats, and clear validation errors.
package config
