// Package main hosts the boxoffice CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once per invocation, builds
// the TMDB client, artifact store, and logger, and hands off to the report
// runner. Commands only shape terminal output; dataset, chart, and export
// logic live in the internal packages.
package main
