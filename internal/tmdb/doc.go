// Package tmdb provides the minimal TMDB API client used to build box office
// datasets.
//
// It authenticates requests and exposes the discover endpoint (always sorted
// by revenue, descending, with an optional release-year filter and page
// selector) and the movie detail lookup that carries revenue, budget, and
// release date. Failures are tagged with the services error markers so callers
// can tell transport, parse, and not-found errors apart. Options allow tests to
// supply custom HTTP clients without modifying production code.
package tmdb
