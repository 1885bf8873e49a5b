// Package artifact stores report outputs in a gocloud.dev blob bucket and
// guards a run with an exclusive lock file.
//
// A bucket URL selects the backend: file:///path for local directories and
// mem:// for tests. Every Put is recorded so the runner can describe the run
// in a manifest.json written next to its artifacts.
package artifact
