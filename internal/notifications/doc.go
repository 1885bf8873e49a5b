// Package notifications pushes report run results to an ntfy topic.
//
// NewService returns a noop implementation when no topic is configured, so
// callers can publish unconditionally.
package notifications
