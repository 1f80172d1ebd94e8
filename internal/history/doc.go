// Package history keeps a local SQLite log of submitted downloads.
//
// Each accepted job gets one row keyed by its server download id. The tracker
// feeds every rendered view snapshot into Record, so the row always reflects
// the last phase, percentage and message the user saw. Proxy passwords are
// never written. Rows older than the configured retention can be removed with
// Prune.
package history
