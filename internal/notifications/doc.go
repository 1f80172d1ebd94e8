// Package notifications pushes finished-download events to ntfy.
//
// The service posts to the topic URL from config.toml and degrades to a no-op
// when no topic is configured. Completion and failure messages can be toggled
// independently.
package notifications
