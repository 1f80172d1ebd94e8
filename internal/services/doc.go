// Package services defines shared helpers used by the client, tracker, and
// CLI layers.
//
// Key responsibilities:
//   - Context helpers that stamp the download id and request correlation id
//     for logging.
//   - Error markers plus the Wrap helper so callers classify failures with
//     errors.Is instead of string matching.
package services
