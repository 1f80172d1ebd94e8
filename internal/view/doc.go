// Package view models the visible state of a download job: progress bar,
// status line, error and success regions, and submit enablement.
//
// State is a value type. Each transition returns a fresh State, so renderers
// can keep the previous snapshot for diffing and no two writers ever share a
// mutable view.
package view
