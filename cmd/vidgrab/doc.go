// Package main hosts the vidgrab CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into download
// server requests: submitting a job and following its progress, re-attaching
// to a job by id, reviewing and pruning the local history, fetching finished
// files and checking readiness. It centralizes configuration resolution and
// logging setup so subcommands can focus on rendering.
//
// Keep this package lean: new behaviour belongs in the internal packages
// first and is surfaced here through commands or flags.
package main
