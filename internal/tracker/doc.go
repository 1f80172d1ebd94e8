// Package tracker drives a single download job from form submission to a
// terminal state.
//
// A Session submits form input through a Transport, then polls the job on a
// fixed cadence and pushes immutable view.State snapshots to a Renderer. Each
// tracked job runs as a cancellable background task; starting another job
// stops and awaits the previous one before anything new is rendered, so at
// most one job is tracked per session. AcquireLock extends that guarantee
// across processes with an advisory file lock.
//
// Renderers are invoked with the session lock held and must not call back
// into the Session.
package tracker
