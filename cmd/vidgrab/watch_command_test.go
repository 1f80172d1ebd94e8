package main

import (
	"errors"
	"testing"

	"vidgrab/internal/services"
	"vidgrab/internal/view"
)

func TestWatchReportsServerFailure(t *testing.T) {
	env := setupCLITestEnv(t)
	env.server.ScriptProgress("job-9",
		`{"status":"downloading","progress":10}`,
		`{"status":"error","error":"conversion failed"}`,
	)

	out, _, err := env.run(t, "watch", "job-9")
	if !errors.Is(err, services.ErrJobFailed) {
		t.Fatalf("expected ErrJobFailed, got %v", err)
	}
	requireContains(t, out, view.WaitingText)
	requireContains(t, out, "conversion failed")
	if polls := env.server.Polls("job-9"); polls != 2 {
		t.Fatalf("expected polling to stop after the error, got %d polls", polls)
	}
}

func TestWatchKeepsPollingThroughUnknownStatus(t *testing.T) {
	env := setupCLITestEnv(t)
	env.server.ScriptProgress("job-2",
		`{"status":"not_found"}`,
		`{"status":"not_found"}`,
		`{"status":"completed"}`,
	)

	out, _, err := env.run(t, "watch", "job-2")
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	requireContains(t, out, view.CompletedStatusText)
	if polls := env.server.Polls("job-2"); polls != 3 {
		t.Fatalf("expected three polls, got %d", polls)
	}
}

func TestWatchMalformedProgress(t *testing.T) {
	env := setupCLITestEnv(t)
	env.server.ScriptProgress("job-3", `<html>oops</html>`)

	out, _, err := env.run(t, "watch", "job-3")
	if !errors.Is(err, services.ErrProgressCheck) {
		t.Fatalf("expected ErrProgressCheck, got %v", err)
	}
	requireContains(t, out, view.ProgressCheckError)
}
