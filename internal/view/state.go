package view

import (
	"strings"

	"vidgrab/internal/api"
)

// Phase is the coarse lifecycle of the tracked job as the user sees it.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseSubmitting  Phase = "submitting"
	PhaseDownloading Phase = "downloading"
	PhaseCompleted   Phase = "completed"
	PhaseFailed      Phase = "failed"
)

// Fixed user-facing texts.
const (
	StartingText        = "Starting download..."
	WaitingText         = "Waiting for progress..."
	DownloadingText     = "Downloading..."
	CompletedStatusText = "Download completed!"
	SuccessText         = "Video downloaded successfully! Check your downloads folder."
	ProgressCheckError  = "Error checking progress"
	NetworkErrorPrefix  = "Network error: "
	RejectedFallback    = "Download request rejected"
	FailedFallback      = "Download failed"
)

// State is an immutable snapshot of everything the user sees for one job.
// Transition methods return a new State and never modify the receiver.
type State struct {
	DownloadID      string  `json:"download_id,omitempty"`
	Phase           Phase   `json:"phase"`
	ProgressVisible bool    `json:"progress_visible"`
	Percent         float64 `json:"percent"`
	StatusText      string  `json:"status_text,omitempty"`
	ErrorText       string  `json:"error_text,omitempty"`
	SuccessText     string  `json:"success_text,omitempty"`
	SubmitEnabled   bool    `json:"submit_enabled"`
}

// Idle is the state before any submission.
func Idle() State {
	return State{Phase: PhaseIdle, SubmitEnabled: true}
}

// Submitting clears previous outcome regions, shows the progress bar at 0%
// and disables the submit control.
func (s State) Submitting() State {
	return State{
		Phase:           PhaseSubmitting,
		ProgressVisible: true,
		Percent:         0,
		StatusText:      StartingText,
		SubmitEnabled:   false,
	}
}

// Accepted records the job id assigned by the server.
func (s State) Accepted(id string) State {
	s.DownloadID = id
	s.Phase = PhaseDownloading
	return s
}

// Downloading applies an in-progress poll result. The server's percentage
// is kept as reported; a missing one renders as 0 and an empty message as the
// generic downloading text.
func (s State) Downloading(progress *float64, message string) State {
	percent := 0.0
	if progress != nil {
		percent = *progress
	}
	if strings.TrimSpace(message) == "" {
		message = DownloadingText
	}
	s.Phase = PhaseDownloading
	s.ProgressVisible = true
	s.Percent = percent
	s.StatusText = message
	return s
}

// Completed forces 100%, shows the success message and re-enables submit.
func (s State) Completed() State {
	s.Phase = PhaseCompleted
	s.ProgressVisible = true
	s.Percent = 100
	s.StatusText = CompletedStatusText
	s.SuccessText = SuccessText
	s.ErrorText = ""
	s.SubmitEnabled = true
	return s
}

// Failed shows message in the error region, hides progress and re-enables
// submit.
func (s State) Failed(message string) State {
	s.Phase = PhaseFailed
	s.ProgressVisible = false
	s.ErrorText = message
	s.SuccessText = ""
	s.SubmitEnabled = true
	return s
}

// Apply maps a poll reply onto the state. Unknown statuses leave it unchanged.
func (s State) Apply(resp api.ProgressResponse) State {
	switch resp.Status {
	case api.StatusDownloading:
		return s.Downloading(resp.Progress, resp.Message)
	case api.StatusCompleted:
		return s.Completed()
	case api.StatusError:
		return s.Failed(fallback(resp.Error, FailedFallback))
	default:
		return s
	}
}

// Terminal reports whether the job has reached completed or failed.
func (s State) Terminal() bool {
	return s.Phase == PhaseCompleted || s.Phase == PhaseFailed
}

// PercentText renders the progress label, e.g. "40%".
func (s State) PercentText() string {
	return api.FormatPercent(s.Percent)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

// RejectedMessage returns the error region text for a failed submission.
func RejectedMessage(serverError string) string {
	return fallback(serverError, RejectedFallback)
}

// Watching starts tracking an existing job without a submission.
func (s State) Watching(id string) State {
	return State{
		DownloadID:      id,
		Phase:           PhaseDownloading,
		ProgressVisible: true,
		StatusText:      WaitingText,
		SubmitEnabled:   false,
	}
}
