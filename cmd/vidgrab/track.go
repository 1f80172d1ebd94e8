package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"vidgrab/internal/logging"
	"vidgrab/internal/notifications"
	"vidgrab/internal/services"
	"vidgrab/internal/tracker"
)

// trackOptions tunes runTracked. sourceURL labels notifications and is empty
// when watching an existing id.
type trackOptions struct {
	jsonOutput bool
	sourceURL  string
}

// startFunc begins tracking through session and returns the running job.
type startFunc func(ctx context.Context, session *tracker.Session) (*tracker.Job, error)

// runTracked holds the tracking lock, renders every state the session
// produces and waits for the job to finish. A failed job surfaces as an
// already reported error so main only sets the exit code.
func runTracked(cmd *cobra.Command, ctx *commandContext, opts trackOptions, start startFunc) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger := ctx.ensureLogger()

	lock, err := tracker.AcquireLock(cfg.LockPath())
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("release tracking lock failed", logging.Error(err))
		}
	}()

	transport, err := ctx.newClient()
	if err != nil {
		return err
	}

	sessionOpts := []tracker.Option{
		tracker.WithInterval(cfg.PollInterval()),
		tracker.WithLogger(logger),
	}
	store, err := ctx.openHistory()
	if err != nil {
		logger.Warn("history unavailable", logging.Error(err))
	}
	if store != nil {
		defer store.Close()
		sessionOpts = append(sessionOpts, tracker.WithRecorder(store))
	}

	renderer := newStateRenderer(cmd.OutOrStdout(), opts.jsonOutput)
	defer renderer.Finish()
	session := tracker.NewSession(transport, renderer, sessionOpts...)

	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier := notifications.NewService(cfg)
	notifyJob := notifications.Job{URL: opts.sourceURL}

	job, err := start(runCtx, session)
	if err != nil {
		if tracker.Stopped(err) {
			return context.Canceled
		}
		notifyFailure(cmd.Context(), logger, notifier, notifyJob, err)
		return reported(err)
	}
	notifyJob.DownloadID = job.ID

	outcome, err := job.Wait()
	if err != nil {
		if tracker.Stopped(err) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Stopped tracking %s; resume with `vidgrab watch %s`\n", job.ID, job.ID)
			return context.Canceled
		}
		notifyFailure(cmd.Context(), logger, notifier, notifyJob, err)
		return reported(err)
	}
	logger.Debug("tracking finished", logging.DownloadID(outcome.DownloadID))
	if err := notifier.NotifyCompleted(cmd.Context(), notifyJob); err != nil {
		logger.Warn("completion notification failed", logging.Error(err))
	}
	return nil
}

// notifyFailure reports err to the notifier. Delivery problems are logged
// and never change the exit status.
func notifyFailure(ctx context.Context, logger *slog.Logger, notifier notifications.Service, job notifications.Job, err error) {
	if nerr := notifier.NotifyFailed(ctx, job, services.UserMessage(err)); nerr != nil {
		logger.Warn("failure notification failed", logging.Error(nerr))
	}
}
