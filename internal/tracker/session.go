package tracker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"vidgrab/internal/api"
	"vidgrab/internal/logging"
	"vidgrab/internal/services"
	"vidgrab/internal/view"
)

// DefaultInterval is the fixed poll cadence.
const DefaultInterval = 500 * time.Millisecond

// Transport is the subset of the server client the session needs.
type Transport interface {
	Submit(ctx context.Context, req api.DownloadRequest) (api.DownloadResponse, error)
	Progress(ctx context.Context, id string) (api.ProgressResponse, error)
}

// Renderer displays a view snapshot.
type Renderer interface {
	Render(view.State)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(view.State)

func (f RendererFunc) Render(s view.State) { f(s) }

// Recorder persists job snapshots. Failures are logged, never fatal.
type Recorder interface {
	Begin(ctx context.Context, id string, input api.FormInput) error
	Record(ctx context.Context, state view.State) error
}

// JobHandle identifies an accepted job.
type JobHandle struct {
	ID string
}

// Outcome is the terminal result of tracking a job.
type Outcome struct {
	DownloadID string
	Status     api.Status
	State      view.State
}

// Option customises a Session.
type Option func(*Session)

// WithInterval overrides the poll cadence.
func WithInterval(interval time.Duration) Option {
	return func(s *Session) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithRecorder attaches a history recorder.
func WithRecorder(recorder Recorder) Option {
	return func(s *Session) {
		s.recorder = recorder
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logging.NewComponentLogger(logger, "tracker")
	}
}

// Session tracks at most one download job and owns its view state. Starting
// a new job halts the previous one before anything new is rendered.
type Session struct {
	transport Transport
	renderer  Renderer
	recorder  Recorder
	interval  time.Duration
	logger    *slog.Logger

	mu      sync.Mutex
	state   view.State
	current *Job
}

// NewSession builds a session rendering into renderer.
func NewSession(transport Transport, renderer Renderer, opts ...Option) *Session {
	if renderer == nil {
		renderer = RendererFunc(func(view.State) {})
	}
	s := &Session{
		transport: transport,
		renderer:  renderer,
		interval:  DefaultInterval,
		logger:    logging.NewComponentLogger(nil, "tracker"),
		state:     view.Idle(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current view snapshot.
func (s *Session) State() view.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit sends the form to the server. It halts any job currently being
// tracked, then renders the submission and its result. A rejected or failed
// submission re-enables submit and starts no polling.
func (s *Session) Submit(ctx context.Context, input api.FormInput) (JobHandle, error) {
	s.halt()

	s.render(s.State().Submitting())
	req := input.Request()
	s.logger.Info("submitting download",
		logging.String("url", req.URL),
		logging.String("format", req.Format),
		logging.Bool("use_proxy", req.UseProxy),
	)

	resp, err := s.transport.Submit(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return JobHandle{}, ctx.Err()
		}
		message := view.NetworkErrorPrefix + services.Cause(err).Error()
		s.render(s.State().Failed(message))
		s.logger.Warn("submission failed", logging.Error(err))
		return JobHandle{}, err
	}

	if !resp.Success || resp.DownloadID == "" {
		message := view.RejectedMessage(resp.Error)
		if resp.Success {
			message = "server accepted the download without an id"
		}
		s.render(s.State().Failed(message))
		s.logger.Warn("submission rejected", logging.String("reason", message))
		return JobHandle{}, &services.DetailError{Marker: services.ErrRejected, Detail: message}
	}

	id := resp.DownloadID.String()
	s.render(s.State().Accepted(id))
	logging.WithContext(services.WithDownloadID(ctx, id), s.logger).Info("download accepted")
	if s.recorder != nil {
		if err := s.recorder.Begin(ctx, id, input); err != nil {
			s.logger.Warn("record submission failed", logging.DownloadID(id), logging.Error(err))
		}
	}
	return JobHandle{ID: id}, nil
}

// Poll fetches job progress every interval until the server reports a
// terminal status, a poll fails, or ctx is cancelled. The first fetch
// happens one interval after the call. Requests are strictly sequential.
//
// A completed job returns a nil error. A failed job returns an error marked
// services.ErrJobFailed, a failed poll services.ErrProgressCheck, and
// cancellation ctx.Err() without rendering anything further.
func (s *Session) Poll(ctx context.Context, id string) (Outcome, error) {
	if current := s.State(); current.DownloadID != id || current.Terminal() {
		s.render(current.Watching(id))
	}

	ctx = services.WithDownloadID(ctx, id)
	logger := logging.WithContext(ctx, s.logger)
	sampler := logging.NewProgressSampler(0)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("polling stopped", logging.Error(ctx.Err()))
			return s.outcome(id, ""), ctx.Err()
		case <-ticker.C:
		}

		resp, err := s.transport.Progress(ctx, id)
		if ctx.Err() != nil {
			logger.Debug("polling stopped", logging.Error(ctx.Err()))
			return s.outcome(id, ""), ctx.Err()
		}
		if err != nil {
			next := s.State().Failed(view.ProgressCheckError)
			s.render(next)
			s.record(ctx, next)
			logger.Warn("progress check failed", logging.Error(err))
			return s.outcome(id, api.StatusError), services.Wrap(services.ErrProgressCheck, "poll", id, err)
		}

		if !resp.Status.IsKnown() {
			logger.Debug("ignoring unknown status", logging.JobStatus(string(resp.Status)))
			continue
		}

		next := s.State().Apply(resp)
		s.render(next)
		s.record(ctx, next)

		switch resp.Status {
		case api.StatusCompleted:
			logger.Info("download completed")
			return s.outcome(id, api.StatusCompleted), nil
		case api.StatusError:
			logger.Warn("download failed", logging.String("reason", next.ErrorText))
			return s.outcome(id, api.StatusError), &services.DetailError{Marker: services.ErrJobFailed, Detail: next.ErrorText}
		default:
			if sampler.ShouldLog(next.Percent, string(resp.Status)) {
				logger.Info("download progress",
					logging.Percent(next.Percent),
					logging.String("message", next.StatusText),
				)
			}
		}
	}
}

// Start submits input and, once accepted, tracks the job in the background.
func (s *Session) Start(ctx context.Context, input api.FormInput) (*Job, error) {
	handle, err := s.Submit(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.track(ctx, handle.ID), nil
}

// Watch tracks an already submitted job in the background.
func (s *Session) Watch(ctx context.Context, id string) *Job {
	s.halt()
	return s.track(ctx, id)
}

// Run submits input and blocks until the job reaches a terminal state.
func (s *Session) Run(ctx context.Context, input api.FormInput) (Outcome, error) {
	job, err := s.Start(ctx, input)
	if err != nil {
		return s.outcome("", api.StatusError), err
	}
	return job.Wait()
}

// Stop halts the job currently being tracked, if any.
func (s *Session) Stop() {
	s.halt()
}

func (s *Session) track(ctx context.Context, id string) *Job {
	jobCtx, cancel := context.WithCancel(ctx)
	job := &Job{ID: id, cancel: cancel, done: make(chan struct{})}

	s.mu.Lock()
	s.current = job
	s.mu.Unlock()

	go func() {
		defer close(job.done)
		defer cancel()
		job.outcome, job.err = s.Poll(jobCtx, id)
	}()
	return job
}

func (s *Session) halt() {
	s.mu.Lock()
	current := s.current
	s.current = nil
	s.mu.Unlock()
	if current != nil {
		current.Stop()
	}
}

func (s *Session) render(next view.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next
	s.renderer.Render(next)
}

func (s *Session) record(ctx context.Context, state view.State) {
	if s.recorder == nil {
		return
	}
	// The snapshot is worth keeping even when the poll context is winding down.
	if err := s.recorder.Record(context.WithoutCancel(ctx), state); err != nil {
		s.logger.Warn("record progress failed", logging.DownloadID(state.DownloadID), logging.Error(err))
	}
}

func (s *Session) outcome(id string, status api.Status) Outcome {
	return Outcome{DownloadID: id, Status: status, State: s.State()}
}

// Job is a background poll task for one download.
type Job struct {
	ID string

	cancel  context.CancelFunc
	done    chan struct{}
	outcome Outcome
	err     error
}

// Done is closed when the job stops tracking.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job stops and returns its result.
func (j *Job) Wait() (Outcome, error) {
	<-j.done
	return j.outcome, j.err
}

// Stop halts polling and waits for the task to exit. No request is issued
// and nothing is rendered for this job once Stop returns.
func (j *Job) Stop() {
	j.cancel()
	<-j.done
}

// Stopped reports whether err means tracking was halted rather than the job
// reaching a terminal state.
func Stopped(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
