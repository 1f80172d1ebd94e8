package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cavaliergopher/grab/v3"

	"vidgrab/internal/logging"
	"vidgrab/internal/preflight"
	"vidgrab/internal/services"
)

// ErrInvalidFilename is returned for names that are empty or not a single
// path element.
var ErrInvalidFilename = errors.New("invalid filename")

// URLResolver maps a server-side filename to its download URL.
type URLResolver interface {
	FileURL(filename string) string
}

// Progress is a transfer snapshot.
type Progress struct {
	Filename      string
	BytesComplete int64
	Size          int64
	Fraction      float64
}

// Option customises a Client.
type Option func(*Client)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "fetch")
	}
}

// WithProgress registers a callback invoked on every progress tick.
func WithProgress(fn func(Progress)) Option {
	return func(c *Client) {
		c.onProgress = fn
	}
}

// WithTickInterval overrides how often progress is reported.
func WithTickInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.tick = interval
		}
	}
}

// Client downloads files from the server.
type Client struct {
	resolver   URLResolver
	grab       *grab.Client
	tick       time.Duration
	logger     *slog.Logger
	onProgress func(Progress)
}

// New builds a fetch client resolving URLs through resolver.
func New(resolver URLResolver, opts ...Option) *Client {
	gc := grab.NewClient()
	gc.UserAgent = "vidgrab"
	c := &Client{
		resolver: resolver,
		grab:     gc,
		tick:     time.Second,
		logger:   logging.NewComponentLogger(nil, "fetch"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Download saves filename into destDir and returns the written path. The
// destination directory is created when missing and must be writable.
func (c *Client) Download(ctx context.Context, filename, destDir string) (string, error) {
	name, err := cleanFilename(filename)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create destination: %w", err)
	}
	if check := preflight.CheckDirectoryAccess("Destination", destDir); !check.Passed {
		return "", fmt.Errorf("destination not writable: %s", check.Detail)
	}

	source := c.resolver.FileURL(name)
	target := filepath.Join(destDir, name)
	req, err := grab.NewRequest(target, source)
	if err != nil {
		return "", services.Wrap(services.ErrTransport, "fetch", "build request", err)
	}
	req = req.WithContext(ctx)

	c.logger.Info("fetching file", logging.String("url", source), logging.String("destination", target))
	resp := c.grab.Do(req)

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

Loop:
	for {
		select {
		case <-ticker.C:
			c.report(name, resp)
		case <-resp.Done:
			break Loop
		}
	}

	if err := resp.Err(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", services.Wrap(services.ErrTransport, "fetch", name, err)
	}
	c.report(name, resp)
	c.logger.Info("file saved",
		logging.String("path", resp.Filename),
		logging.Int("bytes", int(resp.BytesComplete())),
		logging.Duration("elapsed", resp.Duration()),
	)
	return resp.Filename, nil
}

func (c *Client) report(name string, resp *grab.Response) {
	p := Progress{
		Filename:      name,
		BytesComplete: resp.BytesComplete(),
		Size:          resp.Size(),
		Fraction:      resp.Progress(),
	}
	c.logger.Debug("transfer progress",
		logging.Int("bytes", int(p.BytesComplete)),
		logging.Int("size", int(p.Size)),
		logging.Percent(100*p.Fraction),
	)
	if c.onProgress != nil {
		c.onProgress(p)
	}
}

func cleanFilename(filename string) (string, error) {
	name := strings.TrimSpace(filename)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	return name, nil
}
