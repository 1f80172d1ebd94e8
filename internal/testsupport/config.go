package testsupport

import (
	"path/filepath"
	"testing"

	"vidgrab/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.DownloadDir = filepath.Join(base, "downloads")
	cfgVal.Poll.IntervalMillis = 5

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithServer points the test config at a server base URL.
func WithServer(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Server.BaseURL = baseURL
	}
}

// WithHistoryDisabled turns off the local history store.
func WithHistoryDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}

// WithProxy sets default proxy settings on the test config.
func WithProxy(url, user, pass string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Proxy.Enabled = true
		b.cfg.Proxy.URL = url
		b.cfg.Proxy.User = user
		b.cfg.Proxy.Pass = pass
	}
}

// WithNtfyTopic enables ntfy notifications against topicURL.
func WithNtfyTopic(topicURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topicURL
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
