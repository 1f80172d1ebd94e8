package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeServer()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeProxy()
	c.normalizeSubmit()
	c.normalizeLogging()
	c.normalizeNotifications()
	return nil
}

func (c *Config) normalizeServer() {
	if value, ok := os.LookupEnv("VIDGRAB_SERVER_URL"); ok && strings.TrimSpace(value) != "" {
		c.Server.BaseURL = value
	}
	c.Server.BaseURL = strings.TrimRight(strings.TrimSpace(c.Server.BaseURL), "/")
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = defaultServerURL
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if value, ok := os.LookupEnv("DOWNLOAD_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.DownloadDir = value
	}
	if strings.TrimSpace(c.Paths.DownloadDir) == "" {
		c.Paths.DownloadDir = defaultDownloadDir
	}
	if c.Paths.DownloadDir, err = expandPath(c.Paths.DownloadDir); err != nil {
		return fmt.Errorf("paths.download_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeProxy() {
	if c.Proxy.URL == "" {
		if value, ok := os.LookupEnv("VIDGRAB_PROXY_URL"); ok {
			c.Proxy.URL = value
		}
	}
	if c.Proxy.User == "" {
		if value, ok := os.LookupEnv("VIDGRAB_PROXY_USER"); ok {
			c.Proxy.User = value
		}
	}
	if c.Proxy.Pass == "" {
		if value, ok := os.LookupEnv("VIDGRAB_PROXY_PASS"); ok {
			c.Proxy.Pass = value
		}
	}
	c.Proxy.URL = strings.TrimSpace(c.Proxy.URL)
	c.Proxy.User = strings.TrimSpace(c.Proxy.User)
}

func (c *Config) normalizeSubmit() {
	c.Submit.Format = strings.ToLower(strings.TrimSpace(c.Submit.Format))
	if c.Submit.Format == "" {
		c.Submit.Format = defaultFormat
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeNotifications() {
	if value, ok := os.LookupEnv("VIDGRAB_NTFY_TOPIC"); ok && strings.TrimSpace(value) != "" {
		c.Notifications.NtfyTopic = value
	}
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
}
