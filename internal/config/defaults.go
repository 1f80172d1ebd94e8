package config

const (
	defaultConfigPath       = "~/.config/vidgrab/config.toml"
	defaultServerURL        = "http://127.0.0.1:5000"
	defaultPollIntervalMs   = 500
	defaultStateDir         = "~/.local/share/vidgrab"
	defaultDownloadDir      = "~/Downloads/vidgrab"
	defaultFormat           = "best"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultHistoryEnabled   = true
	defaultHistoryRetention = 30

	defaultNotifyTimeoutSecs = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			BaseURL: defaultServerURL,
		},
		Poll: Poll{
			IntervalMillis: defaultPollIntervalMs,
		},
		Paths: Paths{
			StateDir:    defaultStateDir,
			DownloadDir: defaultDownloadDir,
		},
		Submit: Submit{
			Format: defaultFormat,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled:       defaultHistoryEnabled,
			RetentionDays: defaultHistoryRetention,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeoutSecs,
			OnSuccess:      true,
			OnFailure:      true,
		},
	}
}
