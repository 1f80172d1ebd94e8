package api

import "strings"

// DefaultFormat is used when a submission leaves the format empty.
const DefaultFormat = "best"

// Formats lists the format choices the download server understands. Other
// values are forwarded verbatim.
var Formats = []string{"best", "worst", "mp4", "webm", "mp3", "m4a"}

// ProxySettings groups the optional proxy fields of the form.
type ProxySettings struct {
	URL  string
	User string
	Pass string
}

// FormInput is the user-entered download form.
type FormInput struct {
	URL      string
	Format   string
	UseProxy bool
	Proxy    ProxySettings
}

// Request serialises the form into the creation request body. Proxy fields
// are blanked unless UseProxy is set, so stale values never reach the server.
func (f FormInput) Request() DownloadRequest {
	format := strings.TrimSpace(f.Format)
	if format == "" {
		format = DefaultFormat
	}
	req := DownloadRequest{
		URL:      strings.TrimSpace(f.URL),
		Format:   format,
		UseProxy: f.UseProxy,
	}
	if f.UseProxy {
		req.ProxyURL = f.Proxy.URL
		req.ProxyUser = f.Proxy.User
		req.ProxyPass = f.Proxy.Pass
	}
	return req
}

// IsKnownFormat reports whether format is one of Formats.
func IsKnownFormat(format string) bool {
	format = strings.ToLower(strings.TrimSpace(format))
	for _, candidate := range Formats {
		if candidate == format {
			return true
		}
	}
	return false
}
