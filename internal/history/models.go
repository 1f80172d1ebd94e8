package history

import (
	"errors"
	"time"

	"vidgrab/internal/view"
)

// ErrNotFound is returned when no history row exists for an id.
var ErrNotFound = errors.New("download not found in history")

// timestampLayout is fixed-width so stored values sort chronologically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// Entry is one recorded download.
type Entry struct {
	DownloadID string     `json:"download_id"`
	URL        string     `json:"url"`
	Format     string     `json:"format"`
	UseProxy   bool       `json:"use_proxy"`
	ProxyURL   string     `json:"proxy_url,omitempty"`
	ProxyUser  string     `json:"proxy_user,omitempty"`
	Phase      view.Phase `json:"phase"`
	Percent    float64    `json:"percent"`
	StatusText string     `json:"status_text,omitempty"`
	ErrorText  string     `json:"error_text,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Terminal reports whether the recorded job finished.
func (e Entry) Terminal() bool {
	return e.Phase == view.PhaseCompleted || e.Phase == view.PhaseFailed
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(value string) time.Time {
	t, err := time.Parse(timestampLayout, value)
	if err != nil {
		t, _ = time.Parse(time.RFC3339Nano, value)
	}
	return t
}
