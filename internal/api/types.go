package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Status is the server-reported lifecycle of a download job.
type Status string

const (
	StatusDownloading Status = "downloading"
	StatusCompleted   Status = "completed"
	StatusError       Status = "error"
	// StatusNotFound is reported by the server for ids it does not know.
	// Clients treat it like any other unknown value.
	StatusNotFound Status = "not_found"
)

// IsTerminal reports whether polling stops at this status.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError
}

// IsKnown reports whether the status drives a view transition.
func (s Status) IsKnown() bool {
	return s == StatusDownloading || s.IsTerminal()
}

// JobID is the opaque identifier the server assigns on creation. The wire
// value may be a JSON string or number; both normalise to their text form.
type JobID string

// UnmarshalJSON accepts strings and numbers.
func (id *JobID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = JobID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("download_id: expected string or number, got %s", data)
	}
	*id = JobID(n.String())
	return nil
}

func (id JobID) String() string {
	return string(id)
}

// DownloadRequest is the POST /download body.
type DownloadRequest struct {
	URL       string `json:"url"`
	Format    string `json:"format"`
	UseProxy  bool   `json:"use_proxy"`
	ProxyURL  string `json:"proxy_url"`
	ProxyUser string `json:"proxy_user"`
	ProxyPass string `json:"proxy_pass"`
}

// DownloadResponse is the POST /download reply.
type DownloadResponse struct {
	Success    bool   `json:"success"`
	DownloadID JobID  `json:"download_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ProgressResponse is the GET /progress/{id} reply. Progress is nil when the
// server omits it.
type ProgressResponse struct {
	Status   Status   `json:"status"`
	Progress *float64 `json:"progress,omitempty"`
	Message  string   `json:"message,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// FormatPercent renders a percentage the way the server reported it, without
// padding or rounding beyond what the number carries.
func FormatPercent(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + "%"
}
