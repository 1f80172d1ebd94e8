package api_test

import (
	"encoding/json"
	"testing"

	"vidgrab/internal/api"
)

func TestFormInputRequestOmitsProxyWhenDisabled(t *testing.T) {
	input := api.FormInput{
		URL:      " https://example.com/watch?v=1 ",
		Format:   "mp3",
		UseProxy: false,
		Proxy:    api.ProxySettings{URL: "http://proxy:3128", User: "u", Pass: "p"},
	}
	req := input.Request()
	if req.UseProxy {
		t.Fatal("expected use_proxy false")
	}
	if req.ProxyURL != "" || req.ProxyUser != "" || req.ProxyPass != "" {
		t.Fatalf("expected proxy fields blanked, got %+v", req)
	}
	if req.URL != "https://example.com/watch?v=1" {
		t.Fatalf("unexpected url: %q", req.URL)
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"url":"https://example.com/watch?v=1","format":"mp3","use_proxy":false,"proxy_url":"","proxy_user":"","proxy_pass":""}`
	if string(data) != want {
		t.Fatalf("unexpected body\n got: %s\nwant: %s", data, want)
	}
}

func TestFormInputRequestKeepsProxyWhenEnabled(t *testing.T) {
	input := api.FormInput{
		URL:      "https://example.com/v",
		UseProxy: true,
		Proxy:    api.ProxySettings{URL: "http://proxy:3128", User: "u", Pass: "p"},
	}
	req := input.Request()
	if !req.UseProxy || req.ProxyURL != "http://proxy:3128" || req.ProxyUser != "u" || req.ProxyPass != "p" {
		t.Fatalf("expected proxy fields forwarded, got %+v", req)
	}
	if req.Format != api.DefaultFormat {
		t.Fatalf("expected default format, got %q", req.Format)
	}
}

func TestJobIDAcceptsStringAndNumber(t *testing.T) {
	tests := []struct {
		body string
		want api.JobID
	}{
		{`{"success":true,"download_id":"abc"}`, "abc"},
		{`{"success":true,"download_id":42}`, "42"},
		{`{"success":true,"download_id":null}`, ""},
		{`{"success":false,"error":"bad url"}`, ""},
	}
	for _, tt := range tests {
		var resp api.DownloadResponse
		if err := json.Unmarshal([]byte(tt.body), &resp); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.body, err)
		}
		if resp.DownloadID != tt.want {
			t.Fatalf("%s: got id %q want %q", tt.body, resp.DownloadID, tt.want)
		}
	}

	var resp api.DownloadResponse
	if err := json.Unmarshal([]byte(`{"success":true,"download_id":{"x":1}}`), &resp); err == nil {
		t.Fatal("expected error for object id")
	}
}

func TestProgressResponseOptionalProgress(t *testing.T) {
	var resp api.ProgressResponse
	if err := json.Unmarshal([]byte(`{"status":"downloading"}`), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Progress != nil {
		t.Fatalf("expected nil progress, got %v", *resp.Progress)
	}
	if err := json.Unmarshal([]byte(`{"status":"downloading","progress":40.5}`), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Progress == nil || *resp.Progress != 40.5 {
		t.Fatalf("unexpected progress: %v", resp.Progress)
	}
}

func TestStatusClassification(t *testing.T) {
	if !api.StatusCompleted.IsTerminal() || !api.StatusError.IsTerminal() {
		t.Fatal("expected completed and error to be terminal")
	}
	if api.StatusDownloading.IsTerminal() || api.StatusNotFound.IsTerminal() {
		t.Fatal("expected downloading and not_found to be non-terminal")
	}
	if api.StatusNotFound.IsKnown() || api.Status("queued").IsKnown() {
		t.Fatal("expected unknown statuses to be unknown")
	}
}

func TestFormatPercent(t *testing.T) {
	for value, want := range map[float64]string{0: "0%", 40: "40%", 40.5: "40.5%", 100: "100%"} {
		if got := api.FormatPercent(value); got != want {
			t.Fatalf("FormatPercent(%v) = %q, want %q", value, got, want)
		}
	}
	if !api.IsKnownFormat(" MP3 ") || api.IsKnownFormat("flac") {
		t.Fatal("unexpected IsKnownFormat result")
	}
}
