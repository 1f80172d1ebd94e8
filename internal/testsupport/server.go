package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"vidgrab/internal/api"
)

// FakeServer is a scripted stand-in for the download server.
//
// Submissions answer with SubmitResponse. Progress requests walk through the
// scripted replies for the id in order and repeat the last one once the
// script is exhausted; ids without a script get a not_found reply.
type FakeServer struct {
	*httptest.Server

	// FilesDir is served under /downloads/.
	FilesDir string

	mu        sync.Mutex
	submit    api.DownloadResponse
	progress  map[string][]string
	requests  []api.DownloadRequest
	polls     map[string]int
	rawSubmit string
}

// NewFakeServer starts a fake server that accepts submissions as job "job-1"
// and reports it completed on the first poll.
func NewFakeServer(t testing.TB) *FakeServer {
	t.Helper()

	fs := &FakeServer{
		FilesDir: t.TempDir(),
		submit:   api.DownloadResponse{Success: true, DownloadID: "job-1"},
		progress: map[string][]string{"job-1": {`{"status":"completed"}`}},
		polls:    make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /download", fs.handleSubmit)
	mux.HandleFunc("GET /progress/{id}", fs.handleProgress)
	mux.HandleFunc("GET /downloads/{filename}", fs.handleFile)
	fs.Server = httptest.NewServer(mux)
	t.Cleanup(fs.Close)
	return fs
}

// RespondToSubmit sets the reply for POST /download.
func (fs *FakeServer) RespondToSubmit(resp api.DownloadResponse) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.submit = resp
	fs.rawSubmit = ""
}

// RespondToSubmitRaw sends body verbatim for POST /download.
func (fs *FakeServer) RespondToSubmitRaw(body string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.rawSubmit = body
}

// ScriptProgress replaces the poll replies for id with raw JSON bodies.
func (fs *FakeServer) ScriptProgress(id string, bodies ...string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.progress[id] = append([]string(nil), bodies...)
}

// Requests returns every decoded submission.
func (fs *FakeServer) Requests() []api.DownloadRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]api.DownloadRequest(nil), fs.requests...)
}

// Polls returns how many progress requests id received.
func (fs *FakeServer) Polls(id string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.polls[id]
}

func (fs *FakeServer) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req api.DownloadRequest
	data, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(data, &req)

	fs.mu.Lock()
	fs.requests = append(fs.requests, req)
	resp, raw := fs.submit, fs.rawSubmit
	fs.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if raw != "" {
		_, _ = io.WriteString(w, raw)
		return
	}
	if !resp.Success {
		w.WriteHeader(http.StatusBadRequest)
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (fs *FakeServer) handleProgress(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	fs.mu.Lock()
	call := fs.polls[id]
	fs.polls[id] = call + 1
	script := fs.progress[id]
	fs.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if len(script) == 0 {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"status":"not_found"}`)
		return
	}
	body := script[min(call, len(script)-1)]
	_, _ = io.WriteString(w, body)
}

func (fs *FakeServer) handleFile(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(r.PathValue("filename"))
	http.ServeFile(w, r, filepath.Join(fs.FilesDir, name))
}
