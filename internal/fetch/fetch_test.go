package fetch_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"vidgrab/internal/client"
	"vidgrab/internal/fetch"
	"vidgrab/internal/services"
	"vidgrab/internal/testsupport"
)

func newFetcher(t *testing.T, srv *testsupport.FakeServer, opts ...fetch.Option) *fetch.Client {
	t.Helper()
	c, err := client.New(srv.URL)
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	return fetch.New(c, opts...)
}

func TestDownloadSavesFile(t *testing.T) {
	srv := testsupport.NewFakeServer(t)
	testsupport.WriteFile(t, filepath.Join(srv.FilesDir, "clip.mp4"), 200*1024)

	var last fetch.Progress
	fetcher := newFetcher(t, srv,
		fetch.WithTickInterval(time.Millisecond),
		fetch.WithProgress(func(p fetch.Progress) { last = p }),
	)

	dest := filepath.Join(t.TempDir(), "out")
	path, err := fetcher.Download(context.Background(), "clip.mp4", dest)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if path != filepath.Join(dest, "clip.mp4") {
		t.Fatalf("unexpected path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if len(data) != 200*1024 || !bytes.Equal(data[:4], bytes.Repeat([]byte{testsupport.FillByte}, 4)) {
		t.Fatalf("unexpected saved content (%d bytes)", len(data))
	}
	if last.BytesComplete != 200*1024 || last.Filename != "clip.mp4" {
		t.Fatalf("expected final progress report, got %+v", last)
	}
}

func TestDownloadMissingFile(t *testing.T) {
	srv := testsupport.NewFakeServer(t)
	fetcher := newFetcher(t, srv)

	_, err := fetcher.Download(context.Background(), "missing.mp4", t.TempDir())
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestDownloadRejectsPathNames(t *testing.T) {
	srv := testsupport.NewFakeServer(t)
	fetcher := newFetcher(t, srv)

	for _, name := range []string{"", " ", "..", "../etc/passwd", `a\b`} {
		if _, err := fetcher.Download(context.Background(), name, t.TempDir()); !errors.Is(err, fetch.ErrInvalidFilename) {
			t.Fatalf("%q: expected ErrInvalidFilename, got %v", name, err)
		}
	}
}

func TestDownloadDestinationIsFile(t *testing.T) {
	srv := testsupport.NewFakeServer(t)
	testsupport.WriteFile(t, filepath.Join(srv.FilesDir, "clip.mp4"), 10)
	fetcher := newFetcher(t, srv)

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := fetcher.Download(context.Background(), "clip.mp4", blocker); err == nil {
		t.Fatal("expected error when destination is a file")
	}
}
