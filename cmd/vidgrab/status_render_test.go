package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"vidgrab/internal/view"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Failed", statusError, "bad url", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Failed:", "[ERROR] bad url")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Completed", statusOK, "done", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestPhaseLabel(t *testing.T) {
	cases := map[string]string{
		"downloading": "Downloading",
		"not_found":   "Not Found",
		"":            "Unknown",
	}
	for in, want := range cases {
		if got := phaseLabel(in); got != want {
			t.Fatalf("phaseLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestPlainRendererSkipsRepeatedStates(t *testing.T) {
	var buf bytes.Buffer
	r := newStateRenderer(&buf, false)

	forty := 40.0
	downloading := view.Idle().Submitting().Accepted("abc").Downloading(&forty, "fetching")
	r.Render(downloading)
	r.Render(downloading)
	r.Render(downloading.Completed())
	r.Finish()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "40% fetching") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "[OK]") || !strings.Contains(lines[1], view.SuccessText) {
		t.Fatalf("unexpected final line %q", lines[1])
	}
}

func TestBarValueClampsAndRounds(t *testing.T) {
	tests := []struct {
		percent float64
		want    int64
	}{
		{-5, 0},
		{0, 0},
		{42.4, 42},
		{42.5, 43},
		{99.6, 100},
		{150, 100},
	}
	for _, tt := range tests {
		if got := barValue(tt.percent); got != tt.want {
			t.Fatalf("barValue(%v) = %d, want %d", tt.percent, got, tt.want)
		}
	}
}
