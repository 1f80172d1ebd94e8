package main

import (
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"
)

func TestRenderTablePadsShortRows(t *testing.T) {
	columns := []tableColumn{
		{header: "ID", align: text.AlignLeft},
		{header: "Progress", align: text.AlignRight},
	}
	out := renderTable(columns, [][]string{{"job-1", "40%"}, {"job-2"}})

	for _, want := range []string{"ID", "PROGRESS", "job-1", "40%", "job-2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table:\n%s", want, out)
		}
	}
	if got := renderTable(nil, [][]string{{"x"}}); got != "" {
		t.Fatalf("expected empty output without columns, got %q", got)
	}
}

func TestRenderTableWrapsWideColumns(t *testing.T) {
	columns := []tableColumn{{header: "URL", align: text.AlignLeft, maxWidth: 10}}
	out := renderTable(columns, [][]string{{"https://example.com/very/long/path"}})

	for _, line := range strings.Split(out, "\n") {
		if text.RuneWidthWithoutEscSequences(line) > 14 {
			t.Fatalf("line wider than the column limit: %q", line)
		}
	}
}
