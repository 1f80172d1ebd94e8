package main

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/schollz/progressbar/v3"

	"vidgrab/internal/view"
)

type renderMode int

const (
	renderPlain renderMode = iota
	renderTTY
	renderJSON
)

// stateRenderer writes view states to a terminal, a plain stream or as JSON
// lines. Plain and TTY output skip states identical to the previous one.
type stateRenderer struct {
	out  io.Writer
	mode renderMode

	mu      sync.Mutex
	last    view.State
	hasLast bool
	bar     *progressbar.ProgressBar
}

func newStateRenderer(out io.Writer, jsonOutput bool) *stateRenderer {
	mode := renderPlain
	switch {
	case jsonOutput:
		mode = renderJSON
	case shouldColorize(out):
		mode = renderTTY
	}
	return &stateRenderer{out: out, mode: mode}
}

func (r *stateRenderer) Render(s view.State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mode == renderJSON {
		_ = writeJSONLine(r.out, s)
		return
	}
	if r.hasLast && r.last == s {
		return
	}
	r.last, r.hasLast = s, true

	if r.mode == renderTTY && s.ProgressVisible && !s.Terminal() {
		r.renderBar(s)
		return
	}
	r.clearBar()
	fmt.Fprintln(r.out, renderStatusLine(phaseLabel(string(s.Phase)), phaseKind(s.Phase), stateMessage(s), r.mode == renderTTY))
}

func (r *stateRenderer) renderBar(s view.State) {
	if r.bar == nil {
		r.bar = progressbar.NewOptions(100,
			progressbar.OptionSetWriter(r.out),
			progressbar.OptionSetWidth(30),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionThrottle(0),
		)
	}
	r.bar.Describe(fmt.Sprintf("[cyan]%s[reset] %s", phaseLabel(string(s.Phase)), s.StatusText))
	_ = r.bar.Set64(barValue(s.Percent))
}

// barValue rounds percent to the nearest whole step within the bar's 0-100
// range.
func barValue(percent float64) int64 {
	if math.IsNaN(percent) {
		return 0
	}
	return int64(math.Round(math.Max(0, math.Min(100, percent))))
}

func (r *stateRenderer) clearBar() {
	if r.bar == nil {
		return
	}
	_ = r.bar.Clear()
	r.bar = nil
}

// Finish releases the progress bar, if any.
func (r *stateRenderer) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearBar()
}
