package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"vidgrab/internal/view"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

var titleCaser = cases.Title(language.Und)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

// phaseLabel title-cases a phase or server status for display, e.g.
// "not_found" becomes "Not Found".
func phaseLabel(phase string) string {
	phase = strings.TrimSpace(strings.ReplaceAll(phase, "_", " "))
	if phase == "" {
		return "Unknown"
	}
	return titleCaser.String(phase)
}

func phaseKind(phase view.Phase) statusKind {
	switch phase {
	case view.PhaseCompleted:
		return statusOK
	case view.PhaseFailed:
		return statusError
	case view.PhaseSubmitting:
		return statusWarn
	default:
		return statusInfo
	}
}

// stateMessage is the one-line summary of a view state.
func stateMessage(s view.State) string {
	switch s.Phase {
	case view.PhaseFailed:
		return s.ErrorText
	case view.PhaseCompleted:
		return strings.TrimSpace(s.StatusText + " " + s.SuccessText)
	case view.PhaseDownloading:
		if s.ProgressVisible {
			return s.PercentText() + " " + s.StatusText
		}
		return s.StatusText
	default:
		return s.StatusText
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
