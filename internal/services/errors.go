package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTransport marks network failures and undecodable responses.
	ErrTransport = errors.New("transport error")
	// ErrRejected marks a submission the server answered with success=false.
	ErrRejected = errors.New("download rejected")
	// ErrJobFailed marks a job the server reported in the error state.
	ErrJobFailed = errors.New("download failed")
	// ErrProgressCheck marks a poll that could not be completed.
	ErrProgressCheck = errors.New("progress check failed")
	// ErrConfiguration marks unusable local configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes operation context while tagging
// it with the provided marker for later classification with errors.Is.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrTransport
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// UserMessage returns the text shown in the error region for err: the
// server-supplied detail for rejections and job failures, otherwise err's
// full message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var detailed *DetailError
	if errors.As(err, &detailed) {
		return detailed.Detail
	}
	return err.Error()
}

// DetailError carries the verbatim server text behind a classified failure.
type DetailError struct {
	Marker error
	Detail string
}

func (e *DetailError) Error() string {
	if e.Detail == "" {
		return e.Marker.Error()
	}
	return fmt.Sprintf("%s: %s", e.Marker.Error(), e.Detail)
}

func (e *DetailError) Unwrap() error {
	return e.Marker
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "request failure"
	}
	return strings.Join(parts, ": ")
}

// Cause returns the innermost error behind err, following the last branch of
// multi-error wraps. It is used for short user-facing transport messages.
func Cause(err error) error {
	for err != nil {
		switch wrapped := err.(type) {
		case interface{ Unwrap() []error }:
			errs := wrapped.Unwrap()
			if len(errs) == 0 {
				return err
			}
			err = errs[len(errs)-1]
		case interface{ Unwrap() error }:
			next := wrapped.Unwrap()
			if next == nil {
				return err
			}
			err = next
		default:
			return err
		}
	}
	return err
}
