package services_test

import (
	"errors"
	"fmt"
	"testing"

	"vidgrab/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := errors.New("connection refused")
	err := services.Wrap(services.ErrTransport, "submit", "post /download", cause)
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected ErrTransport marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be wrapped, got %v", err)
	}
	want := "transport error: submit: post /download: connection refused"
	if err.Error() != want {
		t.Fatalf("unexpected message\n got: %q\nwant: %q", err.Error(), want)
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", nil)
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if err.Error() != "transport error: request failure" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestUserMessagePrefersServerDetail(t *testing.T) {
	detailed := fmt.Errorf("submit: %w", &services.DetailError{Marker: services.ErrRejected, Detail: "bad url"})
	if !errors.Is(detailed, services.ErrRejected) {
		t.Fatal("expected DetailError to unwrap to its marker")
	}
	if got := services.UserMessage(detailed); got != "bad url" {
		t.Fatalf("UserMessage = %q, want %q", got, "bad url")
	}
	if got := services.UserMessage(errors.New("plain")); got != "plain" {
		t.Fatalf("UserMessage = %q, want plain", got)
	}
	if got := services.UserMessage(nil); got != "" {
		t.Fatalf("UserMessage(nil) = %q", got)
	}
}

func TestCauseFollowsWrapChain(t *testing.T) {
	root := errors.New("connection refused")
	err := services.Wrap(services.ErrTransport, "submit", "", fmt.Errorf("post: %w", root))
	if got := services.Cause(err); got != root {
		t.Fatalf("Cause = %v, want %v", got, root)
	}
	if services.Cause(nil) != nil {
		t.Fatal("Cause(nil) should be nil")
	}
	plain := errors.New("plain")
	if services.Cause(plain) != plain {
		t.Fatal("Cause of unwrapped error should be itself")
	}
}
