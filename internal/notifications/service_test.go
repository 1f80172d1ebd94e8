package notifications_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vidgrab/internal/config"
	"vidgrab/internal/notifications"
)

type capturedRequest struct {
	title    string
	tags     string
	priority string
	body     string
}

func newNtfyServer(t *testing.T, status int) (*httptest.Server, <-chan capturedRequest) {
	t.Helper()
	requests := make(chan capturedRequest, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests <- capturedRequest{
			title:    r.Header.Get("Title"),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
			body:     string(body),
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, requests
}

func configWithTopic(topic string) *config.Config {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = topic
	return &cfg
}

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	svc := notifications.NewService(configWithTopic(""))
	if err := svc.NotifyCompleted(context.Background(), notifications.Job{DownloadID: "abc"}); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNotifyCompleted(t *testing.T) {
	srv, requests := newNtfyServer(t, http.StatusOK)
	svc := notifications.NewService(configWithTopic(srv.URL + "/downloads"))

	job := notifications.Job{DownloadID: "abc", URL: "https://example.com/v"}
	if err := svc.NotifyCompleted(context.Background(), job); err != nil {
		t.Fatalf("NotifyCompleted: %v", err)
	}
	got := <-requests
	if got.title != "vidgrab - Download Complete" || got.tags != "vidgrab,download,completed" {
		t.Fatalf("unexpected headers %+v", got)
	}
	if !strings.Contains(got.body, "https://example.com/v") || !strings.Contains(got.body, "ID: abc") {
		t.Fatalf("unexpected body %q", got.body)
	}
}

func TestNotifyFailedFallsBackToID(t *testing.T) {
	srv, requests := newNtfyServer(t, http.StatusOK)
	svc := notifications.NewService(configWithTopic(srv.URL))

	if err := svc.NotifyFailed(context.Background(), notifications.Job{DownloadID: "abc"}, "conversion failed"); err != nil {
		t.Fatalf("NotifyFailed: %v", err)
	}
	got := <-requests
	if got.priority != "high" {
		t.Fatalf("expected high priority, got %q", got.priority)
	}
	if got.body != "Download failed: abc\nReason: conversion failed\nID: abc" {
		t.Fatalf("unexpected body %q", got.body)
	}
}

func TestNotifyTogglesSuppressMessages(t *testing.T) {
	srv, requests := newNtfyServer(t, http.StatusOK)
	cfg := configWithTopic(srv.URL)
	cfg.Notifications.OnSuccess = false
	cfg.Notifications.OnFailure = false
	svc := notifications.NewService(cfg)

	ctx := context.Background()
	if err := svc.NotifyCompleted(ctx, notifications.Job{DownloadID: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.NotifyFailed(ctx, notifications.Job{DownloadID: "a"}, "x"); err != nil {
		t.Fatal(err)
	}
	select {
	case got := <-requests:
		t.Fatalf("expected no requests, got %+v", got)
	default:
	}
}

func TestNotifyReportsServerErrors(t *testing.T) {
	srv, _ := newNtfyServer(t, http.StatusForbidden)
	svc := notifications.NewService(configWithTopic(srv.URL))

	err := svc.TestNotification(context.Background())
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected 403 error, got %v", err)
	}
}
