package services

import (
	"context"
	"strings"
)

type contextKey string

const (
	downloadIDKey contextKey = "download_id"
	requestIDKey  contextKey = "request_id"
)

// WithDownloadID annotates context with the server-assigned job identifier.
func WithDownloadID(ctx context.Context, id string) context.Context {
	if id = strings.TrimSpace(id); id == "" {
		return ctx
	}
	return context.WithValue(ctx, downloadIDKey, id)
}

// DownloadIDFromContext returns the job identifier if present.
func DownloadIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(downloadIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id = strings.TrimSpace(id); id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
