// Package client is the HTTP transport for the download server.
//
// It issues POST /download and GET /progress/{id}, stamps each request with
// an X-Request-ID correlation id, and classifies network and decode failures
// with services.ErrTransport. A JSON body is honoured regardless of HTTP
// status, matching how the server reports rejections; anything that does not
// decode is a transport failure. No retries are attempted.
package client
