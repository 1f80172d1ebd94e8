// Package api defines the wire contract between vidgrab and the download
// server: the form input, the POST /download request and reply, and the
// GET /progress/{id} reply.
package api
