// Package server implements the web front end: a minimal command form, the
// /process-command JSON endpoint, a /test-events diagnostic listing, and the
// operational /healthz and /metrics endpoints.
//
// The server is a pure I/O adapter: each request performs at most one
// interpreter call followed by at most one gateway call, sequentially.
// Concurrent requests are independent and uncoordinated.
package server
