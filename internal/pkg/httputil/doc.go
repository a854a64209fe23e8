// Package httputil provides shared JSON response helpers for HTTP handlers.
//
// Handlers should use these instead of raw http.ResponseWriter calls so
// error envelopes and content types stay consistent across endpoints.
package httputil
